package services

import (
	"fmt"
	"strings"
	"time"
)

// Quotation is the full persisted state of one quotation, decoded from
// its stored record. It is the input to the summary builders.
type Quotation struct {
	ID              string  `json:"id"`
	DeveloperType   string  `json:"developerType"`
	ProjectRegion   string  `json:"projectRegion"`
	PlotArea        float64 `json:"plotArea"`
	DeveloperName   string  `json:"developerName"`
	ProjectName     string  `json:"projectName"`
	ContactMobile   string  `json:"contactMobile"`
	ContactEmail    string  `json:"contactEmail"`
	Validity        string  `json:"validity"`
	PaymentSchedule string  `json:"paymentSchedule"`
	ReraNumber      string  `json:"reraNumber"`

	Headers          []DraftHeader    `json:"headers"`
	PricingBreakdown PricingBreakdown `json:"pricingBreakdown"`

	ApplicableTerms     []string            `json:"applicableTerms"`
	AcceptedTerms       map[string][]string `json:"acceptedTerms"`
	CustomTerms         []string            `json:"customTerms"`
	AcceptedCustomTerms []string            `json:"acceptedCustomTerms"`

	TotalAmount           float64 `json:"totalAmount"`
	DiscountAmount        float64 `json:"discountAmount"`
	DiscountPercent       float64 `json:"discountPercent"`
	ServiceDiscountAmount float64 `json:"serviceDiscountAmount"`
	GlobalDiscountAmount  float64 `json:"globalDiscountAmount"`
	GlobalDiscountPercent float64 `json:"globalDiscountPercent"`

	Status           string    `json:"status"`
	RequiresApproval bool      `json:"requiresApproval"`
	TermsAccepted    bool      `json:"termsAccepted"`
	DisplayMode      string    `json:"displayMode"`
	CreatedBy        string    `json:"createdBy"`
	ApprovedBy       string    `json:"approvedBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SummaryRow is one display line of the quotation summary.
// Level 0 = header, 1 = service, 2 = sub-service.
type SummaryRow struct {
	Level       int
	Index       string
	Description string
	Duration    string
	Amount      float64
	ShowAmount  bool
}

// SummaryData holds everything the PDF and Excel builders render.
type SummaryData struct {
	Quotation Quotation

	Rows             []SummaryRow
	OriginalSubtotal float64
	ServiceDiscount  float64
	GlobalDiscount   float64
	TotalDiscount    float64
	TotalAmount      float64
	AmountInWords    string
	Terms            []string
	GeneratedDate    string
}

// BuildSummaryData flattens a saved quotation into display rows and
// totals. Display mode "lumpsum" collapses package headers to a single
// package-total row; "bifurcated" prices every service line.
func BuildSummaryData(q Quotation, terms *TermsCatalog) SummaryData {
	data := SummaryData{
		Quotation:       q,
		ServiceDiscount: q.ServiceDiscountAmount,
		GlobalDiscount:  q.GlobalDiscountAmount,
		TotalDiscount:   q.DiscountAmount,
		TotalAmount:     q.TotalAmount,
		AmountInWords:   AmountToWords(q.TotalAmount),
		GeneratedDate:   time.Now().Format("02/01/2006"),
	}

	priceOf := servicePriceIndex(q.PricingBreakdown)
	for _, header := range q.PricingBreakdown {
		for _, svc := range header.Services {
			data.OriginalSubtotal += svc.TotalAmount
		}
	}

	lumpsum := q.DisplayMode == "lumpsum"
	for hi, header := range q.Headers {
		headerIndex := fmt.Sprintf("%d", hi+1)
		data.Rows = append(data.Rows, SummaryRow{
			Level:       0,
			Index:       headerIndex,
			Description: header.Name,
		})

		if lumpsum && isPackageName(header.Name) {
			data.Rows = append(data.Rows, SummaryRow{
				Level:       1,
				Index:       headerIndex + ".1",
				Description: header.Name + " (Lumpsum)",
				Amount:      headerFinalTotal(q.PricingBreakdown, header.Name),
				ShowAmount:  true,
			})
			continue
		}

		for si, svc := range header.Services {
			svcIndex := fmt.Sprintf("%s.%d", headerIndex, si+1)
			amount, priced := priceOf(header.Name, svc.Name)
			data.Rows = append(data.Rows, SummaryRow{
				Level:       1,
				Index:       svcIndex,
				Description: svc.Name,
				Duration:    durationNote(svc),
				Amount:      amount,
				ShowAmount:  priced,
			})
			for bi, sub := range svc.SelectedSubServices {
				data.Rows = append(data.Rows, SummaryRow{
					Level:       2,
					Index:       fmt.Sprintf("%s.%d", svcIndex, bi+1),
					Description: sub.Name,
				})
			}
		}
	}

	data.Terms = collectTerms(q, terms)
	return data
}

// servicePriceIndex builds a lookup of final amounts by header and
// service name.
func servicePriceIndex(breakdown PricingBreakdown) func(header, service string) (float64, bool) {
	type key struct{ header, service string }
	index := make(map[key]float64)
	for _, h := range breakdown {
		for _, s := range h.Services {
			index[key{strings.TrimSpace(h.Header), strings.TrimSpace(s.Name)}] = s.FinalAmount
		}
	}
	return func(header, service string) (float64, bool) {
		v, ok := index[key{strings.TrimSpace(header), strings.TrimSpace(service)}]
		return v, ok
	}
}

// headerFinalTotal sums the final amounts of one breakdown header.
func headerFinalTotal(breakdown PricingBreakdown, headerName string) float64 {
	var total float64
	for _, h := range breakdown {
		if strings.TrimSpace(h.Header) != strings.TrimSpace(headerName) {
			continue
		}
		for _, s := range h.Services {
			total += s.FinalAmount
		}
	}
	return total
}

func isPackageName(name string) bool {
	return strings.Contains(strings.ToLower(name), "package")
}

// durationNote renders the selected duration of a time-based service,
// e.g. "3 quarters (2024)" or "2 years".
func durationNote(svc DraftService) string {
	switch {
	case svc.RequiresYearQuarter:
		count := svc.QuarterCount
		if count == 0 {
			count = len(svc.SelectedQuarters)
		}
		if count == 0 {
			return ""
		}
		note := fmt.Sprintf("%d quarter", count)
		if count != 1 {
			note += "s"
		}
		if len(svc.SelectedYears) > 0 {
			note += " (" + strings.Join(svc.SelectedYears, ", ") + ")"
		}
		return note
	case svc.RequiresYearOnly:
		count := len(svc.SelectedYears)
		if count == 0 {
			return ""
		}
		note := fmt.Sprintf("%d year", count)
		if count != 1 {
			note += "s"
		}
		return note
	}
	return ""
}

// collectTerms assembles the printed terms block: accepted clauses per
// applicable category (falling back to the catalog texts), then accepted
// custom terms.
func collectTerms(q Quotation, catalog *TermsCatalog) []string {
	var out []string
	out = append(out, DynamicGeneralTerms(q.Validity, q.PaymentSchedule, q.CreatedAt)...)

	categories := q.ApplicableTerms
	if len(categories) == 0 {
		categories = catalog.ResolveApplicableCategories(q.Headers)
	}
	for _, category := range categories {
		clauses := q.AcceptedTerms[category]
		if len(clauses) == 0 {
			clauses = catalog.Clauses(category)
		}
		out = append(out, clauses...)
	}

	custom := q.AcceptedCustomTerms
	if len(custom) == 0 {
		custom = q.CustomTerms
	}
	out = append(out, custom...)
	return out
}
