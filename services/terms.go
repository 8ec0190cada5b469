package services

import (
	"fmt"
	"regexp"
	"time"
)

// GeneralTermsCategory is the fallback terms category, always applicable.
const GeneralTermsCategory = "General T&C"

// TermsCatalog maps service and header names to their terms category and
// holds each category's clause texts. Loaded once via DefaultTermsCatalog
// and passed to the resolver explicitly.
type TermsCatalog struct {
	categoryByName map[string]string
	clauses        map[string][]string
}

// DefaultTermsCatalog loads the firm's standard terms and the service to
// category mapping.
func DefaultTermsCatalog() *TermsCatalog {
	return &TermsCatalog{
		categoryByName: map[string]string{
			"Package A": "Package A,B,C",
			"Package B": "Package A,B,C",
			"Package C": "Package A,B,C",
			"Package D": "Package D",
		},
		clauses: map[string][]string{
			GeneralTermsCategory: {
				"The above quotation is subject to this project only.",
				"The prices mentioned above are in particular to One Project per year.",
				"The services outlined above are included within the project scope. Any additional services not specified are excluded from this scope.",
				"The prices mentioned above are applicable to One Project only for the duration of the services obtained.",
				"The prices mentioned above DO NOT include Government Fees.",
				"The prices mentioned above DO NOT include Edit Fees.",
				"*18% GST Applicable on above mentioned charges.",
				"The prices listed above do not include any applicable statutory taxes.",
				"Any and all services not mentioned in the above scope of services are not applicable",
				"All Out-of-pocket expenses incurred for completion of the work shall be re-imbursed to RERA Easy",
			},
			"Package A,B,C": {
				"Payment is due at the initiation of services, followed by annual payments thereafter.",
				"Any kind of drafting of legal documents or contracts are not applicable.",
				"The quoted fee covers annual MahaRERA compliance services, with billing on a Yearly basis for convenience and predictable financial planning.",
				"Invoices will be generated at a predetermined interval for each year in advance.",
				"The initial invoice will be issued from the date of issuance or a start date as specified in the Work Order.",
			},
			"Package D": {
				"All Out-of-pocket expenses incurred for the explicit purpose of Commuting, Refreshment meals of RERA Easy's personnel shall be re-imbursed to RERA Easy, subject to submission of relevant invoices, bills and records submitted.",
			},
		},
	}
}

// ResolveApplicableCategories returns the terms categories a finalized
// selection triggers. The general category is always included; each
// service resolves by service name, then header name, then falls back to
// the general category. Order follows first occurrence.
func (tc *TermsCatalog) ResolveApplicableCategories(headers []DraftHeader) []string {
	seen := map[string]bool{GeneralTermsCategory: true}
	categories := []string{GeneralTermsCategory}

	for _, header := range headers {
		for _, svc := range header.Services {
			category, ok := tc.categoryByName[svc.Name]
			if !ok {
				category, ok = tc.categoryByName[header.Name]
			}
			if !ok {
				category = GeneralTermsCategory
			}
			if !seen[category] {
				seen[category] = true
				categories = append(categories, category)
			}
		}
	}
	return categories
}

// Clauses returns the clause texts of one category.
func (tc *TermsCatalog) Clauses(category string) []string {
	out := make([]string, len(tc.clauses[category]))
	copy(out, tc.clauses[category])
	return out
}

var validityDaysRe = regexp.MustCompile(`\d+`)

// DynamicGeneralTerms builds the per-quotation clauses prepended to the
// general category: the computed valid-until date and the advance payment
// requirement.
func DynamicGeneralTerms(validity, paymentSchedule string, createdAt time.Time) []string {
	var terms []string

	if m := validityDaysRe.FindString(validity); m != "" {
		var days int
		fmt.Sscanf(m, "%d", &days)
		if days > 0 {
			base := createdAt
			if base.IsZero() {
				base = time.Now()
			}
			until := base.Add(time.Duration(days) * 24 * time.Hour)
			terms = append(terms, fmt.Sprintf("The quotation is valid upto %s.", until.Format("02/01/2006")))
		}
	}
	if paymentSchedule != "" {
		terms = append(terms, fmt.Sprintf("%s of the total amount must be paid in advance before commencement of work/service.", paymentSchedule))
	}
	return terms
}
