package services

import "math"

// PricingRequest is the input to the base-price calculation: the project
// profile plus the finalized header selection.
type PricingRequest struct {
	DeveloperType string        `json:"developerType"`
	ProjectRegion string        `json:"projectRegion"`
	PlotArea      float64       `json:"plotArea"`
	Headers       []DraftHeader `json:"headers"`
}

// basePrices lists the per-service base fee in rupees. Duration-based
// services (QPR, Form 5) are priced per quarter / per year.
var basePrices = map[string]float64{
	"project-registration": 50000,
	"qpr":                  15000,
	"form-5":               25000,
	"legal-drafting":       30000,
	"legal-vetting":        20000,
	"title-report-a":       18000,
	"liasioning":           40000,
	"profile-updation":     8000,
	"profile-migration":    12000,
	"sro-membership":       10000,
	"project-extension":    35000,
	"project-correction":   30000,
	"project-closure":      45000,
	"removal-abeyance":     20000,
	"deregistration":       25000,
	"change-of-promoter":   40000,
	"title-certificate":    15000,
}

// DeveloperTypeOptions returns the promoter categories offered on the
// quotation info step.
var DeveloperTypeOptions = []string{"Category 1", "Category 2", "Category 3"}

// RegionOptions returns the project regions offered on the quotation info
// step.
var RegionOptions = []string{
	"Mumbai City",
	"Mumbai Suburban",
	"Thane",
	"Pune",
	"Nagpur",
	"Nashik",
	"Rest of Maharashtra",
}

// developerTypeFactor scales fees by promoter category. Category 1 is the
// reference rate card.
func developerTypeFactor(developerType string) float64 {
	switch developerType {
	case "Category 2":
		return 0.9
	case "Category 3":
		return 0.8
	default:
		return 1.0
	}
}

// regionFactor scales fees by project region.
func regionFactor(region string) float64 {
	switch region {
	case "Mumbai City", "Mumbai Suburban":
		return 1.2
	case "Thane", "Pune":
		return 1.1
	default:
		return 1.0
	}
}

// plotAreaFactor scales fees by plot area slab (square metres).
func plotAreaFactor(plotArea float64) float64 {
	switch {
	case plotArea > 10000:
		return 1.3
	case plotArea > 4000:
		return 1.15
	default:
		return 1.0
	}
}

// ServiceBasePrice returns the rate-card base price for one service after
// applying the developer-type, region and plot-area factors, rounded to
// the nearest rupee. Unknown service ids price at 0.
func ServiceBasePrice(serviceID, developerType, region string, plotArea float64) float64 {
	base, ok := basePrices[serviceID]
	if !ok {
		return 0
	}
	factor := developerTypeFactor(developerType) * regionFactor(region) * plotAreaFactor(plotArea)
	return math.Round(base * factor)
}

// CalculateBreakdown prices a finalized selection: every selected service
// gets its rate-card base price, and duration-based services multiply the
// base by the quarter or year count. The discount fields start at the
// undiscounted position.
func CalculateBreakdown(req PricingRequest) PricingBreakdown {
	var breakdown PricingBreakdown

	for _, header := range req.Headers {
		hp := HeaderPricing{Header: header.Name}

		for _, svc := range header.Services {
			base := ServiceBasePrice(svc.ID, req.DeveloperType, req.ProjectRegion, req.PlotArea)
			row := ServicePricing{
				Name:                svc.Name,
				BasePrice:           base,
				RequiresYearQuarter: svc.RequiresYearQuarter,
				RequiresYearOnly:    svc.RequiresYearOnly,
			}

			switch {
			case svc.RequiresYearQuarter:
				count := svc.QuarterCount
				if count == 0 {
					count = len(svc.SelectedQuarters)
				}
				if count == 0 {
					count = 1
				}
				row.QuarterCount = count
				row.TotalAmount = base * float64(count)
			case svc.RequiresYearOnly:
				count := len(svc.SelectedYears)
				if count == 0 {
					count = 1
				}
				row.YearCount = count
				row.TotalAmount = base * float64(count)
			default:
				row.TotalAmount = base
			}

			row.FinalAmount = row.TotalAmount
			hp.Services = append(hp.Services, row)
		}
		breakdown = append(breakdown, hp)
	}
	return breakdown
}
