package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// HandlePricingCalculate returns a handler that prices a service
// selection. It is stateless: the caller sends the developer profile and
// the selected headers, and receives the per-service breakdown.
func HandlePricingCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req services.PricingRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("pricing_calculate: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if !containsOption(services.DeveloperTypeOptions, req.DeveloperType) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown developer type"})
		}
		if !containsOption(services.RegionOptions, req.ProjectRegion) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown project region"})
		}
		if len(req.Headers) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "At least one header is required"})
		}

		breakdown := services.CalculateBreakdown(req)
		totals := breakdown.Totals(services.GlobalDiscount{})

		return e.JSON(http.StatusOK, map[string]any{
			"breakdown": breakdown,
			"totals":    totals,
		})
	}
}
