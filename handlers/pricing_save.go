package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type pricingSaveRequest struct {
	Breakdown      services.PricingBreakdown `json:"breakdown"`
	GlobalDiscount services.GlobalDiscount   `json:"globalDiscount"`
}

// HandlePricingSave returns a handler that persists an edited pricing
// breakdown. Every service row must reconcile (final + discount = total,
// percent consistent with amount) and the global discount must stay
// within the service subtotal, otherwise the save is rejected.
func HandlePricingSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("pricing_save: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		var req pricingSaveRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("pricing_save: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if len(req.Breakdown) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Pricing breakdown is empty"})
		}

		if msg := validateBreakdown(req.Breakdown); msg != "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		totals := req.Breakdown.Totals(req.GlobalDiscount)

		if msg := validateGlobalDiscount(req.GlobalDiscount, totals.ServiceSubtotal); msg != "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		if err := setJSONField(record, "pricing_breakdown", req.Breakdown); err != nil {
			log.Printf("pricing_save: could not encode breakdown: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		record.Set("total_amount", totals.Total)
		record.Set("discount_amount", totals.TotalDiscount)
		if totals.OriginalSubtotal > 0 {
			record.Set("discount_percent", math.Round(totals.TotalDiscount/totals.OriginalSubtotal*10000)/100)
		} else {
			record.Set("discount_percent", 0)
		}
		record.Set("service_discount_amount", totals.ServiceDiscount)
		record.Set("global_discount_amount", totals.GlobalDiscount)
		record.Set("global_discount_percent", totals.EffectiveGlobalPercent)

		if record.GetBool("requires_approval") && record.GetString("status") == "draft" {
			record.Set("status", "pending_approval")
		}

		if err := app.Save(record); err != nil {
			log.Printf("pricing_save: could not save %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		resp := map[string]any{
			"totals": totals,
			"status": record.GetString("status"),
		}
		if user := GetSalesUser(e.Request); user != nil &&
			user.DiscountThreshold > 0 && totals.TotalDiscount > user.DiscountThreshold {
			resp["thresholdWarning"] = true
			resp["discountThreshold"] = user.DiscountThreshold
		}

		return e.JSON(http.StatusOK, resp)
	}
}

// validateBreakdown checks the three-field reconciliation of every
// service row. Returns an error message or "" when all rows reconcile.
func validateBreakdown(breakdown services.PricingBreakdown) string {
	for _, header := range breakdown {
		for _, svc := range header.Services {
			if svc.TotalAmount < 0 {
				return fmt.Sprintf("%s / %s: total amount cannot be negative", header.Header, svc.Name)
			}
			if svc.DiscountAmount < 0 || svc.DiscountAmount > svc.TotalAmount {
				return fmt.Sprintf("%s / %s: discount must be between 0 and the total amount", header.Header, svc.Name)
			}
			if math.Abs(svc.FinalAmount-(svc.TotalAmount-svc.DiscountAmount)) > 0.01 {
				return fmt.Sprintf("%s / %s: final amount does not reconcile with the discount", header.Header, svc.Name)
			}
			if svc.TotalAmount > 0 {
				impliedPercent := svc.DiscountAmount / svc.TotalAmount * 100
				if math.Abs(svc.DiscountPercent-impliedPercent) > 0.5 {
					return fmt.Sprintf("%s / %s: discount percent does not reconcile with the amount", header.Header, svc.Name)
				}
			}
		}
	}
	return ""
}

func validateGlobalDiscount(global services.GlobalDiscount, serviceSubtotal float64) string {
	switch global.Type {
	case services.DiscountNone, "":
		return ""
	case services.DiscountPercent:
		if global.Percent < 0 || global.Percent > 100 {
			return "Global discount percent must be between 0 and 100"
		}
	case services.DiscountAmount:
		if global.Amount < 0 {
			return "Global discount cannot be negative"
		}
		if global.Amount > serviceSubtotal {
			return "Global discount cannot exceed the service subtotal"
		}
	default:
		return "Unknown global discount type"
	}
	return ""
}
