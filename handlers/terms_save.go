package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type termsSaveRequest struct {
	AcceptedTerms       map[string][]string `json:"acceptedTerms"`
	CustomTerms         []string            `json:"customTerms"`
	AcceptedCustomTerms []string            `json:"acceptedCustomTerms"`
	Validity            string              `json:"validity"`
	PaymentSchedule     string              `json:"paymentSchedule"`
	DisplayMode         string              `json:"displayMode"`
	TermsAccepted       bool                `json:"termsAccepted"`
}

// HandleTermsSave returns a handler that persists the terms step of a
// quotation. The applicable term categories are always re-resolved from
// the saved service selection.
func HandleTermsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("terms_save: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		var req termsSaveRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("terms_save: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if !req.TermsAccepted {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Terms must be accepted before saving"})
		}
		if req.DisplayMode != "" && !containsOption(services.DisplayModeOptions, req.DisplayMode) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown display mode"})
		}
		if req.Validity != "" && !containsOption(services.ValidityOptions, req.Validity) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown validity option"})
		}
		if req.PaymentSchedule != "" && !containsOption(services.PaymentScheduleOptions, req.PaymentSchedule) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown payment schedule option"})
		}

		var headers []services.DraftHeader
		unmarshalJSONField(record, "headers", &headers)

		termsCatalog := services.DefaultTermsCatalog()
		applicable := termsCatalog.ResolveApplicableCategories(headers)

		customTerms := make([]string, 0, len(req.CustomTerms))
		for _, t := range req.CustomTerms {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				customTerms = append(customTerms, trimmed)
			}
		}

		if err := setJSONField(record, "applicable_terms", applicable); err != nil {
			log.Printf("terms_save: could not encode applicable terms: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if err := setJSONField(record, "accepted_terms", req.AcceptedTerms); err != nil {
			log.Printf("terms_save: could not encode accepted terms: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if err := setJSONField(record, "custom_terms", customTerms); err != nil {
			log.Printf("terms_save: could not encode custom terms: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if err := setJSONField(record, "accepted_custom_terms", req.AcceptedCustomTerms); err != nil {
			log.Printf("terms_save: could not encode accepted custom terms: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		record.Set("terms_accepted", true)
		if req.Validity != "" {
			record.Set("validity", req.Validity)
		}
		if req.PaymentSchedule != "" {
			record.Set("payment_schedule", req.PaymentSchedule)
		}
		if req.DisplayMode != "" {
			record.Set("display_mode", req.DisplayMode)
		}

		if err := app.Save(record); err != nil {
			log.Printf("terms_save: could not save %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"applicableTerms": applicable,
			"status":          record.GetString("status"),
		})
	}
}
