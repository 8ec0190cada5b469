package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type servicesSaveRequest struct {
	Headers           []services.DraftHeader `json:"headers"`
	CustomHeaderNames map[string]string      `json:"customHeaderNames"`
}

// HandleQuotationServicesSave returns a handler that persists the service
// selection of a quotation. The submitted headers are replayed through a
// SelectionStore so the approval flag is always recomputed server-side
// rather than trusted from the client.
func HandleQuotationServicesSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_services: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		var req servicesSaveRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("quotation_services: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if len(req.Headers) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "At least one header is required"})
		}

		store := services.NewSelectionStore(services.DefaultCatalog())
		store.LoadDraft(services.Draft{
			Headers:           req.Headers,
			CustomHeaderNames: req.CustomHeaderNames,
		})
		draft := store.Finalize()

		if err := setJSONField(record, "headers", draft.Headers); err != nil {
			log.Printf("quotation_services: could not encode headers: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if err := setJSONField(record, "custom_header_names", draft.CustomHeaderNames); err != nil {
			log.Printf("quotation_services: could not encode custom header names: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		record.Set("requires_approval", draft.RequiresApproval)

		// A changed selection invalidates any previous approval.
		if record.GetString("status") != "draft" {
			record.Set("status", "draft")
			record.Set("approved_by", "")
			record.Set("approved_at", "")
		}

		if err := app.Save(record); err != nil {
			log.Printf("quotation_services: could not save %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, draft)
	}
}
