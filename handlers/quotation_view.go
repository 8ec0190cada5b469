package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuotationView returns a handler that serves one quotation with
// its full selection, pricing and terms state.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_view: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		return e.JSON(http.StatusOK, decodeQuotation(record))
	}
}

// HandleQuotationDelete returns a handler that deletes a quotation.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_delete: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotation_delete: could not delete %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted", "id": id})
	}
}
