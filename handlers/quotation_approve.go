package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// HandleQuotationApprove returns a handler that approves a quotation
// waiting for manager sign-off. Only managers and admins may approve.
func HandleQuotationApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetSalesUser(e.Request)
		if user == nil {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}
		if user.Role != "manager" && user.Role != "admin" {
			return e.JSON(http.StatusForbidden, map[string]string{"error": "Only managers can approve quotations"})
		}

		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_approve: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		if record.GetString("status") != "pending_approval" {
			return e.JSON(http.StatusConflict, map[string]string{"error": "Quotation is not pending approval"})
		}

		record.Set("status", "approved")
		record.Set("approved_by", user.ID)
		record.Set("approved_at", types.NowDateTime())

		if err := app.Save(record); err != nil {
			log.Printf("quotation_approve: could not save %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]string{
			"status":     "approved",
			"approvedBy": user.Name,
		})
	}
}
