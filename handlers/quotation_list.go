package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type quotationListItem struct {
	ID               string  `json:"id"`
	DeveloperName    string  `json:"developerName"`
	ProjectName      string  `json:"projectName"`
	Status           string  `json:"status"`
	TotalAmount      float64 `json:"totalAmount"`
	RequiresApproval bool    `json:"requiresApproval"`
	Created          string  `json:"created"`
}

// HandleQuotationList returns a handler that lists quotations, newest
// first. An optional ?status= query narrows the list to one status.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := ""
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("quotations", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("quotation_list: could not query quotations: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		items := make([]quotationListItem, 0, len(records))
		for _, rec := range records {
			items = append(items, quotationListItem{
				ID:               rec.Id,
				DeveloperName:    rec.GetString("developer_name"),
				ProjectName:      rec.GetString("project_name"),
				Status:           rec.GetString("status"),
				TotalAmount:      rec.GetFloat("total_amount"),
				RequiresApproval: rec.GetBool("requires_approval"),
				Created:          rec.GetString("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"quotations": items})
	}
}
