package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type quotationCreateRequest struct {
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
}

var mobileRe = regexp.MustCompile(`^\d{10}$`)

// HandleQuotationCreate returns a handler that creates a new draft quotation.
func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quotationCreateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("quotation_create: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		req.DeveloperName = strings.TrimSpace(req.DeveloperName)
		req.ProjectName = strings.TrimSpace(req.ProjectName)

		errors := make(map[string]string)
		if req.DeveloperName == "" {
			errors["developerName"] = "Developer name is required"
		}
		if !containsOption(services.DeveloperTypeOptions, req.DeveloperType) {
			errors["developerType"] = "Unknown developer type"
		}
		if !containsOption(services.RegionOptions, req.ProjectRegion) {
			errors["projectRegion"] = "Unknown project region"
		}
		if req.PlotArea < 0 {
			errors["plotArea"] = "Plot area cannot be negative"
		}
		if req.ContactMobile != "" && !mobileRe.MatchString(req.ContactMobile) {
			errors["contactMobile"] = "Mobile number must be 10 digits"
		}
		if req.ContactEmail != "" && !strings.Contains(req.ContactEmail, "@") {
			errors["contactEmail"] = "Invalid email address"
		}
		if req.Validity != "" && !containsOption(services.ValidityOptions, req.Validity) {
			errors["validity"] = "Unknown validity option"
		}
		if req.PaymentSchedule != "" && !containsOption(services.PaymentScheduleOptions, req.PaymentSchedule) {
			errors["paymentSchedule"] = "Unknown payment schedule option"
		}
		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotation_create: could not find quotations collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		record := core.NewRecord(col)
		record.Set("developer_type", req.DeveloperType)
		record.Set("project_region", req.ProjectRegion)
		record.Set("plot_area", req.PlotArea)
		record.Set("developer_name", req.DeveloperName)
		record.Set("project_name", req.ProjectName)
		record.Set("contact_mobile", req.ContactMobile)
		record.Set("contact_email", req.ContactEmail)
		record.Set("validity", req.Validity)
		record.Set("payment_schedule", req.PaymentSchedule)
		record.Set("rera_number", req.ReraNumber)
		record.Set("status", "draft")
		record.Set("display_mode", "bifurcated")
		if user := GetSalesUser(e.Request); user != nil {
			record.Set("created_by", user.ID)
		}

		if err := app.Save(record); err != nil {
			log.Printf("quotation_create: could not save quotation: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusCreated, decodeQuotation(record))
	}
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
