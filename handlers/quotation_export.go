package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// HandleQuotationExportPDF returns a handler that generates and downloads
// the summary PDF for a quotation.
func HandleQuotationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_export: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		q := decodeQuotation(record)
		data := services.BuildSummaryData(q, services.DefaultTermsCatalog())

		pdfBytes, err := services.GenerateSummaryPDF(data)
		if err != nil {
			log.Printf("quotation_export: failed to generate PDF: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate PDF"})
		}

		filename := fmt.Sprintf("Quotation_%s.pdf", sanitizeFilename(q.DeveloperName))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuotationExportExcel returns a handler that generates and
// downloads the breakdown Excel file for a quotation.
func HandleQuotationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing quotation ID"})
		}

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			log.Printf("quotation_export: quotation not found %s: %v", id, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		q := decodeQuotation(record)
		data := services.BuildSummaryData(q, services.DefaultTermsCatalog())

		xlsxBytes, err := services.GenerateSummaryExcel(data)
		if err != nil {
			log.Printf("quotation_export: failed to generate Excel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate Excel file"})
		}

		filename := fmt.Sprintf("Quotation_%s.xlsx", sanitizeFilename(q.DeveloperName))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
