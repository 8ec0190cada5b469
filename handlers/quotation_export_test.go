package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func TestHandleQuotationExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Export Developer")
	draft := defaultPackageDraft(t, "Package A")
	testhelpers.SetRecordJSON(t, quo, "headers", draft.Headers)
	breakdown := services.CalculateBreakdown(services.PricingRequest{
		DeveloperType: "Category 1",
		ProjectRegion: "Pune",
		PlotArea:      2500,
		Headers:       draft.Headers,
	})
	testhelpers.SetRecordJSON(t, quo, "pricing_breakdown", breakdown)
	if err := app.Save(quo); err != nil {
		t.Fatalf("failed to save quotation state: %v", err)
	}
	handler := HandleQuotationExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/quotations/%s/pdf", quo.Id), nil)
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Quotation_Export-Developer.pdf") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
	if body := rec.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response body is not a PDF")
	}
}

func TestHandleQuotationExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Excel Developer")
	draft := defaultPackageDraft(t, "Package B")
	testhelpers.SetRecordJSON(t, quo, "headers", draft.Headers)
	if err := app.Save(quo); err != nil {
		t.Fatalf("failed to save quotation state: %v", err)
	}
	handler := HandleQuotationExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/quotations/%s/export/excel", quo.Id), nil)
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q, want xlsx", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty Excel body")
	}
}

func TestHandleQuotationExportPDF_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/api/quotations/nope/pdf", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lodha Group", "Lodha-Group"},
		{"A/B:C\\D", "A-B-C-D"},
		{"Plain", "Plain"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
