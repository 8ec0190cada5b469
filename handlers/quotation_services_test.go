package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

// defaultPackageDraft finalizes an untouched package selection, the shape a
// client would submit after picking a package without edits.
func defaultPackageDraft(t *testing.T, header string) services.Draft {
	t.Helper()

	store := services.NewSelectionStore(services.DefaultCatalog())
	if !store.AddHeader(header) {
		t.Fatalf("could not add header %q", header)
	}
	return store.Finalize()
}

func TestHandleQuotationServicesSave_DefaultPackage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Services Developer")
	handler := HandleQuotationServicesSave(app)

	draft := defaultPackageDraft(t, "Package A")
	payload, err := json.Marshal(servicesSaveRequest{Headers: draft.Headers})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/services", quo.Id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out services.Draft
	testhelpers.DecodeJSON(t, rec.Body.String(), &out)
	if out.RequiresApproval {
		t.Error("untouched package selection should not require approval")
	}

	saved, err := app.FindRecordById("quotations", quo.Id)
	if err != nil {
		t.Fatalf("reload quotation: %v", err)
	}
	if saved.GetBool("requires_approval") {
		t.Error("requires_approval persisted as true for default package")
	}
}

func TestHandleQuotationServicesSave_DeviationRequiresApproval(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Deviation Developer")
	handler := HandleQuotationServicesSave(app)

	draft := defaultPackageDraft(t, "Package A")
	// Drop one default main service; the recomputed flag must flip even
	// though the client claims no approval is needed.
	draft.Headers[0].Services = draft.Headers[0].Services[:1]
	draft.RequiresApproval = false

	payload, err := json.Marshal(servicesSaveRequest{Headers: draft.Headers})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/services", quo.Id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out services.Draft
	testhelpers.DecodeJSON(t, rec.Body.String(), &out)
	if !out.RequiresApproval {
		t.Error("removing a package service must require approval")
	}

	saved, err := app.FindRecordById("quotations", quo.Id)
	if err != nil {
		t.Fatalf("reload quotation: %v", err)
	}
	if !saved.GetBool("requires_approval") {
		t.Error("requires_approval not persisted")
	}
}

func TestHandleQuotationServicesSave_DuplicateAddonCollapsed(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Addon Developer")
	handler := HandleQuotationServicesSave(app)

	catalog := services.DefaultCatalog()
	sroA, okA := catalog.FindService("Package A", "sro-membership")
	sroB, okB := catalog.FindService("Package B", "sro-membership")
	if !okA || !okB {
		t.Fatal("catalog does not offer sro-membership under both packages")
	}
	headers := []services.DraftHeader{
		{Name: "Package A", Services: []services.DraftService{{ServiceDef: sroA}}},
		{Name: "Package B", Services: []services.DraftService{{ServiceDef: sroB}}},
	}

	payload, err := json.Marshal(servicesSaveRequest{Headers: headers})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/services", quo.Id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out services.Draft
	testhelpers.DecodeJSON(t, rec.Body.String(), &out)
	count := 0
	for _, h := range out.Headers {
		for _, svc := range h.Services {
			if svc.ID == "sro-membership" {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("saved draft carries the addon %d times, want 1", count)
	}

	saved, err := app.FindRecordById("quotations", quo.Id)
	if err != nil {
		t.Fatalf("reload quotation: %v", err)
	}
	var persisted []services.DraftHeader
	if err := saved.UnmarshalJSONField("headers", &persisted); err != nil {
		t.Fatalf("decode headers: %v", err)
	}
	count = 0
	for _, h := range persisted {
		for _, svc := range h.Services {
			if svc.ID == "sro-membership" {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("persisted headers carry the addon %d times, want 1", count)
	}
}

func TestHandleQuotationServicesSave_ResetsApprovedStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sneha", "sk-sneha", "manager", 50000)
	quo := testhelpers.CreateTestQuotation(t, app, "Reset Developer")
	quo.Set("status", "approved")
	quo.Set("approved_by", user.Id)
	if err := app.Save(quo); err != nil {
		t.Fatalf("failed to set approved state: %v", err)
	}
	handler := HandleQuotationServicesSave(app)

	draft := defaultPackageDraft(t, "Package B")
	payload, err := json.Marshal(servicesSaveRequest{Headers: draft.Headers})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/services", quo.Id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	saved, err := app.FindRecordById("quotations", quo.Id)
	if err != nil {
		t.Fatalf("reload quotation: %v", err)
	}
	if got := saved.GetString("status"); got != "draft" {
		t.Errorf("status = %q, want draft after selection change", got)
	}
	if got := saved.GetString("approved_by"); got != "" {
		t.Errorf("approved_by = %q, want cleared", got)
	}
}

func TestHandleQuotationServicesSave_EmptyHeaders(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Empty Developer")
	handler := HandleQuotationServicesSave(app)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/services", quo.Id), bytes.NewReader([]byte(`{"headers": []}`)))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
