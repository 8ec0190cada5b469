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

func reconciledBreakdown() services.PricingBreakdown {
	return services.PricingBreakdown{
		{Header: "Package A", Services: []services.ServicePricing{
			{
				Name:            "Project Registration",
				TotalAmount:     55000,
				DiscountAmount:  5000,
				DiscountPercent: 9.09,
				FinalAmount:     50000,
			},
			{
				Name:        "Quarterly Progress Report (QPR)",
				TotalAmount: 45000,
				FinalAmount: 45000,
			},
		}},
	}
}

func TestHandlePricingSave_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Pricing Developer")
	handler := HandlePricingSave(app)

	payload, err := json.Marshal(pricingSaveRequest{Breakdown: reconciledBreakdown()})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/pricing", quo.Id), bytes.NewReader(payload))
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

	saved, err := app.FindRecordById("quotations", quo.Id)
	if err != nil {
		t.Fatalf("reload quotation: %v", err)
	}
	if got := saved.GetFloat("total_amount"); got != 95000 {
		t.Errorf("total_amount = %v, want 95000", got)
	}
	if got := saved.GetFloat("discount_amount"); got != 5000 {
		t.Errorf("discount_amount = %v, want 5000", got)
	}
	if got := saved.GetFloat("discount_percent"); got != 5 {
		t.Errorf("discount_percent = %v, want 5", got)
	}
	if got := saved.GetString("status"); got != "draft" {
		t.Errorf("status = %q, want draft (no approval required)", got)
	}
}

func TestHandlePricingSave_PromotesToPendingApproval(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Approval Developer")
	quo.Set("requires_approval", true)
	if err := app.Save(quo); err != nil {
		t.Fatalf("failed to flag approval: %v", err)
	}
	handler := HandlePricingSave(app)

	payload, err := json.Marshal(pricingSaveRequest{Breakdown: reconciledBreakdown()})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/pricing", quo.Id), bytes.NewReader(payload))
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
	if got := saved.GetString("status"); got != "pending_approval" {
		t.Errorf("status = %q, want pending_approval", got)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"status":"pending_approval"`)
}

func TestHandlePricingSave_ThresholdWarning(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Threshold Developer")
	handler := HandlePricingSave(app)

	payload, err := json.Marshal(pricingSaveRequest{Breakdown: reconciledBreakdown()})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/pricing", quo.Id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", quo.Id)
	req = withSalesUser(req, &SalesUser{ID: "u1", Name: "Anita", Role: "sales", DiscountThreshold: 1000})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"thresholdWarning":true`, `"discountThreshold":1000`)
}

func TestHandlePricingSave_Rejections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quo := testhelpers.CreateTestQuotation(t, app, "Reject Developer")
	handler := HandlePricingSave(app)

	brokenFinal := reconciledBreakdown()
	brokenFinal[0].Services[0].FinalAmount = 49000

	brokenPercent := reconciledBreakdown()
	brokenPercent[0].Services[0].DiscountPercent = 25

	overDiscount := reconciledBreakdown()
	overDiscount[0].Services[0].DiscountAmount = 60000
	overDiscount[0].Services[0].FinalAmount = -5000

	tests := []struct {
		name string
		req  pricingSaveRequest
	}{
		{"empty breakdown", pricingSaveRequest{}},
		{"final does not reconcile", pricingSaveRequest{Breakdown: brokenFinal}},
		{"percent does not reconcile", pricingSaveRequest{Breakdown: brokenPercent}},
		{"discount exceeds total", pricingSaveRequest{Breakdown: overDiscount}},
		{"global percent out of range", pricingSaveRequest{
			Breakdown:      reconciledBreakdown(),
			GlobalDiscount: services.GlobalDiscount{Type: services.DiscountPercent, Percent: 150},
		}},
		{"global amount exceeds subtotal", pricingSaveRequest{
			Breakdown:      reconciledBreakdown(),
			GlobalDiscount: services.GlobalDiscount{Type: services.DiscountAmount, Amount: 200000},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatalf("marshal request: %v", err)
			}
			req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/quotations/%s/pricing", quo.Id), bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", quo.Id)
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
