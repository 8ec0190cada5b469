package handlers

import (
	"encoding/json"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// decodeQuotation maps a quotations record to the full services.Quotation
// shape used by pricing, terms and document generation. Malformed JSON
// fields are logged and left empty rather than failing the whole read.
func decodeQuotation(rec *core.Record) services.Quotation {
	q := services.Quotation{
		ID:              rec.Id,
		DeveloperType:   rec.GetString("developer_type"),
		ProjectRegion:   rec.GetString("project_region"),
		PlotArea:        rec.GetFloat("plot_area"),
		DeveloperName:   rec.GetString("developer_name"),
		ProjectName:     rec.GetString("project_name"),
		ContactMobile:   rec.GetString("contact_mobile"),
		ContactEmail:    rec.GetString("contact_email"),
		Validity:        rec.GetString("validity"),
		PaymentSchedule: rec.GetString("payment_schedule"),
		ReraNumber:      rec.GetString("rera_number"),

		TotalAmount:           rec.GetFloat("total_amount"),
		DiscountAmount:        rec.GetFloat("discount_amount"),
		DiscountPercent:       rec.GetFloat("discount_percent"),
		ServiceDiscountAmount: rec.GetFloat("service_discount_amount"),
		GlobalDiscountAmount:  rec.GetFloat("global_discount_amount"),
		GlobalDiscountPercent: rec.GetFloat("global_discount_percent"),

		Status:           rec.GetString("status"),
		RequiresApproval: rec.GetBool("requires_approval"),
		TermsAccepted:    rec.GetBool("terms_accepted"),
		DisplayMode:      rec.GetString("display_mode"),
		CreatedBy:        rec.GetString("created_by"),
		ApprovedBy:       rec.GetString("approved_by"),
		CreatedAt:        rec.GetDateTime("created").Time(),
	}

	unmarshalJSONField(rec, "headers", &q.Headers)
	unmarshalJSONField(rec, "pricing_breakdown", &q.PricingBreakdown)
	unmarshalJSONField(rec, "applicable_terms", &q.ApplicableTerms)
	unmarshalJSONField(rec, "accepted_terms", &q.AcceptedTerms)
	unmarshalJSONField(rec, "custom_terms", &q.CustomTerms)
	unmarshalJSONField(rec, "accepted_custom_terms", &q.AcceptedCustomTerms)

	return q
}

func unmarshalJSONField(rec *core.Record, field string, out any) {
	if err := rec.UnmarshalJSONField(field, out); err != nil {
		log.Printf("quotation: could not decode %s on %s: %v", field, rec.Id, err)
	}
}

// setJSONField marshals v and stores it in the record's JSON column.
func setJSONField(rec *core.Record, field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	rec.Set(field, string(raw))
	return nil
}
