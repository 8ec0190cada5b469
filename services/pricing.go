package services

import (
	"math"
	"strconv"
	"strings"
)

// ServicePricing is one priced line of the breakdown. TotalAmount is the
// server-computed base and never changes after the fetch; the three
// discount fields stay mutually reconciled on every edit.
type ServicePricing struct {
	Name                string  `json:"name"`
	TotalAmount         float64 `json:"totalAmount"`
	BasePrice           float64 `json:"basePrice,omitempty"`
	RequiresYearQuarter bool    `json:"requiresYearQuarter,omitempty"`
	QuarterCount        int     `json:"quarterCount,omitempty"`
	RequiresYearOnly    bool    `json:"requiresYearOnly,omitempty"`
	YearCount           int     `json:"yearCount,omitempty"`

	FinalAmount     float64 `json:"finalAmount"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
}

// HeaderPricing groups the priced services of one header.
type HeaderPricing struct {
	Header   string           `json:"header"`
	Services []ServicePricing `json:"services"`
}

// PricingBreakdown is the full per-header, per-service price structure a
// discount editing session works on.
type PricingBreakdown []HeaderPricing

// PriceField names the editable fields of a service price row.
type PriceField string

const (
	FieldFinalAmount     PriceField = "finalAmount"
	FieldDiscountAmount  PriceField = "discountAmount"
	FieldDiscountPercent PriceField = "discountPercent"
)

// DiscountType selects the global discount mode layered on top of the
// service-level discounts.
type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// GlobalDiscount is the draft-level discount applied after all
// service-level edits.
type GlobalDiscount struct {
	Type    DiscountType `json:"type"`
	Percent float64      `json:"percent"`
	Amount  float64      `json:"amount"`
}

// Totals is the draft-level roll-up of a breakdown plus global discount.
type Totals struct {
	OriginalSubtotal       float64 `json:"originalSubtotal"`
	ServiceSubtotal        float64 `json:"serviceSubtotal"`
	ServiceDiscount        float64 `json:"serviceDiscount"`
	GlobalDiscount         float64 `json:"globalDiscount"`
	Total                  float64 `json:"total"`
	TotalDiscount          float64 `json:"totalDiscount"`
	EffectiveGlobalPercent float64 `json:"effectiveGlobalPercent"`
}

// ParseAmount converts raw user input to a number. Blank or non-numeric
// input reads as 0.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ApplyServiceEdit reconciles a single-field edit against the immutable
// TotalAmount. After any edit, FinalAmount + DiscountAmount == TotalAmount
// (to rounding), FinalAmount >= 0 and DiscountPercent stays in [0,100].
// An entered discount larger than the total clamps to the total rather
// than producing a negative price.
func ApplyServiceEdit(svc *ServicePricing, field PriceField, raw string) {
	total := svc.TotalAmount

	switch field {
	case FieldFinalAmount:
		final := math.Max(ParseAmount(raw), 0)
		svc.FinalAmount = final
		svc.DiscountAmount = math.Max(total-final, 0)
		svc.DiscountPercent = percentOf(svc.DiscountAmount, total)

	case FieldDiscountAmount:
		discount := clamp(ParseAmount(raw), 0, total)
		svc.DiscountAmount = discount
		svc.FinalAmount = math.Max(total-discount, 0)
		svc.DiscountPercent = percentOf(discount, total)

	case FieldDiscountPercent:
		percent := clamp(ParseAmount(raw), 0, 100)
		discount := math.Round(total * percent / 100)
		svc.DiscountPercent = percent
		svc.DiscountAmount = discount
		svc.FinalAmount = math.Max(total-discount, 0)
	}
}

// ResetDiscounts restores every row to its undiscounted state. Used when a
// fetched breakdown is handed to the editor.
func (b PricingBreakdown) ResetDiscounts() {
	for hi := range b {
		for si := range b[hi].Services {
			svc := &b[hi].Services[si]
			svc.FinalAmount = svc.TotalAmount
			svc.DiscountAmount = 0
			svc.DiscountPercent = 0
		}
	}
}

// Totals rolls the breakdown up to draft level: service-level discounts
// first, then the global discount clamped so it never exceeds the
// post-service subtotal.
func (b PricingBreakdown) Totals(global GlobalDiscount) Totals {
	var t Totals
	for _, header := range b {
		for _, svc := range header.Services {
			t.OriginalSubtotal += svc.TotalAmount
			t.ServiceSubtotal += svc.FinalAmount
		}
	}
	t.ServiceDiscount = math.Max(t.OriginalSubtotal-t.ServiceSubtotal, 0)

	switch global.Type {
	case DiscountPercent:
		t.GlobalDiscount = t.ServiceSubtotal * clamp(global.Percent, 0, 100) / 100
	case DiscountAmount:
		t.GlobalDiscount = math.Max(global.Amount, 0)
	}
	t.GlobalDiscount = math.Min(t.GlobalDiscount, t.ServiceSubtotal)

	t.Total = math.Max(t.ServiceSubtotal-t.GlobalDiscount, 0)
	t.TotalDiscount = t.ServiceDiscount + t.GlobalDiscount
	t.EffectiveGlobalPercent = percentOf(t.GlobalDiscount, t.ServiceSubtotal)
	return t
}

// LinkGlobalDiscount mirrors the per-service reconciliation for the global
// discount pair: editing one field recomputes the other against the
// current service subtotal, each clamped to its valid range.
func LinkGlobalDiscount(global *GlobalDiscount, field PriceField, raw string, serviceSubtotal float64) {
	switch field {
	case FieldDiscountPercent:
		percent := clamp(ParseAmount(raw), 0, 100)
		global.Percent = percent
		global.Amount = math.Round(serviceSubtotal * percent / 100)

	case FieldDiscountAmount:
		amount := clamp(ParseAmount(raw), 0, math.Round(serviceSubtotal))
		global.Amount = amount
		global.Percent = percentOf(amount, serviceSubtotal)
	}
}

// percentOf returns part/whole as a percentage, 0 when the whole is 0.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
