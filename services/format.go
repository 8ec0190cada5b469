package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR formats an amount into Indian Rupee notation with the Indian
// numbering system: after the rightmost 3 digits, digits group in pairs
// (e.g. ₹1,23,45,678.90). Two decimal places always.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatINRWhole formats an amount rounded to whole rupees, no decimals.
// Quotation summaries and PDFs use this form.
func FormatINRWhole(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.0f", math.Round(amount))
	result := "₹" + applyIndianGrouping(raw)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a percentage with two decimals, trimming a ".00"
// tail ("15%" rather than "15.00%").
func FormatPercent(percent float64) string {
	s := fmt.Sprintf("%.2f", percent)
	s = strings.TrimSuffix(s, ".00")
	return s + "%"
}

// applyIndianGrouping inserts commas using the Indian numbering system:
// the rightmost 3 digits form the first group, then every 2 digits form
// subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
