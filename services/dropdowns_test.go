package services

import (
	"testing"
)

func TestValidityOptions(t *testing.T) {
	if len(ValidityOptions) == 0 {
		t.Fatal("ValidityOptions should not be empty")
	}
	expected := map[string]bool{"7 days": true, "15 days": true, "30 days": true}
	for _, opt := range ValidityOptions {
		if !expected[opt] {
			t.Errorf("unexpected validity option %q", opt)
		}
		delete(expected, opt)
	}
	for k := range expected {
		t.Errorf("missing validity option %q", k)
	}
}

func TestPaymentScheduleOptions(t *testing.T) {
	if len(PaymentScheduleOptions) != 4 {
		t.Fatalf("expected 4 payment schedule options, got %d", len(PaymentScheduleOptions))
	}
	for _, opt := range PaymentScheduleOptions {
		if opt == "" {
			t.Error("PaymentScheduleOptions contains empty string")
		}
	}
}

func TestDisplayModeOptions(t *testing.T) {
	if len(DisplayModeOptions) != 2 {
		t.Fatalf("expected 2 display modes, got %v", DisplayModeOptions)
	}
	if DisplayModeOptions[0] != "bifurcated" || DisplayModeOptions[1] != "lumpsum" {
		t.Errorf("unexpected display modes: %v", DisplayModeOptions)
	}
}
