// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates a sales_users record and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, name, token, role string, threshold float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sales_users")
	if err != nil {
		t.Fatalf("failed to find sales_users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("token", token)
	record.Set("role", role)
	record.Set("discount_threshold", threshold)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestQuotation creates a draft quotation record with the given
// developer name and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, developerName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("developer_name", developerName)
	record.Set("developer_type", "Category 1")
	record.Set("project_region", "Pune")
	record.Set("plot_area", 2500.0)
	record.Set("project_name", developerName+" Heights")
	record.Set("validity", "15 days")
	record.Set("payment_schedule", "50%")
	record.Set("status", "draft")
	record.Set("display_mode", "bifurcated")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// SetRecordJSON marshals v and stores it in the record's field.
func SetRecordJSON(t *testing.T, record *core.Record, field string, v any) {
	t.Helper()

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", field, err)
	}
	record.Set(field, string(raw))
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// DecodeJSON unmarshals a response body into out, failing the test on error.
func DecodeJSON(t *testing.T, body string, out any) {
	t.Helper()

	if err := json.Unmarshal([]byte(body), out); err != nil {
		t.Fatalf("failed to decode response JSON: %v\nbody (first 500 chars): %s", err, truncate(body, 500))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
