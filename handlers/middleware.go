package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const SalesUserKey contextKey = "salesUser"

// SalesUser is the resolved identity of the caller, loaded from the
// sales_users collection by the auth middleware.
type SalesUser struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Role              string  `json:"role"`
	DiscountThreshold float64 `json:"discountThreshold"`
}

// GetSalesUser extracts the authenticated sales user from the request context.
func GetSalesUser(r *http.Request) *SalesUser {
	if val, ok := r.Context().Value(SalesUserKey).(*SalesUser); ok {
		return val
	}
	return nil
}

// RequireSalesUser resolves the X-Sales-Token header to a sales_users
// record and stores the user in the request context. Requests without a
// valid token are rejected.
func RequireSalesUser(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := e.Request.Header.Get("X-Sales-Token")
		if token == "" {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing X-Sales-Token header"})
		}

		records, err := app.FindRecordsByFilter(
			"sales_users",
			"token = {:token}",
			"",
			1,
			0,
			map[string]any{"token": token},
		)
		if err != nil || len(records) == 0 {
			log.Printf("middleware: unknown sales token")
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid sales token"})
		}

		rec := records[0]
		user := &SalesUser{
			ID:                rec.Id,
			Name:              rec.GetString("name"),
			Role:              rec.GetString("role"),
			DiscountThreshold: rec.GetFloat("discount_threshold"),
		}

		ctx := context.WithValue(e.Request.Context(), SalesUserKey, user)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
