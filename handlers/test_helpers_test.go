package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withSalesUser stores an authenticated sales user in the request context,
// as the auth middleware would.
func withSalesUser(req *http.Request, user *SalesUser) *http.Request {
	ctx := context.WithValue(req.Context(), SalesUserKey, user)
	return req.WithContext(ctx)
}
