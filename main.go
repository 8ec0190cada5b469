package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateQuotationDisplayMode(app); err != nil {
			log.Printf("Warning: display mode migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// All API routes require a resolved sales user
		se.Router.BindFunc(handlers.RequireSalesUser(app))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalog(app))

		// ── Quotation CRUD ───────────────────────────────────────
		se.Router.POST("/api/quotations", handlers.HandleQuotationCreate(app))
		se.Router.GET("/api/quotations", handlers.HandleQuotationList(app))

		// ── Pricing fetch (stateless, before /{id} routes) ──────
		se.Router.POST("/api/quotations/pricing", handlers.HandlePricingCalculate(app))

		// ── Per-quotation steps ──────────────────────────────────
		se.Router.PUT("/api/quotations/{id}/services", handlers.HandleQuotationServicesSave(app))
		se.Router.PUT("/api/quotations/{id}/pricing", handlers.HandlePricingSave(app))
		se.Router.PUT("/api/quotations/{id}/terms", handlers.HandleTermsSave(app))
		se.Router.POST("/api/quotations/{id}/approve", handlers.HandleQuotationApprove(app))

		// ── Document downloads ───────────────────────────────────
		se.Router.GET("/api/quotations/{id}/pdf", handlers.HandleQuotationExportPDF(app))
		se.Router.GET("/api/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app))

		// ── View / delete (after specific /{id}/* routes) ───────
		se.Router.GET("/api/quotations/{id}", handlers.HandleQuotationView(app))
		se.Router.DELETE("/api/quotations/{id}", handlers.HandleQuotationDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
