package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// HandleCatalog returns a handler that serves the static service catalog
// and option lists the quotation builder works from.
func HandleCatalog(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog := services.DefaultCatalog()

		headerServices := make(map[string][]services.ServiceDef)
		for _, name := range catalog.HeaderNames() {
			headerServices[name] = catalog.ServicesForHeader(name)
		}

		years := catalog.YearOptions()
		quarters := make(map[string][]string, len(years))
		for _, year := range years {
			quarters[year] = catalog.QuartersForYear(year)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"headers":                catalog.HeaderNames(),
			"services":               headerServices,
			"years":                  years,
			"quarters":               quarters,
			"developerTypes":         services.DeveloperTypeOptions,
			"regions":                services.RegionOptions,
			"validityOptions":        services.ValidityOptions,
			"paymentScheduleOptions": services.PaymentScheduleOptions,
			"displayModeOptions":     services.DisplayModeOptions,
		})
	}
}
