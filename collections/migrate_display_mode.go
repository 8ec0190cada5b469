package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateQuotationDisplayMode backfills the display_mode field on
// quotations saved before the lumpsum option existed. Safe to call on
// every startup -- returns early if nothing to migrate.
func MigrateQuotationDisplayMode(app *pocketbase.PocketBase) error {
	quotationsCol, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("migrate: could not find quotations collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(
		quotationsCol,
		"display_mode = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotations without display_mode: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate: found %d quotation(s) without a display_mode -- defaulting to bifurcated...\n", len(missing))

	for _, q := range missing {
		q.Set("display_mode", "bifurcated")
		if err := app.Save(q); err != nil {
			log.Printf("migrate: failed to backfill quotation %s: %v\n", q.Id, err)
			continue
		}
	}

	log.Println("migrate: display_mode backfill complete.")
	return nil
}
