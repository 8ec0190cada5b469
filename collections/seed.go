package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type salesUserDef struct {
	name              string
	token             string
	role              string
	discountThreshold float64
}

// Seed inserts the default sales team accounts. It is safe to call on
// every startup because it returns early if any sales_users records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	usersCol, err := app.FindCollectionByNameOrId("sales_users")
	if err != nil {
		return fmt.Errorf("seed: could not find sales_users collection: %w", err)
	}
	existing, err := app.FindAllRecords(usersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query sales_users: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: sales_users collection is empty – inserting seed data …")

	users := []salesUserDef{
		{name: "Anita Deshmukh", token: "sk-anita-4f8a2c91", role: "sales", discountThreshold: 10000},
		{name: "Rohan Kulkarni", token: "sk-rohan-7b3e5d24", role: "sales", discountThreshold: 10000},
		{name: "Sneha Joshi", token: "sk-sneha-1c9f6a58", role: "manager", discountThreshold: 50000},
		{name: "Prakash Sawant", token: "sk-prakash-8d2b4e77", role: "admin", discountThreshold: 0},
	}

	for _, u := range users {
		r := core.NewRecord(usersCol)
		r.Set("name", u.name)
		r.Set("token", u.token)
		r.Set("role", u.role)
		r.Set("discount_threshold", u.discountThreshold)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save sales user %q: %w", u.name, err)
		}
	}

	log.Printf("seed: inserted %d sales users\n", len(users))
	return nil
}
