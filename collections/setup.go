package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the sales_users and quotations
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	salesUsers := ensureCollection(app, "sales_users", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "token", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"sales", "manager", "admin"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "discount_threshold", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "developer_type",
			Required:  true,
			Values:    []string{"Category 1", "Category 2", "Category 3"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "project_region", Required: true})
		c.Fields.Add(&core.NumberField{Name: "plot_area", Required: false})
		c.Fields.Add(&core.TextField{Name: "developer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_mobile", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "validity", Required: false})
		c.Fields.Add(&core.TextField{Name: "payment_schedule", Required: false})
		c.Fields.Add(&core.TextField{Name: "rera_number", Required: false})

		c.Fields.Add(&core.JSONField{Name: "headers"})
		c.Fields.Add(&core.JSONField{Name: "custom_header_names"})
		c.Fields.Add(&core.JSONField{Name: "pricing_breakdown"})
		c.Fields.Add(&core.JSONField{Name: "applicable_terms"})
		c.Fields.Add(&core.JSONField{Name: "accepted_terms"})
		c.Fields.Add(&core.JSONField{Name: "custom_terms"})
		c.Fields.Add(&core.JSONField{Name: "accepted_custom_terms"})

		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "service_discount_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "global_discount_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "global_discount_percent", Required: false})

		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "pending_approval", "approved"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "requires_approval"})
		c.Fields.Add(&core.BoolField{Name: "terms_accepted"})
		c.Fields.Add(&core.SelectField{
			Name:      "display_mode",
			Required:  false,
			Values:    []string{"bifurcated", "lumpsum"},
			MaxSelect: 1,
		})

		c.Fields.Add(&core.RelationField{
			Name:         "created_by",
			Required:     false,
			CollectionId: salesUsers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "approved_by",
			Required:     false,
			CollectionId: salesUsers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.DateField{Name: "approved_at"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
