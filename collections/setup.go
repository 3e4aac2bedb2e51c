package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the Cotizador
// needs: suppliers, products, supplier-product price links, quotations
// and their items, inventory movements, the task board and the social
// calendar.
func Setup(app *pocketbase.PocketBase) {
	suppliers := ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	products := ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "sku", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.BoolField{Name: "iva_included"})
		c.Fields.Add(&core.NumberField{Name: "stock", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_percent", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "supplier_products", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "supplier",
			Required:      true,
			CollectionId:  suppliers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "shipping_method",
			Required:  false,
			Values:    []string{"DIRECT", "OCURRE"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "shipping_direct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_stage1", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_stage2", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_stage3", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_stage4", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_percent", Required: false})
		c.Fields.Add(&core.TextField{Name: "currency", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotations := ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "folio", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "prompt", Required: false})
		c.Fields.Add(&core.TextField{Name: "markdown", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "sent", "accepted", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotation_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "descripcion", Required: true})
		c.Fields.Add(&core.TextField{Name: "unidad", Required: false})
		c.Fields.Add(&core.TextField{Name: "cantidad", Required: false})
		c.Fields.Add(&core.TextField{Name: "precio_unitario", Required: false})
		c.Fields.Add(&core.TextField{Name: "importe", Required: false})
	})

	ensureCollection(app, "inventory_movements", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"ENTRADA", "SALIDA", "AJUSTE"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "note", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "tasks", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"backlog", "doing", "done"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "due", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "social_posts", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "platform",
			Required:  false,
			Values:    []string{"facebook", "instagram", "whatsapp", "tiktok"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "scheduled_for", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"idea", "scheduled", "published"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "content", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "value", Required: false})
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
