// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/collections"
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

// CreateTestSupplier creates a supplier record with the given name.
func CreateTestSupplier(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		t.Fatalf("failed to find suppliers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("contact_name", "Contacto de Prueba")
	record.Set("phone", "5551234567")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier: %v", err)
	}
	return record
}

// CreateTestProduct creates a product record with the given name and SKU.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name, sku string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("sku", sku)
	record.Set("unit", "PIEZA")
	record.Set("stock", 10.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}
	return record
}

// CreateTestLink creates a supplier_products record joining the given
// supplier and product at the given unit price.
func CreateTestLink(t *testing.T, app *pocketbase.PocketBase, supplierID, productID string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("supplier_products")
	if err != nil {
		t.Fatalf("failed to find supplier_products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("supplier", supplierID)
	record.Set("product", productID)
	record.Set("unit_price", unitPrice)
	record.Set("shipping_method", "DIRECT")
	record.Set("currency", "MXN")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier_product link: %v", err)
	}
	return record
}

// CreateTestQuotation creates a quotation record with the given folio
// and K items, each "Producto N".
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, folio string, itemCount int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("folio", folio)
	record.Set("title", "Cotización de prueba")
	record.Set("client_name", "Cliente de Prueba")
	record.Set("status", "draft")
	record.Set("subtotal", float64(itemCount)*100)
	record.Set("total", float64(itemCount)*116)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		t.Fatalf("failed to find quotation_items collection: %v", err)
	}
	for i := 0; i < itemCount; i++ {
		item := core.NewRecord(itemsCol)
		item.Set("quotation", record.Id)
		item.Set("sort_order", i+1)
		item.Set("descripcion", "Producto "+string(rune('A'+i)))
		item.Set("unidad", "PIEZA")
		item.Set("cantidad", "1")
		item.Set("precio_unitario", "$100.00")
		item.Set("importe", "$100.00")
		if err := app.Save(item); err != nil {
			t.Fatalf("failed to save test quotation item: %v", err)
		}
	}

	return record
}
