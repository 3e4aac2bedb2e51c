package collections_test

import (
	"testing"

	"cotizador/collections"
	"cotizador/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	suppliersCol, _ := app.FindCollectionByNameOrId("suppliers")
	suppliers, err := app.FindAllRecords(suppliersCol)
	if err != nil {
		t.Fatalf("query suppliers error: %v", err)
	}
	if len(suppliers) != 3 {
		t.Fatalf("expected 3 suppliers, got %d", len(suppliers))
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(productsCol)
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}

	linksCol, _ := app.FindCollectionByNameOrId("supplier_products")
	links, _ := app.FindAllRecords(linksCol)
	if len(links) != 5 {
		t.Fatalf("expected 5 supplier-product links, got %d", len(links))
	}
	for _, l := range links {
		if l.GetString("supplier") == "" || l.GetString("product") == "" {
			t.Error("link missing supplier or product relation")
		}
		if l.GetFloat("unit_price") <= 0 {
			t.Errorf("link unit_price = %v, want positive", l.GetFloat("unit_price"))
		}
	}

	// Default margin setting for the balance screen.
	settings, err := app.FindRecordsByFilter("settings",
		"key = 'default_margin_percent'", "", 1, 0, nil)
	if err != nil || len(settings) == 0 {
		t.Fatal("expected default_margin_percent setting")
	}
	if settings[0].GetString("value") != "25" {
		t.Errorf("default margin = %q, want 25", settings[0].GetString("value"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	suppliersCol, _ := app.FindCollectionByNameOrId("suppliers")
	suppliers, _ := app.FindAllRecords(suppliersCol)
	if len(suppliers) != 3 {
		t.Errorf("expected 3 suppliers after reseeding, got %d", len(suppliers))
	}
}
