package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type supplierDef struct {
	name        string
	contactName string
	phone       string
	email       string
	address     string
}

type productDef struct {
	name        string
	sku         string
	unit        string
	category    string
	description string
	stock       float64
}

type linkDef struct {
	supplierIdx    int
	productIdx     int
	unitPrice      float64
	shippingMethod string
	shippingDirect float64
	stage1         float64
	stage2         float64
	stage3         float64
	stage4         float64
	marginPercent  float64
}

// Seed populates the catalog with a small set of realistic agricultural
// supplies. It is safe to call on every startup because it returns
// early if any supplier records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if suppliers already exist ─────────────────
	suppliersCol, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		return fmt.Errorf("seed: could not find suppliers collection: %w", err)
	}
	existing, err := app.FindAllRecords(suppliersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query suppliers: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: suppliers collection is empty, inserting seed data")

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	linksCol, err := app.FindCollectionByNameOrId("supplier_products")
	if err != nil {
		return fmt.Errorf("seed: could not find supplier_products collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	suppliers := []supplierDef{
		{
			name:        "Agroinsumos del Bajío",
			contactName: "María Elena Torres",
			phone:       "4611234567",
			email:       "ventas@agrobajio.mx",
			address:     "Carretera Celaya-Salamanca km 12, Celaya, Gto.",
		},
		{
			name:        "Riegos y Mallas del Norte",
			contactName: "Jorge Salinas",
			phone:       "8187654321",
			email:       "contacto@riegosnorte.mx",
			address:     "Av. Industrias 450, San Nicolás, N.L.",
		},
		{
			name:        "Plásticos Agrícolas de Sinaloa",
			contactName: "Ana Beltrán",
			phone:       "6679876543",
			email:       "ana@plasticossin.mx",
			address:     "Blvd. Culiacán 2300, Culiacán, Sin.",
		},
	}

	products := []productDef{
		{
			name:        "Malla sombra 35% 4.20m",
			sku:         "MS-35-420",
			unit:        "Rollo",
			category:    "Mallas",
			description: "Malla sombra tejida al 35%, rollo de 100 m lineales",
			stock:       18,
		},
		{
			name:        "Cinta de riego calibre 8000",
			sku:         "CR-8000",
			unit:        "Rollo",
			category:    "Riego",
			description: "Cinta de riego con goteros a 20 cm, rollo de 3,050 m",
			stock:       42,
		},
		{
			name:        "Acolchado plástico negro 1.20m",
			sku:         "AP-N-120",
			unit:        "Rollo",
			category:    "Acolchados",
			description: "Película de acolchado negro calibre 90, rollo de 1,000 m",
			stock:       25,
		},
		{
			name:        "Válvula de admisión de aire 2\"",
			sku:         "VA-2",
			unit:        "PIEZA",
			category:    "Riego",
			description: "Válvula de admisión y expulsión de aire, rosca NPT 2\"",
			stock:       60,
		},
	}

	links := []linkDef{
		{supplierIdx: 0, productIdx: 0, unitPrice: 2450, shippingMethod: "DIRECT", shippingDirect: 350, marginPercent: 25},
		{supplierIdx: 0, productIdx: 3, unitPrice: 410, shippingMethod: "DIRECT", shippingDirect: 80},
		{supplierIdx: 1, productIdx: 0, unitPrice: 2280, shippingMethod: "OCURRE", stage1: 120, stage2: 150, stage3: 90, stage4: 60, marginPercent: 30},
		{supplierIdx: 1, productIdx: 1, unitPrice: 1890, shippingMethod: "DIRECT", shippingDirect: 220},
		{supplierIdx: 2, productIdx: 2, unitPrice: 3150, shippingMethod: "OCURRE", stage1: 200, stage2: 180, stage3: 140, stage4: 110, marginPercent: 22},
	}

	supplierRecords := make([]*core.Record, 0, len(suppliers))
	for _, s := range suppliers {
		rec := core.NewRecord(suppliersCol)
		rec.Set("name", s.name)
		rec.Set("contact_name", s.contactName)
		rec.Set("phone", s.phone)
		rec.Set("email", s.email)
		rec.Set("address", s.address)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save supplier %q: %w", s.name, err)
		}
		supplierRecords = append(supplierRecords, rec)
	}

	productRecords := make([]*core.Record, 0, len(products))
	for _, p := range products {
		rec := core.NewRecord(productsCol)
		rec.Set("name", p.name)
		rec.Set("sku", p.sku)
		rec.Set("unit", p.unit)
		rec.Set("category", p.category)
		rec.Set("description", p.description)
		rec.Set("stock", p.stock)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save product %q: %w", p.name, err)
		}
		productRecords = append(productRecords, rec)
	}

	for _, l := range links {
		rec := core.NewRecord(linksCol)
		rec.Set("supplier", supplierRecords[l.supplierIdx].Id)
		rec.Set("product", productRecords[l.productIdx].Id)
		rec.Set("unit_price", l.unitPrice)
		rec.Set("shipping_method", l.shippingMethod)
		rec.Set("shipping_direct", l.shippingDirect)
		rec.Set("shipping_stage1", l.stage1)
		rec.Set("shipping_stage2", l.stage2)
		rec.Set("shipping_stage3", l.stage3)
		rec.Set("shipping_stage4", l.stage4)
		if l.marginPercent > 0 {
			rec.Set("margin_percent", l.marginPercent)
		}
		rec.Set("currency", "MXN")
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save supplier_product link: %w", err)
		}
	}

	// Default margin used by the balance screen when a product carries
	// no override.
	margin := core.NewRecord(settingsCol)
	margin.Set("key", "default_margin_percent")
	margin.Set("value", "25")
	if err := app.Save(margin); err != nil {
		return fmt.Errorf("seed: save default margin setting: %w", err)
	}

	log.Printf("seed: inserted %d suppliers, %d products, %d links",
		len(supplierRecords), len(productRecords), len(links))
	return nil
}
