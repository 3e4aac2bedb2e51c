package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

type productPayload struct {
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Unit          string   `json:"unit"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	IVAIncluded   bool     `json:"iva_included"`
	Stock         *float64 `json:"stock"`
	MarginPercent *float64 `json:"margin_percent"`
}

func productJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":             rec.Id,
		"name":           rec.GetString("name"),
		"sku":            rec.GetString("sku"),
		"unit":           rec.GetString("unit"),
		"category":       rec.GetString("category"),
		"description":    rec.GetString("description"),
		"iva_included":   rec.GetBool("iva_included"),
		"stock":          rec.GetFloat("stock"),
		"margin_percent": rec.GetFloat("margin_percent"),
	}
}

// HandleProductList returns the catalog, optionally filtered.
// GET /api/products?q=...
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		searchQuery := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		var records []*core.Record
		var err error

		if searchQuery != "" {
			records, err = app.FindRecordsByFilter(
				"products",
				"name ~ {:q} || sku ~ {:q} || category ~ {:q}",
				"name",
				0, 0,
				map[string]any{"q": searchQuery},
			)
		} else {
			records, err = app.FindAllRecords("products")
			sort.Slice(records, func(i, j int) bool {
				return records[i].GetString("name") < records[j].GetString("name")
			})
		}
		if err != nil {
			log.Printf("products: could not query products: %v", err)
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, productJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{
			"products": items,
			"total":    len(items),
		})
	}
}

// HandleProductCreate creates a product.
// POST /api/products
func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload productPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apis.NewBadRequestError("name is required", nil)
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "products collection missing", err)
		}

		rec := core.NewRecord(col)
		applyProductPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save product", err)
		}
		return e.JSON(http.StatusOK, productJSON(rec))
	}
}

// HandleProductUpdate updates an existing product.
// PATCH /api/products/{id}
func HandleProductUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Product not found", err)
		}

		var payload productPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apis.NewBadRequestError("name is required", nil)
		}

		applyProductPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save product", err)
		}
		return e.JSON(http.StatusOK, productJSON(rec))
	}
}

// HandleProductDelete removes a product and its cascading links.
// DELETE /api/products/{id}
func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Product not found", err)
		}
		if err := app.Delete(rec); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete product", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": rec.Id})
	}
}

func applyProductPayload(rec *core.Record, payload productPayload) {
	rec.Set("name", strings.TrimSpace(payload.Name))
	rec.Set("sku", payload.SKU)
	unit := payload.Unit
	if unit == "" {
		unit = services.DefaultUnit
	}
	rec.Set("unit", unit)
	rec.Set("category", payload.Category)
	rec.Set("description", payload.Description)
	rec.Set("iva_included", payload.IVAIncluded)
	if payload.Stock != nil {
		rec.Set("stock", *payload.Stock)
	}
	if payload.MarginPercent != nil {
		rec.Set("margin_percent", *payload.MarginPercent)
	}
}
