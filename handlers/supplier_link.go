package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

type linkPayload struct {
	UnitPrice      float64  `json:"unit_price"`
	ShippingMethod string   `json:"shipping_method"`
	ShippingDirect float64  `json:"shipping_direct"`
	ShippingStage1 float64  `json:"shipping_stage1"`
	ShippingStage2 float64  `json:"shipping_stage2"`
	ShippingStage3 float64  `json:"shipping_stage3"`
	ShippingStage4 float64  `json:"shipping_stage4"`
	MarginPercent  *float64 `json:"margin_percent"`
	Currency       string   `json:"currency"`
}

// linkJSON flattens a supplier_products record, deriving the effective
// shipping cost and the suggested selling price so the comparison
// screen gets display-ready numbers.
func linkJSON(rec *core.Record) map[string]any {
	costs := services.ShippingCosts{
		Direct: rec.GetFloat("shipping_direct"),
		Stage1: rec.GetFloat("shipping_stage1"),
		Stage2: rec.GetFloat("shipping_stage2"),
		Stage3: rec.GetFloat("shipping_stage3"),
		Stage4: rec.GetFloat("shipping_stage4"),
	}
	method := rec.GetString("shipping_method")
	shipping := services.ShippingCostFromMethod(method, costs)

	margin := rec.GetFloat("margin_percent")
	if margin == 0 {
		margin = services.DefaultMarginPercent
	}
	unitPrice := rec.GetFloat("unit_price")

	return map[string]any{
		"id":              rec.Id,
		"supplier":        rec.GetString("supplier"),
		"product":         rec.GetString("product"),
		"unit_price":      unitPrice,
		"shipping_method": method,
		"shipping_costs":  costs,
		"shipping_cost":   shipping,
		"margin_percent":  margin,
		"currency":        rec.GetString("currency"),
		"suggested_price": services.SuggestedPrice(unitPrice, shipping, margin),
	}
}

// HandleSupplierProductList returns every supplier price link for a
// product, the raw material of the balance screen.
// GET /api/products/{id}/suppliers
func HandleSupplierProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("products", productID); err != nil {
			return apis.NewNotFoundError("Product not found", err)
		}

		records, err := app.FindRecordsByFilter(
			"supplier_products",
			"product = {:productId}",
			"unit_price",
			0, 0,
			map[string]any{"productId": productID},
		)
		if err != nil {
			log.Printf("supplier_link: could not query links for %s: %v", productID, err)
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, linkJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{
			"links": items,
			"total": len(items),
		})
	}
}

// HandleSupplierProductLink creates or updates the price link between a
// supplier and a product. Idempotent on the (supplier, product) pair.
// POST /api/suppliers/{supplierId}/products/{productId}
func HandleSupplierProductLink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplierID := e.Request.PathValue("supplierId")
		productID := e.Request.PathValue("productId")

		if _, err := app.FindRecordById("suppliers", supplierID); err != nil {
			return apis.NewNotFoundError("Supplier not found", err)
		}
		if _, err := app.FindRecordById("products", productID); err != nil {
			return apis.NewNotFoundError("Product not found", err)
		}

		var payload linkPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if payload.UnitPrice <= 0 {
			return apis.NewBadRequestError("unit_price must be positive", nil)
		}

		var rec *core.Record
		existing, _ := app.FindRecordsByFilter(
			"supplier_products",
			"supplier = {:supplierId} && product = {:productId}",
			"", 1, 0,
			map[string]any{"supplierId": supplierID, "productId": productID},
		)
		if len(existing) > 0 {
			rec = existing[0]
		} else {
			col, err := app.FindCollectionByNameOrId("supplier_products")
			if err != nil {
				return apis.NewApiError(http.StatusInternalServerError, "supplier_products collection missing", err)
			}
			rec = core.NewRecord(col)
			rec.Set("supplier", supplierID)
			rec.Set("product", productID)
		}

		rec.Set("unit_price", payload.UnitPrice)
		method := payload.ShippingMethod
		if method == "" {
			method = services.ShippingDirect
		}
		rec.Set("shipping_method", method)
		rec.Set("shipping_direct", payload.ShippingDirect)
		rec.Set("shipping_stage1", payload.ShippingStage1)
		rec.Set("shipping_stage2", payload.ShippingStage2)
		rec.Set("shipping_stage3", payload.ShippingStage3)
		rec.Set("shipping_stage4", payload.ShippingStage4)
		if payload.MarginPercent != nil {
			rec.Set("margin_percent", *payload.MarginPercent)
		}
		currency := payload.Currency
		if currency == "" {
			currency = "MXN"
		}
		rec.Set("currency", currency)

		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save supplier-product link", err)
		}
		return e.JSON(http.StatusOK, linkJSON(rec))
	}
}

// HandleSupplierProductUnlink removes a price link.
// DELETE /api/suppliers/{supplierId}/products/{productId}
func HandleSupplierProductUnlink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplierID := e.Request.PathValue("supplierId")
		productID := e.Request.PathValue("productId")

		existing, _ := app.FindRecordsByFilter(
			"supplier_products",
			"supplier = {:supplierId} && product = {:productId}",
			"", 1, 0,
			map[string]any{"supplierId": supplierID, "productId": productID},
		)
		if len(existing) == 0 {
			return apis.NewNotFoundError("Link not found", nil)
		}

		if err := app.Delete(existing[0]); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete link", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": existing[0].Id})
	}
}
