package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// Inventory movement types.
const (
	MovementIn     = "ENTRADA"
	MovementOut    = "SALIDA"
	MovementAdjust = "AJUSTE"
)

type movementPayload struct {
	ProductID string  `json:"product_id"`
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	Note      string  `json:"note"`
}

// HandleInventoryList returns movements, newest first, optionally
// scoped to one product.
// GET /api/inventory?product=...
func HandleInventoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.URL.Query().Get("product")

		var records []*core.Record
		var err error
		if productID != "" {
			records, err = app.FindRecordsByFilter(
				"inventory_movements",
				"product = {:productId}",
				"-created",
				0, 0,
				map[string]any{"productId": productID},
			)
		} else {
			records, err = app.FindAllRecords("inventory_movements")
			sort.Slice(records, func(i, j int) bool {
				return records[i].GetString("created") > records[j].GetString("created")
			})
		}
		if err != nil {
			log.Printf("inventory: could not query movements: %v", err)
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":       rec.Id,
				"product":  rec.GetString("product"),
				"type":     rec.GetString("type"),
				"quantity": rec.GetFloat("quantity"),
				"note":     rec.GetString("note"),
				"created":  rec.GetString("created"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"movements": items,
			"total":     len(items),
		})
	}
}

// HandleInventoryMove registers a movement and updates the product's
// running stock. ENTRADA adds, SALIDA subtracts, AJUSTE sets the stock
// to the given quantity.
// POST /api/inventory
func HandleInventoryMove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload movementPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}

		product, err := app.FindRecordById("products", payload.ProductID)
		if err != nil {
			return apis.NewNotFoundError("Product not found", err)
		}

		stock := product.GetFloat("stock")
		switch payload.Type {
		case MovementIn:
			stock += payload.Quantity
		case MovementOut:
			stock -= payload.Quantity
		case MovementAdjust:
			stock = payload.Quantity
		default:
			return apis.NewBadRequestError("type must be ENTRADA, SALIDA or AJUSTE", nil)
		}

		col, err := app.FindCollectionByNameOrId("inventory_movements")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "inventory_movements collection missing", err)
		}

		movement := core.NewRecord(col)
		movement.Set("product", product.Id)
		movement.Set("type", payload.Type)
		movement.Set("quantity", payload.Quantity)
		movement.Set("note", payload.Note)
		if err := app.Save(movement); err != nil {
			return apis.NewBadRequestError("Could not save movement", err)
		}

		product.Set("stock", stock)
		if err := app.Save(product); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not update product stock", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":      movement.Id,
			"product": product.Id,
			"type":    payload.Type,
			"stock":   stock,
		})
	}
}
