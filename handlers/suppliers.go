package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type supplierPayload struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

func supplierJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":           rec.Id,
		"name":         rec.GetString("name"),
		"contact_name": rec.GetString("contact_name"),
		"phone":        rec.GetString("phone"),
		"email":        rec.GetString("email"),
		"address":      rec.GetString("address"),
		"notes":        rec.GetString("notes"),
	}
}

// HandleSupplierList returns all suppliers, optionally filtered.
// GET /api/suppliers?q=...
func HandleSupplierList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		searchQuery := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		var records []*core.Record
		var err error

		if searchQuery != "" {
			records, err = app.FindRecordsByFilter(
				"suppliers",
				"name ~ {:q} || contact_name ~ {:q} || email ~ {:q}",
				"name",
				0, 0,
				map[string]any{"q": searchQuery},
			)
		} else {
			records, err = app.FindAllRecords("suppliers")
			sort.Slice(records, func(i, j int) bool {
				return records[i].GetString("name") < records[j].GetString("name")
			})
		}
		if err != nil {
			log.Printf("suppliers: could not query suppliers: %v", err)
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, supplierJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{
			"suppliers": items,
			"total":     len(items),
		})
	}
}

// HandleSupplierCreate creates a supplier.
// POST /api/suppliers
func HandleSupplierCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload supplierPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apis.NewBadRequestError("name is required", nil)
		}

		col, err := app.FindCollectionByNameOrId("suppliers")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "suppliers collection missing", err)
		}

		rec := core.NewRecord(col)
		applySupplierPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save supplier", err)
		}
		return e.JSON(http.StatusOK, supplierJSON(rec))
	}
}

// HandleSupplierUpdate updates an existing supplier.
// PATCH /api/suppliers/{id}
func HandleSupplierUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("suppliers", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Supplier not found", err)
		}

		var payload supplierPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apis.NewBadRequestError("name is required", nil)
		}

		applySupplierPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save supplier", err)
		}
		return e.JSON(http.StatusOK, supplierJSON(rec))
	}
}

// HandleSupplierDelete deletes a supplier; its price links cascade.
// DELETE /api/suppliers/{id}
func HandleSupplierDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("suppliers", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Supplier not found", err)
		}
		if err := app.Delete(rec); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete supplier", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": rec.Id})
	}
}

func applySupplierPayload(rec *core.Record, payload supplierPayload) {
	rec.Set("name", strings.TrimSpace(payload.Name))
	rec.Set("contact_name", payload.ContactName)
	rec.Set("phone", payload.Phone)
	rec.Set("email", payload.Email)
	rec.Set("address", payload.Address)
	rec.Set("notes", payload.Notes)
}
