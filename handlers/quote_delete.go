package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete removes a quotation; its items cascade.
// DELETE /api/quotes/{id}
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return apis.NewBadRequestError("Missing quotation ID", nil)
		}

		quote, err := app.FindRecordById("quotations", quoteID)
		if err != nil {
			return apis.NewNotFoundError("Quotation not found", err)
		}

		if err := app.Delete(quote); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete quotation", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": quoteID})
	}
}
