package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

// HandleQuoteView returns one quotation with its stored line items and
// the characteristics extracted from the raw markdown.
// GET /api/quotes/{id}
func HandleQuoteView(app *pocketbase.PocketBase, parser *services.QuoteParser) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return apis.NewBadRequestError("Missing quotation ID", nil)
		}

		quote, err := app.FindRecordById("quotations", quoteID)
		if err != nil {
			return apis.NewNotFoundError("Quotation not found", err)
		}

		itemRecords, err := app.FindRecordsByFilter(
			"quotation_items",
			"quotation = {:quoteId}",
			"sort_order",
			0, 0,
			map[string]any{"quoteId": quoteID},
		)
		if err != nil {
			log.Printf("quote_view: could not query items for %s: %v", quoteID, err)
			itemRecords = nil
		}

		items := make([]services.QuotationItem, 0, len(itemRecords))
		for _, rec := range itemRecords {
			items = append(items, services.QuotationItem{
				Descripcion:    rec.GetString("descripcion"),
				Unidad:         rec.GetString("unidad"),
				Cantidad:       rec.GetString("cantidad"),
				PrecioUnitario: rec.GetString("precio_unitario"),
				Importe:        rec.GetString("importe"),
			})
		}

		markdown := quote.GetString("markdown")

		return e.JSON(http.StatusOK, map[string]any{
			"id":              quote.Id,
			"folio":           quote.GetString("folio"),
			"title":           quote.GetString("title"),
			"client_name":     quote.GetString("client_name"),
			"status":          quote.GetString("status"),
			"subtotal":        quote.GetFloat("subtotal"),
			"total":           quote.GetFloat("total"),
			"created":         quote.GetString("created"),
			"markdown":        markdown,
			"items":           items,
			"characteristics": parser.ExtractCharacteristics(markdown),
		})
	}
}
