package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

type generateQuoteRequest struct {
	Prompt     string   `json:"prompt"`
	ClientName string   `json:"client_name"`
	Products   []string `json:"products"`
}

// HandleQuoteGenerate asks the AI backend for a quotation, parses the
// returned markdown and persists the result.
// POST /api/quotes/generate
func HandleQuoteGenerate(app *pocketbase.PocketBase, client *services.QuotingClient, parser *services.QuoteParser) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req generateQuoteRequest
		if err := e.BindBody(&req); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(req.Prompt) == "" {
			return apis.NewBadRequestError("prompt is required", nil)
		}

		markdown, err := client.GenerateQuote(e.Request.Context(), services.QuoteRequest{
			Prompt:     req.Prompt,
			ClientName: req.ClientName,
			Products:   req.Products,
		})
		if err != nil {
			log.Printf("quote_generate: backend call failed: %v", err)
			return apis.NewApiError(http.StatusBadGateway, "Quoting backend unavailable", err)
		}

		parsed := parser.Parse(markdown)

		subtotal := quoteSubtotal(parsed)
		total := services.PriceWithIVA(subtotal, false)

		quotationsCol, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "quotations collection missing", err)
		}

		quote := core.NewRecord(quotationsCol)
		quote.Set("folio", NewFolio())
		quote.Set("title", parsed.Title)
		quote.Set("client_name", req.ClientName)
		quote.Set("prompt", req.Prompt)
		quote.Set("markdown", markdown)
		quote.Set("subtotal", subtotal)
		quote.Set("total", total)
		quote.Set("status", "draft")
		if err := app.Save(quote); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not save quotation", err)
		}

		if parsed.HasTable {
			itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
			if err != nil {
				return apis.NewApiError(http.StatusInternalServerError, "quotation_items collection missing", err)
			}
			order := 1
			for _, block := range parsed.Tables {
				for _, item := range block {
					rec := core.NewRecord(itemsCol)
					rec.Set("quotation", quote.Id)
					rec.Set("sort_order", order)
					rec.Set("descripcion", item.Descripcion)
					rec.Set("unidad", item.Unidad)
					rec.Set("cantidad", item.Cantidad)
					rec.Set("precio_unitario", item.PrecioUnitario)
					rec.Set("importe", item.Importe)
					if err := app.Save(rec); err != nil {
						log.Printf("quote_generate: could not save item %d: %v", order, err)
					}
					order++
				}
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":       quote.Id,
			"folio":    quote.GetString("folio"),
			"subtotal": subtotal,
			"total":    total,
			"parsed":   parsed,
		})
	}
}

// NewFolio generates a short quotation folio like COT-3F2A9C41.
func NewFolio() string {
	id := uuid.New().String()
	return "COT-" + strings.ToUpper(id[:8])
}

// quoteSubtotal sums the line totals of every parsed table block.
// Non-numeric cells ("Consultar") contribute nothing; when the importe
// cell is unusable the row falls back to precio × cantidad.
func quoteSubtotal(parsed services.ParsedQuotation) float64 {
	var subtotal float64
	for _, block := range parsed.Tables {
		for _, item := range block {
			if v, ok := parseAmount(item.Importe); ok {
				subtotal += v
				continue
			}
			price, okPrice := parseAmount(item.PrecioUnitario)
			qty, okQty := parseAmount(item.Cantidad)
			if okPrice && okQty {
				subtotal += price * qty
			}
		}
	}
	return subtotal
}

// parseAmount extracts a float from a display value such as
// "$1,234.56" or "2". Sentinels like "Consultar" report false.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
