package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

// buildQuoteExportData fetches a quotation and its items, returning the
// viewmodel the exporters consume.
func buildQuoteExportData(app *pocketbase.PocketBase, parser *services.QuoteParser, quoteID string) (services.QuoteExportData, error) {
	quote, err := app.FindRecordById("quotations", quoteID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("quotation not found: %w", err)
	}

	itemRecords, err := app.FindRecordsByFilter(
		"quotation_items",
		"quotation = {:quoteId}",
		"sort_order",
		0, 0,
		map[string]any{"quoteId": quoteID},
	)
	if err != nil {
		itemRecords = nil
	}

	rows := make([]services.QuoteExportRow, 0, len(itemRecords))
	for _, rec := range itemRecords {
		rows = append(rows, services.QuoteExportRow{
			Descripcion:    rec.GetString("descripcion"),
			Unidad:         rec.GetString("unidad"),
			Cantidad:       rec.GetString("cantidad"),
			PrecioUnitario: rec.GetString("precio_unitario"),
			Importe:        rec.GetString("importe"),
		})
	}

	subtotal := quote.GetFloat("subtotal")
	total := quote.GetFloat("total")
	parsed := parser.Parse(quote.GetString("markdown"))

	created := quote.GetDateTime("created").Time()
	if created.IsZero() {
		created = time.Now()
	}

	return services.QuoteExportData{
		Folio:       quote.GetString("folio"),
		Title:       quote.GetString("title"),
		ClientName:  quote.GetString("client_name"),
		CreatedDate: created.Format("02/01/2006"),
		Rows:        rows,
		Notes:       parsed.Notes,
		Subtotal:    subtotal,
		IVA:         services.IVAAmount(total, true),
		Total:       total,
		IncludesIVA: true,
	}, nil
}

// HandleQuoteExport streams a quotation as XLSX, PDF or CSV.
// GET /api/quotes/{id}/export/{format}
func HandleQuoteExport(app *pocketbase.PocketBase, parser *services.QuoteParser) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		format := e.Request.PathValue("format")

		data, err := buildQuoteExportData(app, parser, quoteID)
		if err != nil {
			return apis.NewNotFoundError("Quotation not found", err)
		}

		filename := sanitizeFilename(data.Folio)
		if filename == "" {
			filename = "cotizacion"
		}

		var payload []byte
		var contentType string

		switch format {
		case "xlsx":
			payload, err = services.GenerateQuoteExcel(data)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			filename += ".xlsx"
		case "pdf":
			payload, err = services.GenerateQuotePDF(data)
			contentType = "application/pdf"
			filename += ".pdf"
		case "csv":
			payload, err = generateQuoteCSV(data)
			contentType = "text/csv; charset=utf-8"
			filename += ".csv"
		default:
			return apis.NewBadRequestError("Unsupported export format: must be xlsx, pdf or csv", nil)
		}
		if err != nil {
			log.Printf("quote_export: %s generation failed for %s: %v", format, quoteID, err)
			return apis.NewApiError(http.StatusInternalServerError, "Export failed", err)
		}

		e.Response.Header().Set("Content-Type", contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(payload)
		return err
	}
}

// generateQuoteCSV renders the quotation items as CSV with a summary
// footer.
func generateQuoteCSV(data services.QuoteExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Descripción", "Unidad", "Cantidad", "Precio Unitario", "Importe"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range data.Rows {
		if err := w.Write([]string{r.Descripcion, r.Unidad, r.Cantidad, r.PrecioUnitario, r.Importe}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	footer := [][]string{
		{"", "", "", "Subtotal", services.FormatMXN(data.Subtotal)},
		{"", "", "", "IVA (16%)", services.FormatMXN(data.IVA)},
		{"", "", "", "Total", services.FormatMXN(data.Total)},
	}
	for _, row := range footer {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv footer: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFilename replaces characters that break Content-Disposition
// or filesystems with hyphens.
func sanitizeFilename(name string) string {
	return strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-").Replace(name)
}
