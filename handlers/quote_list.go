package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// QuoteListItem is one row of the quotation history.
type QuoteListItem struct {
	ID         string  `json:"id"`
	Folio      string  `json:"folio"`
	Title      string  `json:"title"`
	ClientName string  `json:"client_name"`
	Status     string  `json:"status"`
	Subtotal   float64 `json:"subtotal"`
	Total      float64 `json:"total"`
	Created    string  `json:"created"`
}

// HandleQuoteList returns the quotation history, optionally filtered by
// a search query over folio, title and client name.
// GET /api/quotes?q=...
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		searchQuery := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		var records []*core.Record
		var err error

		if searchQuery != "" {
			records, err = app.FindRecordsByFilter(
				"quotations",
				"folio ~ {:q} || title ~ {:q} || client_name ~ {:q}",
				"-created",
				0, 0,
				map[string]any{"q": searchQuery},
			)
		} else {
			records, err = app.FindAllRecords("quotations")
			sort.Slice(records, func(i, j int) bool {
				return records[i].GetString("created") > records[j].GetString("created")
			})
		}
		if err != nil {
			log.Printf("quote_list: could not query quotations: %v", err)
			records = nil
		}

		items := make([]QuoteListItem, 0, len(records))
		for _, rec := range records {
			items = append(items, QuoteListItem{
				ID:         rec.Id,
				Folio:      rec.GetString("folio"),
				Title:      rec.GetString("title"),
				ClientName: rec.GetString("client_name"),
				Status:     rec.GetString("status"),
				Subtotal:   rec.GetFloat("subtotal"),
				Total:      rec.GetFloat("total"),
				Created:    rec.GetString("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"quotes": items,
			"total":  len(items),
		})
	}
}
