package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cotizador/services"
	"cotizador/testhelpers"
)

const sampleMarkdown = "# Cotización Malla Sombra\n" +
	"## Productos\n" +
	"| Descripción | Unidad | Cantidad | Precio Unitario | Importe |\n" +
	"|---|---|---|---|---|\n" +
	"| Malla sombra 50% | Rollo | 2 | $1,500.00 | $3,000.00 |\n" +
	"| Cinta de riego | Rollo | 10 | $450.00 | $4,500.00 |\n"

func newStubBackend(t *testing.T, markdown string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"markdown": markdown})
	}))
}

func TestHandleQuoteGenerate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	backend := newStubBackend(t, sampleMarkdown)
	defer backend.Close()

	handler := HandleQuoteGenerate(app, services.NewQuotingClient(backend.URL, ""), services.NewQuoteParser())

	req := newJSONRequest(http.MethodPost, "/api/quotes/generate",
		`{"prompt":"Cotiza malla sombra","client_name":"Rancho El Mirador"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		ID       string  `json:"id"`
		Folio    string  `json:"folio"`
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !strings.HasPrefix(resp.Folio, "COT-") {
		t.Errorf("folio = %q, want COT- prefix", resp.Folio)
	}
	if resp.Subtotal != 7500 {
		t.Errorf("subtotal = %v, want 7500", resp.Subtotal)
	}
	if resp.Total < 8699.99 || resp.Total > 8700.01 {
		t.Errorf("total = %v, want 8700", resp.Total)
	}

	// Quotation and items persisted.
	quote, err := app.FindRecordById("quotations", resp.ID)
	if err != nil {
		t.Fatalf("quotation not saved: %v", err)
	}
	if quote.GetString("client_name") != "Rancho El Mirador" {
		t.Errorf("client_name = %q", quote.GetString("client_name"))
	}
	if quote.GetString("status") != "draft" {
		t.Errorf("status = %q, want draft", quote.GetString("status"))
	}

	items, err := app.FindRecordsByFilter("quotation_items",
		"quotation = {:q}", "sort_order", 0, 0, map[string]any{"q": resp.ID})
	if err != nil || len(items) != 2 {
		t.Fatalf("items = %d, want 2 (err %v)", len(items), err)
	}
	if items[0].GetString("descripcion") != "Malla sombra 50%" {
		t.Errorf("items[0] = %q", items[0].GetString("descripcion"))
	}
}

func TestHandleQuoteGenerate_MissingPrompt(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteGenerate(app, services.NewQuotingClient("http://unused", ""), services.NewQuoteParser())

	req := newJSONRequest(http.MethodPost, "/api/quotes/generate", `{"prompt":"  "}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err == nil {
		t.Error("expected error for blank prompt")
	}
}

func TestHandleQuoteGenerate_BackendDown(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	handler := HandleQuoteGenerate(app, services.NewQuotingClient(backend.URL, ""), services.NewQuoteParser())

	req := newJSONRequest(http.MethodPost, "/api/quotes/generate", `{"prompt":"cotiza algo"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err == nil {
		t.Error("expected error when backend fails")
	}

	// Nothing should have been persisted.
	records, _ := app.FindAllRecords("quotations")
	if len(records) != 0 {
		t.Errorf("quotations saved = %d, want 0", len(records))
	}
}

func TestQuoteSubtotal(t *testing.T) {
	parsed := services.ParsedQuotation{
		Tables: [][]services.QuotationItem{
			{
				{Descripcion: "A", Cantidad: "2", PrecioUnitario: "$100.00", Importe: "$200.00"},
				{Descripcion: "B", Cantidad: "3", PrecioUnitario: "$50.00", Importe: "Consultar"},
				{Descripcion: "C", Cantidad: "1", PrecioUnitario: "Consultar", Importe: "Consultar"},
			},
		},
	}

	// 200 from the importe cell, 150 from precio x cantidad, 0 for the
	// row with no usable numbers.
	if got := quoteSubtotal(parsed); got != 350 {
		t.Errorf("quoteSubtotal = %v, want 350", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56", 1234.56, true},
		{"2", 2, true},
		{"$ 450.00", 450, true},
		{"Consultar", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewFolio(t *testing.T) {
	folio := NewFolio()
	if !strings.HasPrefix(folio, "COT-") || len(folio) != 12 {
		t.Errorf("folio = %q, want COT- plus 8 chars", folio)
	}
	if folio != strings.ToUpper(folio) {
		t.Errorf("folio = %q, want uppercase", folio)
	}
	if NewFolio() == folio {
		t.Error("consecutive folios should differ")
	}
}
