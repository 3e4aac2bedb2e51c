package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotizador/services"
	"cotizador/testhelpers"
)

func TestHandleQuoteView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "COT-VIEW0001", 2)

	markdown := "# Cotización\n" +
		"## Características del producto\n" +
		"- Resistente a rayos UV\n" +
		"- Garantía de 5 años\n"
	quote.Set("markdown", markdown)
	if err := app.Save(quote); err != nil {
		t.Fatalf("save markdown: %v", err)
	}

	handler := HandleQuoteView(app, services.NewQuoteParser())
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+quote.Id, nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Folio           string                   `json:"folio"`
		Items           []services.QuotationItem `json:"items"`
		Characteristics []string                 `json:"characteristics"`
		Subtotal        float64                  `json:"subtotal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Folio != "COT-VIEW0001" {
		t.Errorf("folio = %q", resp.Folio)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	if resp.Items[0].Descripcion != "Producto A" {
		t.Errorf("items[0] = %+v", resp.Items[0])
	}
	if resp.Subtotal != 200 {
		t.Errorf("subtotal = %v, want 200", resp.Subtotal)
	}
	if len(resp.Characteristics) != 2 || resp.Characteristics[0] != "Resistente a rayos UV" {
		t.Errorf("characteristics = %v", resp.Characteristics)
	}
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteView(app, services.NewQuoteParser())

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err == nil {
		t.Error("expected not found error")
	}
}
