package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleExportData() QuoteExportData {
	return QuoteExportData{
		Folio:       "COT-AB12CD34",
		Title:       "Cotización Sistema de Riego",
		ClientName:  "Rancho El Mirador",
		CreatedDate: "15/08/2026",
		Rows: []QuoteExportRow{
			{Descripcion: "Cinta de riego calibre 6000", Unidad: "Rollo", Cantidad: "10", PrecioUnitario: "$450.00", Importe: "$4,500.00"},
			{Descripcion: "Válvula de esfera 2\"", Unidad: "PIEZA", Cantidad: "4", PrecioUnitario: "$85.00", Importe: "$340.00"},
		},
		Notes:       []string{"✅ Precios incluyen IVA", "📞 Contacto: 555-123-4567"},
		Subtotal:    4172.41,
		IVA:         667.59,
		Total:       4840.00,
		IncludesIVA: true,
	}
}

func TestGenerateQuoteExcel(t *testing.T) {
	data := sampleExportData()

	out, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "COT-AB12CD34" {
		t.Errorf("sheet name = %q, want folio", sheet)
	}

	checks := map[string]string{
		"A1": "Cotización Sistema de Riego",
		"A2": "Folio: COT-AB12CD34",
		"A3": "Cliente: Rancho El Mirador",
		"A4": "Fecha: 15/08/2026",
		"A6": "Descripción",
		"E6": "Importe",
		"A7": "Cinta de riego calibre 6000",
		"B7": "Rollo",
		"E8": "$340.00",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	// Summary block starts one blank row after the data.
	if got, _ := f.GetCellValue(sheet, "D10"); got != "Subtotal:" {
		t.Errorf("D10 = %q, want Subtotal:", got)
	}
	if got, _ := f.GetCellValue(sheet, "E12"); got != "$4,840.00" {
		t.Errorf("E12 = %q, want total", got)
	}
	if got, _ := f.GetCellValue(sheet, "A13"); !strings.Contains(got, "PESOS") {
		t.Errorf("A13 = %q, want amount in words", got)
	}
}

func TestGenerateQuoteExcel_Defaults(t *testing.T) {
	out, err := GenerateQuoteExcel(QuoteExportData{})
	if err != nil {
		t.Fatalf("GenerateQuoteExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if sheet := f.GetSheetName(0); sheet != "Cotizacion" {
		t.Errorf("sheet name = %q, want fallback", sheet)
	}
	if got, _ := f.GetCellValue("Cotizacion", "A1"); got != "Cotización" {
		t.Errorf("A1 = %q, want default title", got)
	}
}

func TestGenerateQuoteExcel_LongFolioTruncated(t *testing.T) {
	data := QuoteExportData{Folio: strings.Repeat("X", 40)}

	out, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if sheet := f.GetSheetName(0); len(sheet) != 31 {
		t.Errorf("sheet name %q has %d chars, want 31", sheet, len(sheet))
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1+1", "'+1+1"},
		{"-cmd", "'-cmd"},
		{"@import", "'@import"},
		{"|pipe", "'|pipe"},
		{"normal text", "normal text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
