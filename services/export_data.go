package services

// QuoteExportRow is one printable line of a quotation. Values stay as
// strings because the parser never guarantees numeric cells
// ("Consultar" is a valid price).
type QuoteExportRow struct {
	Descripcion    string
	Unidad         string
	Cantidad       string
	PrecioUnitario string
	Importe        string
}

// QuoteExportData holds everything the XLSX/PDF/CSV exporters need for
// one quotation.
type QuoteExportData struct {
	Folio       string
	Title       string
	ClientName  string
	CreatedDate string
	Rows        []QuoteExportRow
	Notes       []string
	Subtotal    float64
	IVA         float64
	Total       float64
	IncludesIVA bool
}

// AmountInWords spells the grand total for the printed footer.
func (d QuoteExportData) AmountInWords() string {
	return "(" + AmountToWords(d.Total) + ")"
}
