package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF renders a quotation as a PDF document using
// maroto/v2 and returns the raw bytes.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteTableHeader(m)
	for _, r := range data.Rows {
		addQuoteTableRow(m, r)
	}
	addQuoteSummary(m, data)
	addQuoteNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the title, folio, client and date lines.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	title := data.Title
	if title == "" {
		title = "Cotización"
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Folio: %s", data.Folio), props.Text{
					Size:  9,
					Align: align.Left,
					Color: gray,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Fecha: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: gray,
				}),
			),
		),
	)

	if data.ClientName != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Cliente: %s", data.ClientName), props.Text{
						Size:  9,
						Align: align.Left,
						Color: gray,
					}),
				),
			),
		)
	}

	// Spacer
	m.AddRows(row.New(4))
}

// addQuoteTableHeader adds the column header row for the items table.
func addQuoteTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 27, Green: 94, Blue: 32}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(
				text.New("Descripción", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unidad", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Cant.", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("P. Unitario", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Importe", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addQuoteTableRow adds a single item row.
func addQuoteTableRow(m core.Maroto, r QuoteExportRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New(r.Descripcion, leftText)),
			col.New(2).Add(text.New(r.Unidad, baseText)),
			col.New(1).Add(text.New(r.Cantidad, baseText)),
			col.New(2).Add(text.New(r.PrecioUnitario, rightText)),
			col.New(2).Add(text.New(r.Importe, rightText)),
		),
	)
}

// addQuoteSummary adds subtotal, IVA and total plus the amount in words.
func addQuoteSummary(m core.Maroto, data QuoteExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	lines := []struct {
		label string
		value float64
	}{
		{"Subtotal", data.Subtotal},
		{"IVA (16%)", data.IVA},
		{"Total", data.Total},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(l.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatMXN(l.value), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(data.AmountInWords(), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
	)
}

// addQuoteNotes adds the parsed note callouts at the bottom.
func addQuoteNotes(m core.Maroto, data QuoteExportData) {
	if len(data.Notes) == 0 {
		return
	}

	m.AddRows(row.New(6))
	noteText := props.Text{
		Size:  7,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	for _, note := range data.Notes {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(note, noteText)),
			),
		)
	}
}
