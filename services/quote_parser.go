package services

import (
	"strings"
	"unicode/utf8"
)

// QuotationItem is one row of a quotation table. All fields are strings
// because the source markdown gives no numeric guarantees: a price can
// legitimately be "Consultar".
type QuotationItem struct {
	Descripcion    string `json:"descripcion"`
	Unidad         string `json:"unidad"`
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
	Importe        string `json:"importe"`
}

// QuotationSection is a "## " heading plus the content lines under it,
// in document order.
type QuotationSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// ParsedQuotation is the structured form of one AI-generated markdown
// quotation. A document may contain several disjoint pipe-tables, so
// Tables holds one block per table found.
type ParsedQuotation struct {
	Title    string             `json:"title"`
	Sections []QuotationSection `json:"sections"`
	Tables   [][]QuotationItem  `json:"tables"`
	Notes    []string           `json:"notes"`
	HasTable bool               `json:"has_table"`
}

// Fallback values used when a table cell is missing or empty.
const (
	DefaultUnit    = "PIEZA"
	RollUnit       = "Rollo"
	PriceOnRequest = "Consultar"
)

// parseState tracks where the line scanner currently is.
type parseState int

const (
	stateSeeking parseState = iota
	stateInSection
	stateInTable
)

// QuoteParser turns AI-generated markdown into a ParsedQuotation. The
// keyword and marker sets live on the parser value so independent
// instances cannot interfere with each other.
type QuoteParser struct {
	headerKeywords     []string
	noteMarkers        []string
	bulletMarkers      []string
	characteristicsKey []string
}

// NewQuoteParser returns a parser configured for the quotation markdown
// the backend produces (Spanish column names, emoji callouts).
func NewQuoteParser() *QuoteParser {
	return &QuoteParser{
		headerKeywords:     []string{"descripción", "producto", "concepto"},
		noteMarkers:        []string{"✅", "📋", "🔧", "📞", "*", "-"},
		bulletMarkers:      []string{"-", "•", "*"},
		characteristicsKey: []string{"características", "especificaciones"},
	}
}

// Parse converts markdown into a ParsedQuotation. It never fails:
// malformed input degrades to an empty or partial result, never an
// error. Blank lines are ignored entirely and in particular do NOT end
// a table; only a substantive non-pipe line or a new "## " heading does.
func (p *QuoteParser) Parse(markdown string) ParsedQuotation {
	doc := ParsedQuotation{
		Sections: []QuotationSection{},
		Tables:   [][]QuotationItem{},
		Notes:    []string{},
	}

	state := stateSeeking
	var current *QuotationSection
	var rows []QuotationItem
	skipNext := false

	for _, raw := range strings.Split(markdown, "\n") {
		// The line right after a detected table header is assumed to be
		// the |---|---| separator and dropped without inspection. If a
		// data row follows the header directly, it is lost. Known lossy
		// quirk, kept on purpose.
		if skipNext {
			skipNext = false
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if doc.Title == "" && strings.HasPrefix(line, "# ") {
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			continue
		}

		if strings.HasPrefix(line, "## ") {
			if current != nil {
				doc.Sections = append(doc.Sections, *current)
			}
			current = &QuotationSection{
				Title:   strings.TrimSpace(strings.TrimPrefix(line, "## ")),
				Content: []string{},
			}
			// A heading force-closes table mode. Accumulated rows are
			// NOT flushed here: they stay pending until the next table
			// header or end of input.
			state = stateInSection
			continue
		}

		if strings.HasPrefix(line, "### ") {
			if current != nil {
				text := strings.TrimSpace(strings.TrimPrefix(line, "### "))
				current.Content = append(current.Content, "**"+text+"**")
			}
			continue
		}

		if strings.Contains(line, "|") {
			if state == stateInTable {
				if strings.Contains(line, "---") || strings.Contains(line, ":---:") {
					continue
				}
				if item, ok := p.parseTableRow(line); ok {
					rows = append(rows, item)
				}
				continue
			}
			if p.isTableHeader(line) {
				if len(rows) > 0 {
					doc.Tables = append(doc.Tables, rows)
					rows = nil
				}
				state = stateInTable
				skipNext = true
				continue
			}
			// A pipe line without header keywords, outside a table, is
			// ordinary content and falls through.
		} else if state == stateInTable {
			// Substantive non-pipe line ends the table block. The line
			// itself is still classified as content below.
			if len(rows) > 0 {
				doc.Tables = append(doc.Tables, rows)
			}
			rows = nil
			if current != nil {
				state = stateInSection
			} else {
				state = stateSeeking
			}
		}

		if current == nil {
			continue
		}
		if p.isNote(line) {
			doc.Notes = append(doc.Notes, line)
			continue
		}
		// Short plain lines are noise; keep bold lines regardless.
		if strings.Contains(line, "**") || utf8.RuneCountInString(line) > 10 {
			current.Content = append(current.Content, line)
		}
	}

	if current != nil {
		doc.Sections = append(doc.Sections, *current)
	}
	if len(rows) > 0 {
		doc.Tables = append(doc.Tables, rows)
	}

	doc.HasTable = len(doc.Tables) > 0 && len(doc.Tables[0]) > 0
	return doc
}

// isTableHeader reports whether a pipe line looks like the header row
// of a quotation table.
func (p *QuoteParser) isTableHeader(line string) bool {
	low := strings.ToLower(line)
	for _, kw := range p.headerKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// isNote reports whether a content line is a callout/bullet note.
func (p *QuoteParser) isNote(line string) bool {
	for _, m := range p.noteMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

// parseTableRow maps one pipe row onto a QuotationItem. The mapping
// depends on how many non-empty cells the row has, since the backend
// emits tables with anywhere from 3 to 7+ columns. Rows with fewer
// than 3 cells are dropped, as are rows that echo the header.
func (p *QuoteParser) parseTableRow(line string) (QuotationItem, bool) {
	var cells []string
	for _, c := range strings.Split(line, "|") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 3 {
		return QuotationItem{}, false
	}

	var item QuotationItem
	switch {
	case len(cells) >= 7:
		item = QuotationItem{
			Descripcion:    strings.TrimSpace(cells[0] + " " + cells[1]),
			Unidad:         cellOr(cells, 4, DefaultUnit),
			Cantidad:       cellOr(cells, 3, "1"),
			PrecioUnitario: cellOr(cells, 5, PriceOnRequest),
			Importe:        cellOr(cells, 6, PriceOnRequest),
		}
	case len(cells) == 6:
		item = QuotationItem{
			Descripcion:    strings.TrimSpace(cells[0] + " " + cells[1]),
			Unidad:         RollUnit,
			Cantidad:       cellOr(cells, 3, "1"),
			PrecioUnitario: cellOr(cells, 4, PriceOnRequest),
			Importe:        cellOr(cells, 5, PriceOnRequest),
		}
	case len(cells) == 5:
		item = QuotationItem{
			Descripcion:    cells[0],
			Unidad:         cellOr(cells, 1, DefaultUnit),
			Cantidad:       cellOr(cells, 2, "1"),
			PrecioUnitario: cellOr(cells, 3, PriceOnRequest),
			Importe:        cellOr(cells, 4, PriceOnRequest),
		}
	case len(cells) == 4:
		item = QuotationItem{
			Descripcion:    cells[0],
			Unidad:         DefaultUnit,
			Cantidad:       cellOr(cells, 1, "1"),
			PrecioUnitario: cellOr(cells, 2, PriceOnRequest),
			Importe:        cellOr(cells, 3, PriceOnRequest),
		}
	default: // exactly 3
		item = QuotationItem{
			Descripcion:    cells[0],
			Unidad:         DefaultUnit,
			Cantidad:       "1",
			PrecioUnitario: cellOr(cells, 1, PriceOnRequest),
			Importe:        cellOr(cells, 2, PriceOnRequest),
		}
	}

	item.Descripcion = strings.TrimSpace(strings.ReplaceAll(item.Descripcion, "**", ""))

	// Header rows occasionally slip past the header heuristic; drop
	// anything that still reads like one.
	low := strings.ToLower(item.Descripcion)
	if strings.Contains(low, "descripción") || strings.Contains(low, "concepto") {
		return QuotationItem{}, false
	}
	return item, true
}

func cellOr(cells []string, i int, fallback string) string {
	if i >= len(cells) || cells[i] == "" {
		return fallback
	}
	return cells[i]
}

// ExtractCharacteristics pulls the bullet list that follows a
// "Características" or "Especificaciones" heading. Collection starts on
// the line after the heading and stops for good at the next "##"
// heading or at any pipe-table line.
func (p *QuoteParser) ExtractCharacteristics(markdown string) []string {
	var out []string
	collecting := false

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)

		if !collecting {
			low := strings.ToLower(line)
			for _, kw := range p.characteristicsKey {
				if strings.Contains(low, kw) {
					collecting = true
					break
				}
			}
			continue
		}

		if strings.HasPrefix(line, "##") || strings.Contains(line, "|") {
			return out
		}

		for _, m := range p.bulletMarkers {
			if strings.HasPrefix(line, m) {
				text := strings.TrimPrefix(line, m)
				text = strings.TrimSpace(strings.ReplaceAll(text, "**", ""))
				if text != "" {
					out = append(out, text)
				}
				break
			}
		}
	}
	return out
}
