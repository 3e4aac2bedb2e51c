package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ImportField describes one importable product column.
type ImportField struct {
	Key      string
	Label    string
	Required bool
}

// ProductImportFields returns the columns accepted by the product
// import template, in template order.
func ProductImportFields() []ImportField {
	return []ImportField{
		{Key: "name", Label: "Nombre", Required: true},
		{Key: "sku", Label: "SKU", Required: true},
		{Key: "unit", Label: "Unidad", Required: false},
		{Key: "category", Label: "Categoría", Required: false},
		{Key: "description", Label: "Descripción", Required: false},
		{Key: "stock", Label: "Existencias", Required: false},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to ImportField keys.
// Returns one key per column ("" when unrecognized) plus the list of
// unrecognized headers.
func mapHeadersToFields(headers []string, fields []ImportField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateProductFile parses and validates an uploaded product file
// (.csv or .xlsx) without writing anything.
func ValidateProductFile(file multipart.File, fileName string) (*ValidationResult, error) {
	fields := ProductImportFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	isRequired := make(map[string]bool)
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
		if f.Required {
			isRequired[f.Key] = true
		}
	}

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for key := range isRequired {
			if rowData[key] == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   keyToLabel[key],
					Message: fmt.Sprintf("%s is required", keyToLabel[key]),
				})
			}
		}

		if v := rowData["stock"]; v != "" {
			if _, convErr := strconv.ParseFloat(v, 64); convErr != nil {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Existencias",
					Message: "Existencias must be numeric",
				})
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// CommitProductImport upserts the valid rows of a validated file:
// rows matching an existing SKU update that product, the rest create
// new ones. Rows with validation errors are skipped. Returns how many
// products were created and updated.
func CommitProductImport(app *pocketbase.PocketBase, result *ValidationResult) (created, updated int, err error) {
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return 0, 0, fmt.Errorf("products collection not found: %w", err)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}

	for rowIdx, rowData := range result.ParsedRows {
		rowNum := rowIdx + 2
		if errorRowSet[rowNum] {
			continue
		}

		var rec *core.Record
		existing, _ := app.FindRecordsByFilter(
			"products", "sku = {:sku}", "", 1, 0,
			map[string]any{"sku": rowData["sku"]},
		)
		if len(existing) > 0 {
			rec = existing[0]
			updated++
		} else {
			rec = core.NewRecord(productsCol)
			created++
		}

		rec.Set("name", rowData["name"])
		rec.Set("sku", rowData["sku"])
		if v := rowData["unit"]; v != "" {
			rec.Set("unit", v)
		} else if rec.GetString("unit") == "" {
			rec.Set("unit", DefaultUnit)
		}
		if v := rowData["category"]; v != "" {
			rec.Set("category", v)
		}
		if v := rowData["description"]; v != "" {
			rec.Set("description", v)
		}
		if v := rowData["stock"]; v != "" {
			stock, _ := strconv.ParseFloat(v, 64)
			rec.Set("stock", stock)
		}

		if err := app.Save(rec); err != nil {
			return created, updated, fmt.Errorf("save product row %d: %w", rowNum, err)
		}
	}

	return created, updated, nil
}
