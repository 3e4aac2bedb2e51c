package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cotizador/services"
)

// openUploadedFile extracts the "file" part from a multipart upload.
func openUploadedFile(e *core.RequestEvent) (multipart.File, string, error) {
	if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
		return nil, "", err
	}
	file, header, err := e.Request.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}

// HandleProductImportValidate parses an uploaded .csv/.xlsx catalog and
// reports per-row validation errors without writing anything.
// POST /api/products/import/validate
func HandleProductImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, filename, err := openUploadedFile(e)
		if err != nil {
			return apis.NewBadRequestError("Missing or unreadable file upload", err)
		}
		defer file.Close()

		result, err := services.ValidateProductFile(file, filename)
		if err != nil {
			return apis.NewBadRequestError(err.Error(), err)
		}
		return e.JSON(http.StatusOK, result)
	}
}

// HandleProductImportCommit re-validates an uploaded file and upserts
// its valid rows into the catalog.
// POST /api/products/import/commit
func HandleProductImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, filename, err := openUploadedFile(e)
		if err != nil {
			return apis.NewBadRequestError("Missing or unreadable file upload", err)
		}
		defer file.Close()

		result, err := services.ValidateProductFile(file, filename)
		if err != nil {
			return apis.NewBadRequestError(err.Error(), err)
		}

		created, updated, err := services.CommitProductImport(app, result)
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Import failed", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"created":    created,
			"updated":    updated,
			"skipped":    result.ErrorRows,
			"total_rows": result.TotalRows,
			"errors":     result.Errors,
		})
	}
}
