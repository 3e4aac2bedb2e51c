package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type taskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Due         string   `json:"due"`
	SortOrder   *float64 `json:"sort_order"`
}

func taskJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"title":       rec.GetString("title"),
		"description": rec.GetString("description"),
		"status":      rec.GetString("status"),
		"due":         rec.GetString("due"),
		"sort_order":  rec.GetFloat("sort_order"),
		"updated":     rec.GetString("updated"),
	}
}

// HandleTaskList returns the board, optionally filtered by column.
// GET /api/tasks?status=doing
func HandleTaskList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		status := e.Request.URL.Query().Get("status")

		var records []*core.Record
		var err error
		if status != "" {
			records, err = app.FindRecordsByFilter(
				"tasks",
				"status = {:status}",
				"sort_order",
				0, 0,
				map[string]any{"status": status},
			)
		} else {
			records, err = app.FindAllRecords("tasks")
			sort.Slice(records, func(i, j int) bool {
				return records[i].GetFloat("sort_order") < records[j].GetFloat("sort_order")
			})
		}
		if err != nil {
			log.Printf("tasks: could not query tasks: %v", err)
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, taskJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"tasks": items, "total": len(items)})
	}
}

// HandleTaskCreate adds a card to the board.
// POST /api/tasks
func HandleTaskCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload taskPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Title) == "" {
			return apis.NewBadRequestError("title is required", nil)
		}

		col, err := app.FindCollectionByNameOrId("tasks")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "tasks collection missing", err)
		}

		rec := core.NewRecord(col)
		if payload.Status == "" {
			payload.Status = "backlog"
		}
		applyTaskPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save task", err)
		}
		return e.JSON(http.StatusOK, taskJSON(rec))
	}
}

// HandleTaskUpdate updates a card (including column moves).
// PATCH /api/tasks/{id}
func HandleTaskUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("tasks", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Task not found", err)
		}

		var payload taskPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if payload.Title == "" {
			payload.Title = rec.GetString("title")
		}
		if payload.Status == "" {
			payload.Status = rec.GetString("status")
		}
		applyTaskPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save task", err)
		}
		return e.JSON(http.StatusOK, taskJSON(rec))
	}
}

// HandleTaskDelete removes a card.
// DELETE /api/tasks/{id}
func HandleTaskDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("tasks", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Task not found", err)
		}
		if err := app.Delete(rec); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete task", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": rec.Id})
	}
}

func applyTaskPayload(rec *core.Record, payload taskPayload) {
	rec.Set("title", strings.TrimSpace(payload.Title))
	rec.Set("description", payload.Description)
	rec.Set("status", payload.Status)
	if payload.Due != "" {
		rec.Set("due", payload.Due)
	}
	if payload.SortOrder != nil {
		rec.Set("sort_order", *payload.SortOrder)
	}
}
