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

type socialPostPayload struct {
	Title        string `json:"title"`
	Platform     string `json:"platform"`
	ScheduledFor string `json:"scheduled_for"`
	Status       string `json:"status"`
	Content      string `json:"content"`
}

func socialPostJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"title":         rec.GetString("title"),
		"platform":      rec.GetString("platform"),
		"scheduled_for": rec.GetString("scheduled_for"),
		"status":        rec.GetString("status"),
		"content":       rec.GetString("content"),
	}
}

// HandleSocialPostList returns the content calendar ordered by
// scheduled date.
// GET /api/social-posts
func HandleSocialPostList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindAllRecords("social_posts")
		if err != nil {
			log.Printf("social_posts: could not query posts: %v", err)
			records = nil
		}
		sort.Slice(records, func(i, j int) bool {
			return records[i].GetString("scheduled_for") < records[j].GetString("scheduled_for")
		})

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, socialPostJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"posts": items, "total": len(items)})
	}
}

// HandleSocialPostCreate adds an entry to the calendar.
// POST /api/social-posts
func HandleSocialPostCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload socialPostPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if strings.TrimSpace(payload.Title) == "" {
			return apis.NewBadRequestError("title is required", nil)
		}

		col, err := app.FindCollectionByNameOrId("social_posts")
		if err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "social_posts collection missing", err)
		}

		rec := core.NewRecord(col)
		if payload.Status == "" {
			payload.Status = "idea"
		}
		applySocialPostPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save post", err)
		}
		return e.JSON(http.StatusOK, socialPostJSON(rec))
	}
}

// HandleSocialPostUpdate updates a calendar entry.
// PATCH /api/social-posts/{id}
func HandleSocialPostUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("social_posts", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Post not found", err)
		}

		var payload socialPostPayload
		if err := e.BindBody(&payload); err != nil {
			return apis.NewBadRequestError("Invalid request body", err)
		}
		if payload.Title == "" {
			payload.Title = rec.GetString("title")
		}
		if payload.Status == "" {
			payload.Status = rec.GetString("status")
		}
		applySocialPostPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			return apis.NewBadRequestError("Could not save post", err)
		}
		return e.JSON(http.StatusOK, socialPostJSON(rec))
	}
}

// HandleSocialPostDelete removes a calendar entry.
// DELETE /api/social-posts/{id}
func HandleSocialPostDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("social_posts", e.Request.PathValue("id"))
		if err != nil {
			return apis.NewNotFoundError("Post not found", err)
		}
		if err := app.Delete(rec); err != nil {
			return apis.NewApiError(http.StatusInternalServerError, "Could not delete post", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": rec.Id})
	}
}

func applySocialPostPayload(rec *core.Record, payload socialPostPayload) {
	rec.Set("title", strings.TrimSpace(payload.Title))
	if payload.Platform != "" {
		rec.Set("platform", payload.Platform)
	}
	if payload.ScheduledFor != "" {
		rec.Set("scheduled_for", payload.ScheduledFor)
	}
	rec.Set("status", payload.Status)
	rec.Set("content", payload.Content)
}
