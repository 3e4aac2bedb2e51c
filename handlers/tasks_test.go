package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cotizador/testhelpers"
)

func TestHandleTaskCreate_DefaultsStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTaskCreate(app)

	req := newJSONRequest(http.MethodPost, "/api/tasks", `{"title": "Llamar a proveedor"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "backlog" {
		t.Errorf("status = %v, want backlog", resp["status"])
	}
}

func TestHandleTaskCreate_MissingTitle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTaskCreate(app)

	req := newJSONRequest(http.MethodPost, "/api/tasks", `{"description": "sin título"}`)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestHandleTaskUpdate_MoveColumn(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	create := HandleTaskCreate(app)
	rec := httptest.NewRecorder()
	req := newJSONRequest(http.MethodPost, "/api/tasks", `{"title": "Preparar cotización"}`)
	if err := create(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("create task: %v", err)
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	taskID := created["id"].(string)

	// Moving a card only sends the new column.
	update := HandleTaskUpdate(app)
	rec = httptest.NewRecorder()
	req = newJSONRequest(http.MethodPatch, "/api/tasks/"+taskID, `{"status": "doing", "sort_order": 2}`)
	req.SetPathValue("id", taskID)
	if err := update(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("update task: %v", err)
	}

	saved, err := app.FindRecordById("tasks", taskID)
	if err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if saved.GetString("status") != "doing" {
		t.Errorf("status = %q, want doing", saved.GetString("status"))
	}
	// The title is preserved when the payload omits it.
	if saved.GetString("title") != "Preparar cotización" {
		t.Errorf("title = %q", saved.GetString("title"))
	}
	if saved.GetFloat("sort_order") != 2 {
		t.Errorf("sort_order = %v, want 2", saved.GetFloat("sort_order"))
	}
}

func TestHandleTaskList_FilterByStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	create := HandleTaskCreate(app)

	for _, body := range []string{
		`{"title": "Tarea pendiente"}`,
		`{"title": "Tarea en curso", "status": "doing"}`,
	} {
		rec := httptest.NewRecorder()
		if err := create(newTestRequestEvent(app, newJSONRequest(http.MethodPost, "/api/tasks", body), rec)); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	handler := HandleTaskList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=doing", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Tasks []map[string]any `json:"tasks"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || resp.Tasks[0]["title"] != "Tarea en curso" {
		t.Errorf("tasks = %+v, want only the doing card", resp.Tasks)
	}
}

func TestHandleTaskList_OrderedBySortOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	create := HandleTaskCreate(app)

	// Inserted out of board order on purpose.
	for _, body := range []string{
		`{"title": "Tarea tercera", "sort_order": 3}`,
		`{"title": "Tarea primera", "sort_order": 1}`,
		`{"title": "Tarea segunda", "sort_order": 2}`,
	} {
		rec := httptest.NewRecorder()
		if err := create(newTestRequestEvent(app, newJSONRequest(http.MethodPost, "/api/tasks", body), rec)); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	handler := HandleTaskList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Tasks []map[string]any `json:"tasks"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}
	want := []string{"Tarea primera", "Tarea segunda", "Tarea tercera"}
	for i, title := range want {
		if resp.Tasks[i]["title"] != title {
			t.Errorf("tasks[%d] = %v, want %q", i, resp.Tasks[i]["title"], title)
		}
	}
}

func TestHandleTaskDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	create := HandleTaskCreate(app)

	rec := httptest.NewRecorder()
	req := newJSONRequest(http.MethodPost, "/api/tasks", `{"title": "Borrar esta tarea"}`)
	if err := create(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("create task: %v", err)
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	taskID := created["id"].(string)

	handler := HandleTaskDelete(app)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID, nil)
	req.SetPathValue("id", taskID)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := app.FindRecordById("tasks", taskID); err == nil {
		t.Error("expected task to be deleted")
	}
}
