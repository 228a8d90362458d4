package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

type stubTaskService struct {
	createFn   func(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error)
	getFn      func(ctx context.Context, who ports.Identity, id string) (*domain.Task, error)
	listFn     func(ctx context.Context, who ports.Identity, input ports.ListTasksInput) (*ports.ListTasksResult, error)
	updateFn   func(ctx context.Context, who ports.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn   func(ctx context.Context, who ports.Identity, id string) error
	statsFn    func(ctx context.Context, who ports.Identity) (*ports.StatusCounts, error)
	activityFn func(ctx context.Context, who ports.Identity, id string) ([]*domain.TaskActivity, error)
}

func (s *stubTaskService) Create(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, who, input)
}

func (s *stubTaskService) Get(ctx context.Context, who ports.Identity, id string) (*domain.Task, error) {
	return s.getFn(ctx, who, id)
}

func (s *stubTaskService) List(ctx context.Context, who ports.Identity, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	return s.listFn(ctx, who, input)
}

func (s *stubTaskService) Update(ctx context.Context, who ports.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, who, id, input)
}

func (s *stubTaskService) Delete(ctx context.Context, who ports.Identity, id string) error {
	return s.deleteFn(ctx, who, id)
}

func (s *stubTaskService) Stats(ctx context.Context, who ports.Identity) (*ports.StatusCounts, error) {
	return s.statsFn(ctx, who)
}

func (s *stubTaskService) Activity(ctx context.Context, who ports.Identity, id string) ([]*domain.TaskActivity, error) {
	return s.activityFn(ctx, who, id)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleUser)
	return c
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
			if who.UserID != "user-1" {
				t.Fatalf("unexpected identity: %+v", who)
			}
			if input.Title != "write report" || input.Priority != "high" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{
				ID:       "task-1",
				Title:    input.Title,
				Status:   domain.StatusTodo,
				Priority: domain.PriorityHigh,
				Category: domain.CategoryWork,
				OwnerID:  who.UserID,
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	body := strings.NewReader(`{"title":"write report","priority":"high","category":"work"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	task, ok := resp["task"].(map[string]any)
	if !ok || task["id"] != "task-1" || task["owner_id"] != "user-1" {
		t.Fatalf("unexpected task payload: %+v", resp["task"])
	}
}

func TestTaskHandler_Create_TitleTooLong(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"title":"` + strings.Repeat("x", 101) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"title":"ok","status":"done"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	body := strings.NewReader(`{"title":"ok"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTaskHandler_List_ForwardsQueryParams(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, who ports.Identity, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
			if input.Status != "todo" || input.Priority != "high" || input.Search != "report" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Page != 2 || input.Limit != 5 {
				t.Fatalf("unexpected pagination: %+v", input)
			}
			return &ports.ListTasksResult{
				Items:      []*domain.Task{{ID: "task-1"}},
				Total:      6,
				Page:       2,
				Limit:      5,
				TotalPages: 2,
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/tasks?status=todo&priority=high&search=report&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(6) || pagination["total_pages"] != float64(2) {
		t.Fatalf("unexpected pagination payload: %+v", resp["pagination"])
	}
}

func TestTaskHandler_Get_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, who ports.Identity, id string) (*domain.Task, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/tasks/task-9", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task-9")

	if err := handler.Get(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestTaskHandler_Update_PassesPartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, who ports.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
			if id != "task-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if input.Status == nil || *input.Status != "completed" {
				t.Fatalf("expected status completed, got %+v", input.Status)
			}
			if input.Title != nil {
				t.Fatalf("title should be absent, got %v", *input.Title)
			}
			if !input.ClearDue {
				t.Fatalf("expected clear_due_date to be forwarded")
			}
			return &domain.Task{ID: id, Status: domain.StatusCompleted, Completed: true}, nil
		},
	}
	handler := NewTaskHandler(stub)

	body := strings.NewReader(`{"status":"completed","clear_due_date":true}`)
	req := httptest.NewRequest(http.MethodPut, "/tasks/task-1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_EmptyTitle(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		updateFn: func(ctx context.Context, who ports.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	// An explicit empty title must be rejected, not persisted.
	body := strings.NewReader(`{"title":""}`)
	req := httptest.NewRequest(http.MethodPut, "/tasks/task-1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task-1")

	if err := handler.Update(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, who ports.Identity, id string) error {
			called = true
			if id != "task-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/task-1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task-1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Stats_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		statsFn: func(ctx context.Context, who ports.Identity) (*ports.StatusCounts, error) {
			return &ports.StatusCounts{Total: 3, Todo: 1, InProgress: 1, Completed: 1, Overdue: 1}, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/tasks/stats", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	stats, ok := resp["stats"].(map[string]any)
	if !ok || stats["total"] != float64(3) || stats["overdue"] != float64(1) {
		t.Fatalf("unexpected stats payload: %+v", resp["stats"])
	}
}
