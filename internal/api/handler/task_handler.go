package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/api/metrics"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// TaskHandler handles the owner-gated task CRUD endpoints.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), who, toCreateTaskInput(req))
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, taskResponse{Success: true, Task: task})
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "Filter by status"    Enums(todo, in-progress, completed)
// @Param        priority  query  string  false  "Filter by priority"  Enums(low, medium, high)
// @Param        category  query  string  false  "Filter by category"  Enums(personal, work, urgent, other)
// @Param        search    query  string  false  "Partial title match"
// @Param        sort_by   query  string  false  "Sort order"          Enums(created_at, due_date)
// @Param        page      query  int     false  "Page (1-based)"
// @Param        limit     query  int     false  "Page size (max 100)"
// @Success      200  {object}  listTasksResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), who, toListTasksInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListTasksResponse(result))
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  taskResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Success: true, Task: task})
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Task ID"
// @Param        body  body  updateTaskRequest  true  "Fields to change"
// @Success      200  {object}  taskResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), who, c.Param("id"), toUpdateTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Success: true, Task: task})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), who, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "task deleted"})
}

// Stats handles GET /api/tasks/stats.
//
// @Summary      Task counts per status
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// Activity handles GET /api/tasks/:id/activity.
//
// @Summary      Task audit trail
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  activityResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entries, err := h.service.Activity(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{Success: true, Data: entries})
}
