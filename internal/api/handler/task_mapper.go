package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	}
}

func toUpdateTaskInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDueDate,
	}
}

// toListTasksInput reads the list endpoint's query parameters. Bad page and
// limit values fall back to service defaults rather than erroring.
func toListTasksInput(c echo.Context) ports.ListTasksInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.ListTasksInput{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sort_by"),
		Page:     page,
		Limit:    limit,
	}
}

// --- Service result → HTTP response ---

func toListTasksResponse(r *ports.ListTasksResult) listTasksResponse {
	return listTasksResponse{
		Success: true,
		Data:    r.Items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
