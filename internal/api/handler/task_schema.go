package handler

import (
	"time"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	Status      string     `json:"status"      validate:"omitempty,oneof=todo in-progress completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Category    string     `json:"category"    validate:"omitempty,oneof=personal work urgent other"`
	DueDate     *time.Time `json:"due_date"`
}

// updateTaskRequest carries partial changes; absent fields stay as they are.
// ClearDueDate removes the due date (a null due_date alone is
// indistinguishable from an absent one after JSON decoding).
type updateTaskRequest struct {
	Title        *string    `json:"title"       validate:"omitempty,min=1,max=100"`
	Description  *string    `json:"description" validate:"omitempty,max=500"`
	Status       *string    `json:"status"      validate:"omitempty,oneof=todo in-progress completed"`
	Priority     *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Category     *string    `json:"category"    validate:"omitempty,oneof=personal work urgent other"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

type taskResponse struct {
	Success bool         `json:"success"`
	Task    *domain.Task `json:"task"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTasksResponse struct {
	Success    bool               `json:"success"`
	Data       []*domain.Task     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type statsResponse struct {
	Success bool                `json:"success"`
	Stats   *ports.StatusCounts `json:"stats"`
}

type activityResponse struct {
	Success bool                   `json:"success"`
	Data    []*domain.TaskActivity `json:"data"`
}
