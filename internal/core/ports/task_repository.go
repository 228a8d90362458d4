package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
// OwnerID is always set by the service layer; tasks are never listed across
// owners.
type ListTasksFilter struct {
	OwnerID  string
	Status   string // optional: filter by task status
	Priority string // optional: filter by priority
	Category string // optional: filter by category
	Search   string // optional: partial match on title
	SortBy   string // "created_at" (default, desc) or "due_date" (asc)
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// StatusCounts aggregates an owner's tasks for the stats endpoint.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// CountByStatus aggregates the owner's task counts per status plus the
	// overdue count.
	CountByStatus(ctx context.Context, ownerID string) (*StatusCounts, error)
}
