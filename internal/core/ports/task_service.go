package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// Identity is the authenticated principal attached by the auth middleware.
type Identity struct {
	UserID string
	Role   string
}

// CreateTaskInput carries all data needed to create a task. Zero values for
// Status, Priority and Category fall back to the documented defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	DueDate     *time.Time
}

// UpdateTaskInput carries optional changes; nil fields are left unchanged.
// Ownership is immutable and has no input field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *string
	DueDate     *time.Time
	ClearDue    bool // true removes the due date
}

// ListTasksInput carries the list endpoint parameters for one identity.
type ListTasksInput struct {
	Status   string
	Priority string
	Category string
	Search   string
	SortBy   string
	Page     int
	Limit    int
}

// ListTasksResult is returned by List.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines the owner-gated use-case operations for tasks.
// Every operation except Create loads the task first and fails with
// domain.ErrForbidden when the identity does not own it (unless the admin
// bypass policy is enabled and the identity is an admin).
type TaskService interface {
	Create(ctx context.Context, who Identity, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, who Identity, id string) (*domain.Task, error)
	List(ctx context.Context, who Identity, input ListTasksInput) (*ListTasksResult, error)
	Update(ctx context.Context, who Identity, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, who Identity, id string) error
	Stats(ctx context.Context, who Identity) (*StatusCounts, error)
	Activity(ctx context.Context, who Identity, id string) ([]*domain.TaskActivity, error)
}
