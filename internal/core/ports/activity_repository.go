package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// ActivityRepository persists the task audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.TaskActivity) error
	// ListByTask returns the task's trail, newest first.
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskActivity, error)
}
