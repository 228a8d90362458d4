package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// ActivityEventInput is the DTO handed from the task service to the recorder
// through the dispatcher.
type ActivityEventInput struct {
	TaskID    string
	OwnerID   string
	Action    domain.ActivityAction
	Detail    string
	Timestamp time.Time
}

// ActivityRecorder processes queued activity events.
type ActivityRecorder interface {
	Process(ctx context.Context, event ActivityEventInput) error
}

// ActivityObserver receives pipeline outcomes for instrumentation. The core
// defines the port; the metrics adapter lives with the rest of the
// instrumentation code.
type ActivityObserver interface {
	// DedupCheck reports one idempotency lookup and whether it hit.
	DedupCheck(hit bool)
	// Recorded reports one persisted audit entry.
	Recorded(action domain.ActivityAction)
}
