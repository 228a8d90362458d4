package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority ranks how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskCategory groups tasks for filtering.
type TaskCategory string

const (
	CategoryPersonal TaskCategory = "personal"
	CategoryWork     TaskCategory = "work"
	CategoryUrgent   TaskCategory = "urgent"
	CategoryOther    TaskCategory = "other"
)

// Task is an owned record. OwnerID is set at creation and never changes.
//
// Invariant: Completed is true and CompletedAt is non-nil exactly when
// Status == StatusCompleted.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	OwnerID     string       `json:"owner_id"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ApplyStatus moves the task to next and keeps the completion fields coupled
// to the status. Entering StatusCompleted stamps CompletedAt once; saving an
// already-completed task leaves the original stamp untouched; leaving
// StatusCompleted clears both fields.
func (t *Task) ApplyStatus(next TaskStatus, now time.Time) {
	t.Status = next
	if next == StatusCompleted {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
		t.Completed = true
		return
	}
	t.Completed = false
	t.CompletedAt = nil
}

// IsOverdue reports whether the task has a due date in the past and is not
// yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return now.After(*t.DueDate)
}
