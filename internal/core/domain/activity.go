package domain

import "time"

// ActivityAction names the mutation recorded by a TaskActivity entry.
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "created"
	ActivityUpdated   ActivityAction = "updated"
	ActivityCompleted ActivityAction = "completed"
	ActivityDeleted   ActivityAction = "deleted"
)

// TaskActivity is an audit-trail entry written asynchronously after a task
// mutation succeeds.
type TaskActivity struct {
	TaskID    string         `json:"task_id"`
	OwnerID   string         `json:"owner_id"`
	Action    ActivityAction `json:"action"`
	Detail    string         `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
