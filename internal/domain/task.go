package domain

import "time"

// TaskStatus enumerates the three task states. Assignment among them is
// free; there is no forward-only ordering.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether the value is one of the enumerated states.
func ValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of field work assigned to one staff member.
// CompletedAt is set iff Status is completed.
type Task struct {
	ID          string
	AssignedTo  string
	Title       string
	Status      TaskStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
