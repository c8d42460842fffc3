package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// TaskCreateRequest payload for assigning a task.
type TaskCreateRequest struct {
	AssignedTo string            `json:"assignedTo"`
	Title      string            `json:"title"`
	Status     domain.TaskStatus `json:"status,omitempty"`
}

// TaskStatusRequest payload for status transitions.
type TaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// TaskResponse is the task record representation.
type TaskResponse struct {
	ID          string            `json:"id"`
	AssignedTo  string            `json:"assignedTo"`
	Title       string            `json:"title"`
	Status      domain.TaskStatus `json:"status"`
	CompletedAt *time.Time        `json:"completedAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TaskStatusReportResponse is one projection row for the admin dashboard.
type TaskStatusReportResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	UserName  string              `json:"userName"`
	Status    domain.ReportStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}
