package events

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated      EventType = "staff_created"
	EventStaffDeleted      EventType = "staff_deleted"
	EventSiteCreated       EventType = "site_created"
	EventSiteUpdated       EventType = "site_updated"
	EventSiteDeleted       EventType = "site_deleted"
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskDeleted       EventType = "task_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	StaffID string           `json:"staff_id"`
	Email   string           `json:"email"`
	Role    domain.StaffRole `json:"role"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct {
	StaffID string `json:"staff_id"`
}

// SitePayload payload for site lifecycle events.
type SitePayload struct {
	SiteID   string `json:"site_id"`
	SiteName string `json:"site_name,omitempty"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID     string `json:"task_id"`
	AssignedTo string `json:"assigned_to"`
	Title      string `json:"title"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID     string            `json:"task_id"`
	AssignedTo string            `json:"assigned_to"`
	OldStatus  domain.TaskStatus `json:"old_status"`
	NewStatus  domain.TaskStatus `json:"new_status"`
}

// TaskDeletedPayload payload.
type TaskDeletedPayload struct {
	TaskID     string `json:"task_id"`
	AssignedTo string `json:"assigned_to"`
}
