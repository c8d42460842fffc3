package domain

import "time"

// ReportStatus is the two-valued completion state shown on the admin
// dashboard, distinct from TaskStatus.
type ReportStatus string

const (
	ReportStatusCompleted    ReportStatus = "completed"
	ReportStatusNotCompleted ReportStatus = "not-completed"
)

// TaskStatusReport is a derived per-staff projection of task completion.
// It is maintained from task events and is never the system of record.
type TaskStatusReport struct {
	ID        string
	UserID    string
	UserName  string
	Status    ReportStatus
	Timestamp time.Time
}
