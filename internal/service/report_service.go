package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// ReportService maintains the per-staff task status projection from task
// events. The projection is a derived view; tasks remain the system of
// record.
type ReportService struct {
	reports    repository.ReportRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReportService creates the service.
func NewReportService(reports repository.ReportRepository, staff repository.StaffRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, staff: staff, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to task events.
func (s *ReportService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTaskStatusChanged, s.handleTaskStatusChanged)
}

// List returns the projection rows for the dashboard. Admins and
// supervisors only.
func (s *ReportService) List(ctx context.Context, actor *auth.Principal) ([]domain.TaskStatusReport, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !actor.Admin && actor.Role() != domain.StaffRoleSupervisor {
		return nil, apperrors.NewForbidden("admin or supervisor role required")
	}
	list, err := s.reports.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.TaskStatusReport{}
	}
	return list, nil
}

func (s *ReportService) handleTaskStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskStatusChangedPayload)
	if !ok {
		return nil
	}

	userName := payload.AssignedTo
	if staff, err := s.staff.GetByID(ctx, payload.AssignedTo); err == nil {
		userName = staff.Name
	} else if err != pgx.ErrNoRows {
		s.logger.Warn("staff lookup failed while projecting task status",
			zap.String("uid", payload.AssignedTo), zap.Error(err))
	}

	status := domain.ReportStatusNotCompleted
	if payload.NewStatus == domain.TaskStatusCompleted {
		status = domain.ReportStatusCompleted
	}

	reportedAt := event.Timestamp
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	report := &domain.TaskStatusReport{
		UserID:    payload.AssignedTo,
		UserName:  userName,
		Status:    status,
		Timestamp: reportedAt,
	}
	if err := s.reports.UpsertForUser(ctx, report); err != nil {
		s.logger.Error("task status projection write failed",
			zap.String("uid", payload.AssignedTo), zap.Error(err))
		return err
	}
	return nil
}
