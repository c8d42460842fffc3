package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/identity"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// StaffService manages the staff directory and its pairing with identity
// accounts. Creation is a two-step saga: provision the identity account,
// then write the directory record; a step-2 failure must delete the
// account again so no dangling login survives.
type StaffService struct {
	gateway    identity.Gateway
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StaffCreateInput describes the staff creation payload.
type StaffCreateInput struct {
	Name       string
	Email      string
	EmployeeID string
	Password   string
	Role       domain.StaffRole
	Phone      string
	Department string
}

// StaffUpdateInput describes mutable directory fields. The record id and its
// identity pairing never change.
type StaffUpdateInput struct {
	Name       string
	Email      string
	EmployeeID string
	Role       domain.StaffRole
	Phone      string
	Department string
}

// NewStaffService constructs the service.
func NewStaffService(gateway identity.Gateway, staff repository.StaffRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	return &StaffService{gateway: gateway, staff: staff, dispatcher: dispatcher, logger: logger}
}

// List returns all directory records. An empty directory yields an empty
// slice, not an error.
func (s *StaffService) List(ctx context.Context, actor *auth.Principal) ([]domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	list, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.StaffMember{}
	}
	return list, nil
}

// Create provisions an identity account and writes the paired directory
// record. On directory-write failure the account is deleted again; if that
// compensating delete fails too, the error surfaces as COMPENSATION_FAILED
// with the orphaned UID so an operator can reconcile.
func (s *StaffService) Create(ctx context.Context, actor *auth.Principal, input StaffCreateInput) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = domain.StaffRoleUser
	}
	if !domain.ValidStaffRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role value", map[string]any{"role": input.Role})
	}

	account, err := s.gateway.CreateAccount(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.NewUpstreamFailure("identity provisioning failed", err)
	}

	staff := &domain.StaffMember{
		ID:         account.UID,
		Name:       input.Name,
		Email:      input.Email,
		EmployeeID: input.EmployeeID,
		Role:       input.Role,
		Phone:      input.Phone,
		Department: input.Department,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if delErr := s.gateway.DeleteAccount(ctx, account.UID); delErr != nil {
			s.logger.Error("identity rollback failed after directory write failure",
				zap.String("uid", account.UID), zap.Error(delErr))
			return nil, apperrors.NewCompensationFailed(
				"directory write failed and the provisioned identity could not be deleted",
				map[string]any{"uid": account.UID, "email": input.Email},
				delErr,
			)
		}
		return nil, apperrors.NewUpstreamFailure("directory write failed", err)
	}

	s.publishEvent(ctx, actor, events.Event{
		Type: events.EventStaffCreated,
		Payload: events.StaffCreatedPayload{
			StaffID: staff.ID,
			Email:   staff.Email,
			Role:    staff.Role,
		},
	})
	return staff, nil
}

// Update modifies mutable directory fields on an existing record.
func (s *StaffService) Update(ctx context.Context, actor *auth.Principal, id string, input StaffUpdateInput) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != "" {
		staff.Name = input.Name
	}
	if input.Email != "" {
		staff.Email = input.Email
	}
	if input.EmployeeID != "" {
		staff.EmployeeID = input.EmployeeID
	}
	if input.Role != "" {
		if !domain.ValidStaffRole(input.Role) {
			return nil, apperrors.NewValidationError("invalid role value", map[string]any{"role": input.Role})
		}
		staff.Role = input.Role
	}
	if input.Phone != "" {
		staff.Phone = input.Phone
	}
	if input.Department != "" {
		staff.Department = input.Department
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Delete removes the directory record and revokes the paired identity
// account. A failed account revocation after the record is gone surfaces as
// COMPENSATION_FAILED rather than being swallowed.
func (s *StaffService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.gateway.DeleteAccount(ctx, id); err != nil {
		s.logger.Error("identity revocation failed after directory delete",
			zap.String("uid", id), zap.Error(err))
		return apperrors.NewCompensationFailed(
			"directory record deleted but the identity account could not be revoked",
			map[string]any{"uid": id},
			err,
		)
	}

	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventStaffDeleted,
		Payload: events.StaffDeletedPayload{StaffID: id},
	})
	return nil
}

func (s *StaffService) publishEvent(ctx context.Context, actor *auth.Principal, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if actor != nil {
		event.Actor = events.Actor{UID: actor.UID, Email: actor.Email}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
