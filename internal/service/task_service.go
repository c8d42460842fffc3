package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// TaskService coordinates the task workflow. Status is a free assignment
// among the three enumerated states; CompletedAt tracks the completed state
// and nothing else.
type TaskService struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// TaskCreateInput describes an assignment payload.
type TaskCreateInput struct {
	AssignedTo string
	Title      string
	Status     domain.TaskStatus
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, dispatcher: dispatcher}
}

// Create assigns a new task to a staff member.
func (s *TaskService) Create(ctx context.Context, actor *auth.Principal, input TaskCreateInput) (*domain.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status value", map[string]any{"status": input.Status})
	}

	task := &domain.Task{
		AssignedTo: input.AssignedTo,
		Title:      input.Title,
		Status:     input.Status,
	}
	if task.Status == domain.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, actor, events.Event{
		Type: events.EventTaskAssigned,
		Payload: events.TaskAssignedPayload{
			TaskID:     task.ID,
			AssignedTo: task.AssignedTo,
			Title:      task.Title,
		},
	})
	return task, nil
}

// ListForAssignee returns the caller's own tasks. No tasks is an empty
// slice, not an error.
func (s *TaskService) ListForAssignee(ctx context.Context, actor *auth.Principal) ([]domain.Task, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	list, err := s.tasks.ListByAssignee(ctx, actor.UID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.Task{}
	}
	return list, nil
}

// SetStatus assigns one of the three enumerated states to a task. A
// transition to completed stamps CompletedAt; a transition away clears it.
// Invalid values are rejected before the store is touched.
func (s *TaskService) SetStatus(ctx context.Context, actor *auth.Principal, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !domain.ValidTaskStatus(status) {
		return nil, apperrors.NewValidationError("invalid status value", map[string]any{"status": status})
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": taskID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := task.Status
	task.Status = status
	if status == domain.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, actor, events.Event{
		Type: events.EventTaskStatusChanged,
		Payload: events.TaskStatusChangedPayload{
			TaskID:     task.ID,
			AssignedTo: task.AssignedTo,
			OldStatus:  oldStatus,
			NewStatus:  task.Status,
		},
	})
	return task, nil
}

// Delete removes a task. Only the assignee or an admin may delete it.
func (s *TaskService) Delete(ctx context.Context, actor *auth.Principal, taskID string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": taskID})
		}
		return apperrors.MapError(err)
	}
	if !actor.Admin && task.AssignedTo != actor.UID {
		return apperrors.NewForbidden("task belongs to another staff member")
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventTaskDeleted,
		Payload: events.TaskDeletedPayload{TaskID: taskID, AssignedTo: task.AssignedTo},
	})
	return nil
}

func (s *TaskService) publishEvent(ctx context.Context, actor *auth.Principal, event events.Event) {
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
