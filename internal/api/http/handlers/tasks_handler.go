package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/service"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// TasksHandler exposes task workflow endpoints.
type TasksHandler struct {
	taskService *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{taskService: taskService}
}

// List handles GET /tasks; scoped to the caller's assignments.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.taskService.ListForAssignee(c.Context(), principal)
	if err != nil {
		return err
	}
	resp := make([]dto.TaskResponse, 0, len(list))
	for i := range list {
		resp = append(resp, taskResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssignedTo == "" || req.Title == "" {
		return apperrors.NewValidationError("assignedTo and title required", nil)
	}

	task, err := h.taskService.Create(c.Context(), principal, service.TaskCreateInput{
		AssignedTo: req.AssignedTo,
		Title:      req.Title,
		Status:     req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskResponse(task)})
}

// SetStatus handles PATCH /tasks/:id/status.
func (h *TasksHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.taskService.SetStatus(c.Context(), principal, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// Delete handles DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.taskService.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		AssignedTo:  task.AssignedTo,
		Title:       task.Title,
		Status:      task.Status,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
