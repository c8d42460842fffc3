package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/service"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// ReportsHandler exposes the task status projection.
type ReportsHandler struct {
	reportService *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reportService: reportService}
}

// ListTaskStatus handles GET /reports/task-status.
func (h *ReportsHandler) ListTaskStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.reportService.List(c.Context(), principal)
	if err != nil {
		return err
	}
	resp := make([]dto.TaskStatusReportResponse, 0, len(list))
	for _, report := range list {
		resp = append(resp, dto.TaskStatusReportResponse{
			ID:        report.ID,
			UserID:    report.UserID,
			UserName:  report.UserName,
			Status:    report.Status,
			Timestamp: report.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
