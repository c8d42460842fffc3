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

// SitesHandler exposes site registry endpoints.
type SitesHandler struct {
	siteService *service.SiteService
}

// NewSitesHandler constructs handler.
func NewSitesHandler(siteService *service.SiteService) *SitesHandler {
	return &SitesHandler{siteService: siteService}
}

// List handles GET /sites.
func (h *SitesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.siteService.List(c.Context(), principal)
	if err != nil {
		return err
	}
	resp := make([]dto.SiteResponse, 0, len(list))
	for i := range list {
		resp = append(resp, siteResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /sites/:id.
func (h *SitesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	site, err := h.siteService.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteResponse(site)})
}

// Create handles POST /sites.
func (h *SitesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SiteID == "" || req.SiteName == "" {
		return apperrors.NewValidationError("siteId and siteName required", nil)
	}

	site, err := h.siteService.Create(c.Context(), principal, siteFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": siteResponse(site)})
}

// Update handles PUT /sites/:id.
func (h *SitesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	site, err := h.siteService.Update(c.Context(), principal, c.Params("id"), siteFromRequest(&req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteResponse(site)})
}

// Delete handles DELETE /sites/:id.
func (h *SitesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.siteService.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func siteFromRequest(req *dto.SiteRequest) *domain.Site {
	return &domain.Site{
		SiteID:              req.SiteID,
		SiteName:            req.SiteName,
		Location:            req.Location,
		TransmissionMode:    req.TransmissionMode,
		PowerSystem:         req.PowerSystem,
		Battery:             req.Battery,
		Services:            req.Services,
		Antennas:            req.Antennas,
		Power:               req.Power,
		TransmissionType:    req.TransmissionType,
		FiberDetails:        req.FiberDetails,
		LandlordInformation: req.LandlordInformation,
		MaintenanceInfo:     req.MaintenanceInfo,
		ImageURL:            req.ImageURL,
	}
}

func siteResponse(site *domain.Site) dto.SiteResponse {
	return dto.SiteResponse{
		ID:                  site.ID,
		SiteID:              site.SiteID,
		SiteName:            site.SiteName,
		Location:            site.Location,
		TransmissionMode:    site.TransmissionMode,
		PowerSystem:         site.PowerSystem,
		Battery:             site.Battery,
		Services:            site.Services,
		Antennas:            site.Antennas,
		Power:               site.Power,
		TransmissionType:    site.TransmissionType,
		FiberDetails:        site.FiberDetails,
		LandlordInformation: site.LandlordInformation,
		MaintenanceInfo:     site.MaintenanceInfo,
		ImageURL:            site.ImageURL,
		CreatedAt:           site.CreatedAt,
		UpdatedAt:           site.UpdatedAt,
	}
}
