package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/service"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: dto.LoginUser{
			ID:    result.UID,
			Name:  result.Name,
			Email: result.Email,
			Role:  result.Role,
		},
	}})
}
