package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the caller summary returned beside the token.
type LoginUser struct {
	ID    string           `json:"id"`
	Name  string           `json:"name,omitempty"`
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}

// LoginResponse carries the issued token and the resolved caller.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      LoginUser `json:"user"`
}
