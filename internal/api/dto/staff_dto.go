package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// StaffCreateRequest payload for new directory records.
type StaffCreateRequest struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	UserID     string           `json:"userId"`
	Password   string           `json:"password"`
	Role       domain.StaffRole `json:"role"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
}

// StaffUpdateRequest payload for directory updates.
type StaffUpdateRequest struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	UserID     string           `json:"userId"`
	Role       domain.StaffRole `json:"role"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
}

// StaffResponse is the directory record representation.
type StaffResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	UserID     string           `json:"userId"`
	Role       domain.StaffRole `json:"role"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
	CreatedAt  time.Time        `json:"createdAt"`
}
