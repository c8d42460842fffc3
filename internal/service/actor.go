package service

import (
	"github.com/spec-kit/fieldops-service/internal/auth"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

func requireAuthenticated(actor *auth.Principal) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return nil
}

func requireAdmin(actor *auth.Principal) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Admin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
