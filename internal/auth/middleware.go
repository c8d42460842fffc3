package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Admin is resolved from the
// caller's directory record role, falling back to the configured bootstrap
// admin email when no record exists yet.
type Principal struct {
	UID   string
	Email string
	Staff *domain.StaffMember
	Admin bool
}

// Role returns the effective directory role.
func (p *Principal) Role() domain.StaffRole {
	if p.Staff != nil {
		return p.Staff.Role
	}
	if p.Admin {
		return domain.StaffRoleAdmin
	}
	return domain.StaffRoleUser
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	staff      repository.StaffRepository
	adminEmail string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, staff repository.StaffRepository, adminEmail string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, staff: staff, adminEmail: adminEmail}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{UID: claims.UID, Email: claims.Email}

	staff, err := m.staff.GetByID(c.Context(), claims.UID)
	switch {
	case err == nil:
		principal.Staff = staff
		principal.Admin = staff.Role == domain.StaffRoleAdmin
	case err == pgx.ErrNoRows:
		// No directory record. Only the bootstrap admin may proceed.
		if !m.isBootstrapAdmin(claims.Email) {
			return apperrors.NewUnauthorized("no directory record for caller")
		}
	default:
		return apperrors.MapError(err)
	}

	if m.isBootstrapAdmin(claims.Email) {
		principal.Admin = true
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AuthMiddleware) isBootstrapAdmin(email string) bool {
	return m.adminEmail != "" && strings.EqualFold(email, m.adminEmail)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// SetPrincipal attaches a principal to the request context.
func SetPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}
