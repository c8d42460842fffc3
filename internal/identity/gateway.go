// Package identity fronts the managed identity provider behind a stable
// interface. Account provisioning and deletion are the two halves of the
// staff-create saga; callers own the compensation logic.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrAccountNotFound reports a lookup miss.
var ErrAccountNotFound = errors.New("identity account not found")

// ErrInvalidCredentials reports a failed credential check.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken reports a provisioning conflict.
var ErrEmailTaken = errors.New("email already registered")

// Account is a provisioned login held by the identity provider.
type Account struct {
	UID       string
	Email     string
	CreatedAt time.Time
}

// Gateway issues, verifies and revokes identity accounts.
type Gateway interface {
	// CreateAccount provisions a login and returns its UID.
	CreateAccount(ctx context.Context, email, password string) (*Account, error)
	// DeleteAccount revokes a login. Deleting a missing account is not an error.
	DeleteAccount(ctx context.Context, uid string) error
	// VerifyCredentials checks an email/password pair and returns the account.
	VerifyCredentials(ctx context.Context, email, password string) (*Account, error)
	// GetByEmail resolves an account by email.
	GetByEmail(ctx context.Context, email string) (*Account, error)
}
