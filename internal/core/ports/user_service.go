package ports

import (
	"context"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// CreateUserInput carries the fields for registering a user.
// Role is optional and defaults to ADVISOR.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService defines the user-management use cases. Route-level
// authorization (ADMINISTRATOR only) is enforced by the RBAC middleware,
// not here.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// EnsureAdmin creates a seed administrator when none exists, so the
	// at-least-one-administrator invariant holds from first startup.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}
