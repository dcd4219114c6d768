package ports

import (
	"context"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes a user. The last remaining ADMINISTRATOR cannot be
	// deleted; the check and the delete run in one transaction so two
	// concurrent deletions cannot both pass it.
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}
