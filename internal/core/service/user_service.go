package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

// UserService implements user management. The routes in front of it are
// restricted to administrators by the RBAC middleware.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a new user. Role defaults to ADVISOR when omitted, and
// the password is stored only after one-way hashing.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingUserFields
	}

	role := domain.RoleAdvisor
	if input.Role != "" {
		normalized, ok := domain.NormalizeRole(input.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		role = normalized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies a partial update: only the supplied fields change. A new
// email is rejected when it belongs to another user, a new password is
// re-hashed before persisting, and the last remaining administrator cannot
// be moved to another role.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if input.Role != nil && *input.Role != "" {
		role, ok := domain.NormalizeRole(*input.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		// Demoting the last administrator would leave the system without
		// one, exactly like deleting it. The repository re-checks inside
		// the update transaction; this pre-check gives a clear early error.
		if user.Role == domain.RoleAdministrator && role != domain.RoleAdministrator {
			admins, err := s.repo.CountByRole(ctx, domain.RoleAdministrator)
			if err != nil {
				return nil, err
			}
			if admins <= 1 {
				return nil, domain.ErrLastAdministrator
			}
		}
		user.Role = role
	}

	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// Delete removes a user unless it is the last remaining administrator.
// The repository re-checks the administrator count inside the delete
// transaction, so the pre-check here is only for a clear early error.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdministrator {
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdministrator)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrLastAdministrator
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Str("role", string(user.Role)).Msg("user deleted")
	return nil
}

// EnsureAdmin seeds an administrator account when the store has none, so
// the at-least-one-administrator invariant holds from the first startup.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	admins, err := s.repo.CountByRole(ctx, domain.RoleAdministrator)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	_, err = s.Create(ctx, ports.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(domain.RoleAdministrator),
	})
	if err != nil {
		return err
	}

	s.logger.Warn().Str("email", email).Msg("seeded initial administrator account")
	return nil
}
