package ports

import (
	"context"
	"time"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// LoginInput carries the credentials presented at /auth/login.
type LoginInput struct {
	Email     string
	Password  string
	CaptchaID string
	Captcha   string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  domain.UserRef
}

// Captcha is a throwaway challenge handed to the client before login.
type Captcha struct {
	ID   string
	Text string
}

// AuthService defines the session-issuing use cases.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Me resolves the full user record behind an authenticated identity.
	Me(ctx context.Context, userID int64) (*domain.User, error)
	NewCaptcha(ctx context.Context) (*Captcha, error)
}

// CaptchaStore persists captcha challenges between issue and login.
// Challenges are single-use: Redeem removes the entry it returns.
type CaptchaStore interface {
	Save(ctx context.Context, id, text string, ttl time.Duration) error
	// Redeem returns the stored text for id and deletes it. Returns
	// domain.ErrCaptchaInvalid when the id is unknown or expired.
	Redeem(ctx context.Context, id string) (string, error)
}
