package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banki/finanzas-api/internal/api/metrics"
	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

const captchaLength = 6

// Unambiguous charset: no O/0, I/1 lookalikes.
const captchaCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AuthService implements login, identity resolution and captcha issuing.
type AuthService struct {
	users           ports.UserRepository
	captchas        ports.CaptchaStore
	jwtSecret       string
	tokenTTL        time.Duration
	captchaTTL      time.Duration
	captchaRequired bool
	logger          zerolog.Logger
}

func NewAuthService(users ports.UserRepository, captchas ports.CaptchaStore, jwtSecret string, captchaRequired bool, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:           users,
		captchas:        captchas,
		jwtSecret:       jwtSecret,
		tokenTTL:        24 * time.Hour,
		captchaTTL:      5 * time.Minute,
		captchaRequired: captchaRequired,
		logger:          logger,
	}
}

// Login exchanges email+password (plus captcha when enforcement is enabled)
// for a signed token. Unknown email and wrong password both fail with
// ErrInvalidCredentials so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.captchaRequired {
		if err := s.verifyCaptcha(ctx, input.CaptchaID, input.Captcha); err != nil {
			return nil, err
		}
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user.Ref()}, nil
}

// Me resolves the full user record behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// NewCaptcha issues a 6-character challenge. The text is stored server-side
// under a throwaway id so login can re-validate it.
func (s *AuthService) NewCaptcha(ctx context.Context) (*ports.Captcha, error) {
	text, err := randomCaptchaText()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.captchas.Save(ctx, id, text, s.captchaTTL); err != nil {
		return nil, fmt.Errorf("save captcha: %w", err)
	}

	metrics.CaptchasIssuedTotal.Inc()
	return &ports.Captcha{ID: id, Text: text}, nil
}

func (s *AuthService) verifyCaptcha(ctx context.Context, id, answer string) error {
	if id == "" || answer == "" {
		return domain.ErrCaptchaInvalid
	}
	stored, err := s.captchas.Redeem(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(stored, answer) {
		return domain.ErrCaptchaInvalid
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func randomCaptchaText() (string, error) {
	b := make([]byte, captchaLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate captcha: %w", err)
	}
	for i := range b {
		b[i] = captchaCharset[int(b[i])%len(captchaCharset)]
	}
	return string(b), nil
}
