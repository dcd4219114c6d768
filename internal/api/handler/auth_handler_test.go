package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	me          *domain.User
	captcha     *ports.Captcha

	gotLogin ports.LoginInput
}

func (s *stubAuthService) Login(_ context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	s.gotLogin = input
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Me(_ context.Context, _ int64) (*domain.User, error) {
	if s.me == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.me, nil
}

func (s *stubAuthService) NewCaptcha(_ context.Context) (*ports.Captcha, error) {
	return s.captcha, nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token: "signed-token",
		User:  domain.UserRef{ID: 1, Name: "Alice", Email: "alice@banki.com", Role: domain.RoleAdministrator},
	}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@banki.com","password":"pass1234","captchaId":"abc","captcha":"XYZ123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token != "signed-token" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User.Role != string(domain.RoleAdministrator) {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if svc.gotLogin.CaptchaID != "abc" || svc.gotLogin.Captcha != "XYZ123" {
		t.Fatalf("captcha fields not forwarded: %+v", svc.gotLogin)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":""}`)
	err := h.Login(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) == 0 {
		t.Fatalf("expected field messages")
	}
}

func TestAuthHandler_Login_PropagatesInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@banki.com","password":"wrong-pass"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Captcha(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{captcha: &ports.Captcha{ID: "cap-1", Text: "AB12CD"}})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/captcha", "")
	if err := h.Captcha(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp captchaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.CaptchaID != "cap-1" || resp.Captcha != "AB12CD" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	user := &domain.User{ID: 5, Name: "Bob", Email: "bob@banki.com", Role: domain.RoleAdvisor}
	h := NewAuthHandler(&stubAuthService{me: user})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set("user", user.Ref())
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.Email != "bob@banki.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	err := h.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
