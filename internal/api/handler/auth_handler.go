package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email     string `json:"email"    validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	CaptchaID string `json:"captchaId"`
	Captcha   string `json:"captcha"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    userRefResponse `json:"user"`
}

type captchaResponse struct {
	Success   bool   `json:"success"`
	CaptchaID string `json:"captchaId"`
	Captcha   string `json:"captcha"`
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		CaptchaID: req.CaptchaID,
		Captcha:   req.Captcha,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Token:   result.Token,
		User:    toUserRefResponse(result.User),
	})
}

// Captcha issues a throwaway 6-character challenge.
//
// @Summary      Obtain a captcha challenge
// @Tags         auth
// @Produce      json
// @Success      200  {object}  captchaResponse
// @Router       /api/auth/captcha [get]
func (h *AuthHandler) Captcha(c echo.Context) error {
	captcha, err := h.authService.NewCaptcha(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, captchaResponse{
		Success:   true,
		CaptchaID: captcha.ID,
		Captcha:   captcha.Text,
	})
}

// Me resolves the caller's identity from the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{Success: true, Data: toUserResponse(user)})
}
