package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/api/middleware"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// AuthHandler handles the login flow and session cookie lifecycle.
type AuthHandler struct {
	authService ports.AuthService
	secure      bool // Secure flag on the session cookie (production only)
}

func NewAuthHandler(authService ports.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, secure: secure}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	IDToken string `json:"idToken"`
}

type sessionRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// Login verifies credentials and returns a short-lived identity token.
//
// @Summary      Login with email and password
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
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idToken, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{IDToken: idToken})
}

// CreateSession exchanges an identity token for the long-lived session cookie.
//
// @Summary      Create a session cookie from an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Identity token"
// @Success      200   {object}  map[string]bool
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/session [post]
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.CreateSession(c.Request().Context(), req.IDToken)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_session").Inc()
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token, result.ExpiresAt))
	metrics.SessionsIssuedTotal.Inc()

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Logout revokes the current session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), identity.SID); err != nil {
		return err
	}

	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
