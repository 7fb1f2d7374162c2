package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrStaffInactive):
		return http.StatusUnauthorized, "account inactive"
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "invalid session"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrLifetimeBelowCurrent):
		// Legacy client-facing messages, returned verbatim.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidPoints),
		errors.Is(err, domain.ErrInvalidStoreID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrStoreExists):
		return http.StatusConflict, "store id already exists"
	case errors.Is(err, domain.ErrStaffExists):
		return http.StatusConflict, "staff already exists"
	case errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound, "member not found"
	case errors.Is(err, domain.ErrStaffNotFound):
		return http.StatusNotFound, "staff not found"
	case errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound, "store not found"
	case errors.Is(err, domain.ErrMenuItemNotFound):
		return http.StatusNotFound, "menu item not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
