package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// Session validates the session cookie and injects the resolved identity into
// context under "uid", "role", "email" and "sid". Absent, malformed, expired
// and revoked sessions all yield 401; a revocation-store outage surfaces as
// an internal error rather than silently admitting the request.
func Session(jwtSecret string, revoker ports.SessionRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_session").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if typ, _ := claims["typ"].(string); typ != "session" {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_session").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			uid, _ := claims["sub"].(string)
			sid, _ := claims["sid"].(string)
			issuedAt := time.Time{}
			if iat, ok := claims["iat"].(float64); ok {
				issuedAt = time.Unix(int64(iat), 0).UTC()
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), sid, uid, issuedAt)
			if err != nil {
				return fmt.Errorf("session revocation check: %w", err)
			}
			if revoked {
				metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
			}

			c.Set("uid", uid)
			c.Set("role", claims["role"])
			c.Set("email", claims["email"])
			c.Set("sid", sid)

			return next(c)
		}
	}
}
