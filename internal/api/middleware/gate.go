package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GateConfig controls the browser-navigation gate.
type GateConfig struct {
	// LoginPath is where unauthenticated page requests are sent.
	LoginPath string
	// HomePath is where an already-authenticated visit to LoginPath lands.
	HomePath string
	// BypassPrefixes skip the gate entirely (API, assets, probes). API paths
	// answer 401 from the session middleware instead of redirecting.
	BypassPrefixes []string
}

// Gate redirects unauthenticated browser navigations to the login page. The
// check is presence-only: the cookie is not decoded here, role and validity
// checks happen in the session middleware on the routes that act.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/dashboard"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range cfg.BypassPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			cookie, err := c.Cookie(SessionCookieName)
			hasSession := err == nil && cookie.Value != ""

			if path == cfg.LoginPath {
				if hasSession {
					return c.Redirect(http.StatusFound, cfg.HomePath)
				}
				return next(c)
			}

			if !hasSession {
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}
			return next(c)
		}
	}
}
