package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the session middleware and
// fast-fails before any service call. The uid and role must both be present;
// their presence proves the middleware ran.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	uid, _ := c.Get("uid").(string)
	role, _ := c.Get("role").(string)
	if uid == "" || role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	sid, _ := c.Get("sid").(string)
	return ports.Identity{UID: uid, Role: role, Email: email, SID: sid}, nil
}

// requireRole re-verifies the acting role inside a handler, independent of
// the route-group RBAC middleware. Mutation handlers call this so a
// mis-grouped route never silently widens access.
func requireRole(c echo.Context, roles ...string) (ports.Identity, error) {
	identity, err := ctxIdentity(c)
	if err != nil {
		return ports.Identity{}, err
	}
	for _, r := range roles {
		if identity.Role == r {
			return identity, nil
		}
	}
	return ports.Identity{}, echo.NewHTTPError(http.StatusForbidden, "forbidden")
}
