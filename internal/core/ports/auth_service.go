package ports

import (
	"context"
	"time"
)

// Identity is the server-verified actor resolved from a session credential.
// Every authorization decision derives from an Identity; caller-supplied ids
// are never trusted.
type Identity struct {
	UID   string
	Role  string
	Email string
	// SID is the session id embedded in the token, used for revocation.
	SID string
}

// SessionResult is returned when a long-lived session is issued.
type SessionResult struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService implements the two-step login flow: password login yields a
// short-lived identity token, which is then exchanged for a long-lived
// session credential.
type AuthService interface {
	// Login verifies email/password against the credential store and returns
	// a short-lived identity token. Inactive staff are refused.
	Login(ctx context.Context, email, password string) (string, error)
	// CreateSession validates an identity token and issues the session token
	// carried by the session cookie.
	CreateSession(ctx context.Context, idToken string) (*SessionResult, error)
	// Logout revokes the session id for the remaining session lifetime.
	Logout(ctx context.Context, sid string) error
}

// SessionRevoker tracks revoked sessions. A session is refused when its sid
// is denylisted or when it was issued before the per-user cutoff.
type SessionRevoker interface {
	RevokeSession(ctx context.Context, sid string, ttl time.Duration) error
	RevokeUser(ctx context.Context, uid string, at time.Time) error
	IsRevoked(ctx context.Context, sid, uid string, issuedAt time.Time) (bool, error)
}
