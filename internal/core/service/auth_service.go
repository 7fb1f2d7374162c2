package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

const idTokenTTL = 5 * time.Minute

// AuthService implements the two-step login flow: password login yields a
// short-lived identity token, exchanged for the long-lived session token
// carried by the session cookie.
type AuthService struct {
	creds      ports.CredentialRepository
	staff      ports.StaffRepository
	revoker    ports.SessionRevoker
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	creds ports.CredentialRepository,
	staff ports.StaffRepository,
	revoker ports.SessionRevoker,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 14 * 24 * time.Hour
	}
	return &AuthService{
		creds:      creds,
		staff:      staff,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrCredentialNotFound {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	// A credential may exist without a staff document (migrated accounts
	// register themselves via setup-user after first login). Only an
	// explicitly deactivated staff record blocks login.
	account, err := s.staff.FindByUID(ctx, cred.ID)
	switch {
	case err == nil:
		if !account.IsActive {
			return "", domain.ErrStaffInactive
		}
	case err == domain.ErrStaffNotFound:
		// fall through, identity token issued from the credential alone
	default:
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":   cred.ID,
		"email": cred.Email,
		"typ":   "id",
		"exp":   time.Now().Add(idTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign id token: %w", err)
	}

	s.log.Info().Str("uid", cred.ID).Msg("identity token issued")
	return token, nil
}

func (s *AuthService) CreateSession(ctx context.Context, idToken string) (*ports.SessionResult, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidSession
	}
	if typ, _ := claims["typ"].(string); typ != "id" {
		return nil, domain.ErrInvalidSession
	}

	uid, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return nil, domain.ErrInvalidSession
	}

	// Role is read fresh from the staff document, never from the inbound
	// token, so a role change takes effect on the next session exchange.
	// An identity without a staff document gets the unprivileged staff role;
	// its only reachable operation is setup-user.
	role := domain.RoleStaff
	account, err := s.staff.FindByUID(ctx, uid)
	switch {
	case err == nil:
		if !account.IsActive {
			return nil, domain.ErrStaffInactive
		}
		role = account.Role
		email = account.Email
	case err == domain.ErrStaffNotFound:
		// fall through with the unprivileged role
	default:
		return nil, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.sessionTTL)
	sessionClaims := jwt.MapClaims{
		"sub":   uid,
		"role":  role,
		"email": email,
		"sid":   newSessionID(),
		"typ":   "session",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info().Str("uid", uid).Str("role", role).Msg("session issued")
	return &ports.SessionResult{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	// The exact remaining lifetime is unknown here; the full session TTL is a
	// safe upper bound for the denylist entry.
	if err := s.revoker.RevokeSession(ctx, sid, s.sessionTTL); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// newSessionID returns a random 16-byte hex session id.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
