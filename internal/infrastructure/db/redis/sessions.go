package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// userCutoffTTL bounds how long a per-user cutoff needs to live: once every
// session issued before the cutoff has expired anyway, the key is useless.
const userCutoffTTL = 15 * 24 * time.Hour

// SessionRevoker tracks revoked sessions in Redis.
//
// Two key families:
//
//	revoked:sid:<sid>     — "1", set on logout, TTL = session lifetime
//	revoked:user:<uid>    — unix seconds; sessions issued at or before this
//	                        instant are refused (staff delete/deactivation)
type SessionRevoker struct {
	client *redis.Client
}

// NewSessionRevoker creates a SessionRevoker wrapping the given Redis client.
func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client}
}

// RevokeSession denylists a single session id.
func (s *SessionRevoker) RevokeSession(ctx context.Context, sid string, ttl time.Duration) error {
	return s.client.Set(ctx, sidKey(sid), "1", ttl).Err()
}

// RevokeUser refuses every session of uid issued at or before at.
func (s *SessionRevoker) RevokeUser(ctx context.Context, uid string, at time.Time) error {
	return s.client.Set(ctx, userKey(uid), strconv.FormatInt(at.Unix(), 10), userCutoffTTL).Err()
}

// IsRevoked reports whether the session identified by sid/uid/issuedAt has
// been revoked either individually or by a per-user cutoff.
func (s *SessionRevoker) IsRevoked(ctx context.Context, sid, uid string, issuedAt time.Time) (bool, error) {
	n, err := s.client.Exists(ctx, sidKey(sid)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	cutoff, err := s.client.Get(ctx, userKey(uid)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}

	cutoffUnix, err := strconv.ParseInt(cutoff, 10, 64)
	if err != nil {
		return false, fmt.Errorf("revocation check: malformed cutoff %q", cutoff)
	}
	return issuedAt.Unix() <= cutoffUnix, nil
}

func sidKey(sid string) string {
	return "revoked:sid:" + sid
}

func userKey(uid string) string {
	return "revoked:user:" + uid
}
