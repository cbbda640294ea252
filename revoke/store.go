package revoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenRevoked is returned when a presented token's jti is on the deny
// list.
var ErrTokenRevoked = errors.New("token revoked")

// ErrEmptyJTI is returned when the presented token carries no jti claim.
var ErrEmptyJTI = errors.New("token has no jti")

// Deny-list entries need to outlive clock skew between the issuing host and
// Redis; entries are padded by this much beyond the token's remaining life.
const expiryPadding = 5 * time.Second

const minEntryTTL = time.Second

// Store is a Redis-backed jti deny list. An entry lives exactly as long as
// the token it blocks, plus padding, so the list never grows beyond the set
// of live revoked tokens.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore wraps client. prefix namespaces all keys; it must be non-empty
// when the Redis instance is shared.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "ct"
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(jti string) string {
	return s.prefix + ":revoked:" + jti
}

// Revoke puts jti on the deny list for the token's remaining lifetime.
// Revoking an already-expired token (remaining <= 0) is a no-op.
func (s *Store) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if jti == "" {
		return ErrEmptyJTI
	}
	if remaining <= 0 {
		return nil
	}
	ttl := remaining + expiryPadding
	if err := s.redis.Set(ctx, s.key(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocation store: %w", err)
	}
	return nil
}

// Claim atomically revokes jti and reports whether this caller got there
// first. It is the single-use primitive: exactly one of any set of
// concurrent claimers for the same jti sees true.
func (s *Store) Claim(ctx context.Context, jti string, remaining time.Duration) (bool, error) {
	if jti == "" {
		return false, ErrEmptyJTI
	}
	ttl := remaining + expiryPadding
	if ttl < minEntryTTL {
		ttl = minEntryTTL
	}
	first, err := s.redis.SetNX(ctx, s.key(jti), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("revocation store: %w", err)
	}
	return first, nil
}

// IsRevoked reports whether jti is on the deny list.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, ErrEmptyJTI
	}
	n, err := s.redis.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation store: %w", err)
	}
	return n > 0, nil
}

// Check is the guard-facing form of IsRevoked: it returns ErrTokenRevoked
// for a listed jti and nil for a clean one.
func (s *Store) Check(ctx context.Context, jti string) error {
	revoked, err := s.IsRevoked(ctx, jti)
	if err != nil {
		return err
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// Ping measures a Redis round trip.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("revocation store: %w", err)
	}
	return time.Since(start), nil
}
