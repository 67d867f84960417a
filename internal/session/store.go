// Package session implements the server-side session store backing the
// browser cookie. Sessions live in Redis under a random id; the cookie
// carries only that id, so revocation is a single key delete and nothing
// secret ever reaches the client.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campora/campground-api/internal/utils"
)

// CookieName is the session cookie shared between handlers and middleware.
const CookieName = "camp_session"

const keyPrefix = "sess:"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// ErrUnavailable is returned when no Redis client is configured, e.g.
// when Redis was unreachable at startup.
var ErrUnavailable = errors.New("session store unavailable")

// Store maps opaque session ids to account ids with a TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore builds a Store around the given client. A nil client is
// tolerated so the server can still boot without Redis; every call then
// fails with ErrUnavailable.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create allocates a fresh session for the account and returns its id.
func (s *Store) Create(ctx context.Context, userID uint64) (string, error) {
	if s.rdb == nil {
		return "", ErrUnavailable
	}
	id, err := utils.NewSessionID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+id, strconv.FormatUint(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Lookup resolves a session id to the account id it was issued for. The
// TTL is refreshed on every hit so active sessions slide forward.
func (s *Store) Lookup(ctx context.Context, id string) (uint64, error) {
	if s.rdb == nil {
		return 0, ErrUnavailable
	}
	v, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	_ = s.rdb.Expire(ctx, keyPrefix+id, s.ttl).Err()
	return userID, nil
}

// Destroy removes a session. Destroying an unknown id is not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if s.rdb == nil {
		return ErrUnavailable
	}
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

// TTL reports the configured session lifetime, used when setting the
// cookie expiry.
func (s *Store) TTL() time.Duration { return s.ttl }
