// Package session maps opaque bearer tokens to user IDs in an expiring
// key-value store.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
)

// TTL is the fixed session lifetime. Sessions are never renewed.
const TTL = 24 * time.Hour

const keyPrefix = "auth_"

// KV is the minimal expiring key-value contract the manager needs.
// It is implemented by *redis.Client via Store.
type KV interface {
	// Get returns the value for key, or errs.ErrNotFound if absent/expired.
	Get(ctx context.Context, key string) (string, error)
	// SetEX stores key with a ttl.
	SetEX(ctx context.Context, key, value string, ttl time.Duration) error
	// Del removes key; removing an absent key is not an error.
	Del(ctx context.Context, key string) error
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Store adapts *redis.Client to the KV contract.
type Store struct{ rdb *redis.Client }

// NewStore wraps an existing Redis client.
func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrNotFound
	}
	return v, err
}

func (s *Store) SetEX(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Manager issues, resolves, and revokes session tokens.
type Manager struct{ kv KV }

// NewManager constructs a Manager over the given store.
func NewManager(kv KV) *Manager { return &Manager{kv: kv} }

// Create issues a fresh random token for userID with the fixed TTL.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	tok, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	token := tok.String()
	if err := m.kv.SetEX(ctx, keyPrefix+token, userID.String(), TTL); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user ID behind token, or errs.ErrUnauthorized if the
// token is unknown or expired.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, errs.ErrUnauthorized
	}
	v, err := m.kv.Get(ctx, keyPrefix+token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return uuid.Nil, errs.ErrUnauthorized
		}
		return uuid.Nil, err
	}
	id, err := uuid.FromString(v)
	if err != nil {
		return uuid.Nil, errs.ErrUnauthorized
	}
	return id, nil
}

// Destroy revokes token. Revoking an absent token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.kv.Del(ctx, keyPrefix+token)
}

// Ping reports whether the session store is reachable.
func (m *Manager) Ping(ctx context.Context) error { return m.kv.Ping(ctx) }
