package limiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed limiter with a sliding failure window and lockout.
// Failures are counted per (email, ip) in a key that expires with the
// window; reaching maxFails sets a separate block key for blockFor.
type Redis struct {
	rdb      *redis.Client
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

// NewRedis constructs a Redis-backed limiter.
func NewRedis(rdb *redis.Client, window time.Duration, maxFails int, blockFor time.Duration) *Redis {
	return &Redis{rdb: rdb, window: window, maxFails: maxFails, blockFor: blockFor}
}

// HashIP returns a stable hash for an IP string to avoid storing raw addresses.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}

func (l *Redis) failKey(email string, ipHash []byte) string {
	return fmt.Sprintf("limiter_fails_%s_%s", email, hex.EncodeToString(ipHash))
}

func (l *Redis) blockKey(email string, ipHash []byte) string {
	return fmt.Sprintf("limiter_block_%s_%s", email, hex.EncodeToString(ipHash))
}

// Allow reports whether sign-in is currently allowed and a retry-after duration.
func (l *Redis) Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	ttl, err := l.rdb.TTL(ctx, l.blockKey(email, ipHash)).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

// Success resets counters for (email, ip).
func (l *Redis) Success(ctx context.Context, email string, ipHash []byte) error {
	return l.rdb.Del(ctx, l.failKey(email, ipHash), l.blockKey(email, ipHash)).Err()
}

// Failure records a failed attempt; may set a block until a future time.
func (l *Redis) Failure(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	key := l.failKey(email, ipHash)
	fails, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if fails == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, err
		}
	}
	if int(fails) >= l.maxFails {
		if err := l.rdb.Set(ctx, l.blockKey(email, ipHash), "1", l.blockFor).Err(); err != nil {
			return false, 0, err
		}
		return true, l.blockFor, nil
	}
	return false, 0, nil
}

// Nop permits everything; used when rate limiting is disabled.
type Nop struct{}

var _ Limiter = Nop{}

func (Nop) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (Nop) Success(context.Context, string, []byte) error { return nil }
func (Nop) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}
