package refresh

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 24 * time.Hour

// RedisBlocklist shares the bad-token set across processes. Useful when
// several instances sit behind the same cookie and a revoked token should
// stop hammering the provider from all of them at once.
//
// Tokens are stored as SHA-256 digests; raw refresh tokens never reach Redis.
type RedisBlocklist struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisBlocklistOption configures the RedisBlocklist.
type RedisBlocklistOption func(*RedisBlocklist)

// WithRedisPrefix namespaces blocklist keys, e.g. per tenant.
func WithRedisPrefix(prefix string) RedisBlocklistOption {
	return func(b *RedisBlocklist) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithRedisTTL bounds how long a token stays blocked. Entries expire on their
// own so the set cannot grow without bound.
func WithRedisTTL(ttl time.Duration) RedisBlocklistOption {
	return func(b *RedisBlocklist) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// NewRedisBlocklist creates a Redis-backed blocklist.
func NewRedisBlocklist(client redis.UniversalClient, opts ...RedisBlocklistOption) *RedisBlocklist {
	b := &RedisBlocklist{
		client: client,
		prefix: "ssokit:badtoken:",
		ttl:    defaultRedisTTL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *RedisBlocklist) IsBlocked(ctx context.Context, refreshToken string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(refreshToken)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *RedisBlocklist) Block(ctx context.Context, refreshToken string) error {
	return b.client.Set(ctx, b.key(refreshToken), 1, b.ttl).Err()
}

func (b *RedisBlocklist) Unblock(ctx context.Context, refreshToken string) error {
	return b.client.Del(ctx, b.key(refreshToken)).Err()
}

func (b *RedisBlocklist) key(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return b.prefix + hex.EncodeToString(sum[:])
}
