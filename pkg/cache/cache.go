// Package cache is an optional Redis-backed response cache. Solving is pure,
// so a byte-identical request always yields a byte-identical response and
// can be replayed from the cache. Disabled when REDIS_URL is unset; cache
// failures never fail a request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 24 * time.Hour

// Cache wraps a Redis client. The zero-value-like disabled form (nil client)
// is returned when no REDIS_URL is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New builds a Cache from REDIS_URL. A missing or unparsable URL yields a
// disabled cache.
func New(log *zap.Logger) *Cache {
	c := &Cache{ttl: defaultTTL, log: log}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		return c
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, response cache disabled", zap.Error(err))
		return c
	}
	c.client = redis.NewClient(opt)
	return c
}

// Enabled reports whether a Redis client is configured.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Key derives the cache key for a raw request body.
func Key(body []byte) string {
	sum := sha256.Sum256(body)
	return "cast:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, if any.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// Set stores a response under key.
func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.Error(err))
	}
}
