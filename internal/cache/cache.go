// Package cache wraps go-redis with the narrow result-caching API this
// service needs: hash a calculation input to a key, store/retrieve the
// JSON-encoded engine result behind a TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a go-redis client with the cache operations this service
// performs: get/set a named key with a TTL.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// New dials Redis and verifies connectivity with a bounded ping.
func New(cfg Config) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = fmt.Errorf("cache: key not found")

// resultKeyPrefix namespaces calculation-result cache entries.
const resultKeyPrefix = "taxcalc:"

// ResultKey builds the cache key for one calculation input: the state code
// and deal type kept in the key for easy manual inspection, followed by a
// SHA-256 digest of the full canonical input JSON so any field change
// produces a different key.
func ResultKey(stateCode, dealType string, input interface{}) (string, error) {
	canonical, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache: failed to encode input for hashing: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s%s:%s:%s", resultKeyPrefix, stateCode, dealType, hex.EncodeToString(sum[:])), nil
}

// GetResult retrieves and unmarshals a cached result into dest.
func (c *Client) GetResult(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetResult marshals and stores result under key with the given TTL.
func (c *Client) SetResult(ctx context.Context, key string, result interface{}, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache: failed to encode result: %w", err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}
