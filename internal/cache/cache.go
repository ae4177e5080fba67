package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const keyPrefix = "risk"

// Cache is a versioned JSON cache on redis. Each scope (an owner, usually)
// has its own version counter; bumping it orphans every key built under the
// previous version. A nil Cache or nil client disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func versionKey(scope string) string {
	return strings.Join([]string{keyPrefix, "version", scope}, ":")
}

// Version returns the current version for scope, starting at 1.
func (c *Cache) Version(ctx context.Context, scope string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey(scope), 1, 0).Err(); err != nil {
			return 0, eris.Wrap(err, "cache: init version")
		}
		return 1, nil
	}
	if err != nil {
		return 0, eris.Wrap(err, "cache: read version")
	}
	return ver, nil
}

// BuildKey composes a key under the scope's current version.
func (c *Cache) BuildKey(ctx context.Context, scope string, parts ...string) (string, error) {
	base := strings.Join(append([]string{keyPrefix, scope}, parts...), ":")
	if !c.enabled() {
		return base, nil
	}
	ver, err := c.Version(ctx, scope)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", base, ver), nil
}

// FetchJSON decodes the cached value at key into dest, or calls loader and
// caches its result.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return eris.New("cache: loader required")
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return eris.Wrap(json.Unmarshal(payload, dest), "cache: decode")
		}
		if !errors.Is(err, redis.Nil) {
			return eris.Wrap(err, "cache: get")
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrap(err, "cache: encode")
	}
	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return eris.Wrap(err, "cache: set")
		}
	}
	return eris.Wrap(json.Unmarshal(raw, dest), "cache: decode")
}

// Bump invalidates every key built for scope.
func (c *Cache) Bump(ctx context.Context, scope string) error {
	if !c.enabled() {
		return nil
	}
	return eris.Wrap(c.client.Incr(ctx, versionKey(scope)).Err(), "cache: bump")
}
