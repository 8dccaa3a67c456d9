package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	KeyActiveServices = "catalog:services:active"
	KeyActivePackages = "catalog:packages:active"
)

type NoopCache struct{}

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

// Remember returns the cached JSON value under key, or calls load and
// caches its result. Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if raw, ok, err := c.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.Any("err", err))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err == nil {
		if err := c.Set(ctx, key, raw, ttl); err != nil {
			slog.WarnContext(ctx, "cache set failed", slog.String("key", key), slog.Any("err", err))
		}
	}
	return v, nil
}

// Invalidate drops keys, logging instead of failing the caller's write.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidate failed", slog.Any("keys", keys), slog.Any("err", err))
	}
}
