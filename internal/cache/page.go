// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached public pages.
	pageKeyPrefix = "landingkit:page:"
	// genKeyPrefix holds a per-page counter bumped on every invalidation.
	genKeyPrefix = "landingkit:pagegen:"
	// genTTL keeps counters of pages nobody edits from piling up. It only
	// has to outlive a single render.
	genTTL = 24 * time.Hour

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache keeps rendered public landing pages in Valkey, keyed by the
// page's custom username. A nil *PageCache is a valid, always-missing cache.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Key returns the Valkey key of a page.
func Key(slug string) string {
	return pageKeyPrefix + slug
}

func genKey(slug string) string {
	return genKeyPrefix + slug
}

// Generation returns the invalidation counter of a page. Read it before
// loading the page and hand it to SetIfCurrent. ok is false when Valkey
// cannot answer; the render should then not be cached.
func (pc *PageCache) Generation(ctx context.Context, slug string) (gen uint64, ok bool) {
	if pc == nil {
		return 0, false
	}
	gen, err := pc.client.Get(ctx, genKey(slug)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("page cache generation error", "slug", slug, "error", err)
		return 0, false
	}
	return gen, true
}

// SetIfCurrent stores rendered HTML unless the page was invalidated after
// gen was read. It reports whether the HTML was stored.
func (pc *PageCache) SetIfCurrent(ctx context.Context, slug string, html []byte, gen uint64) bool {
	if pc == nil {
		return false
	}
	key := genKey(slug)
	stored := false
	err := pc.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(slug), html, pc.ttl)
			return nil
		})
		stored = err == nil
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return false
	}
	if err != nil {
		slog.Warn("page cache set error", "slug", slug, "error", err)
		return false
	}
	if !stored {
		slog.Debug("stale render not cached", "slug", slug)
	}
	return stored
}

// Get retrieves cached HTML for a page. Errors count as misses.
func (pc *PageCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, Key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "slug", slug)
	return val, true
}

// Set stores rendered HTML for a page with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, slug string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, Key(slug), html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes a page from the cache and bumps its generation, so
// renders that started before the call are not cached.
func (pc *PageCache) Invalidate(ctx context.Context, slug string) error {
	if pc == nil {
		return nil
	}
	_, err := pc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(slug))
		pipe.Expire(ctx, genKey(slug), genTTL)
		pipe.Del(ctx, Key(slug))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate page %s: %w", slug, err)
	}
	slog.Debug("page cache invalidated", "slug", slug)
	return nil
}

// InvalidateAll removes every cached page. Run at startup, since a new
// build may render the same content differently.
func (pc *PageCache) InvalidateAll(ctx context.Context) (int, error) {
	if pc == nil {
		return 0, nil
	}
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan cached pages: %w", err)
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("delete cached pages: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache cleared", "deleted", deleted)
	}
	return deleted, nil
}
