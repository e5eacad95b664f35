// Package cache provides a Redis read-through cache for resolved pages.
// Pages are immutable after creation, so entries only expire on the
// revalidation TTL or when the store is cleared.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/metrics"
	"github.com/jonesrussell/pagegen/internal/models"
)

// PageCache caches resolved pages keyed by slug
type PageCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewPageCache creates a page cache with the given revalidation TTL
func NewPageCache(client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics, log logger.Logger) *PageCache {
	return &PageCache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  log,
	}
}

func (c *PageCache) key(slug string) string {
	return "page:" + slug
}

// Get returns the cached page for a slug, or nil when absent. Redis errors
// degrade to a miss so the read path can fall back to the repository.
func (c *PageCache) Get(ctx context.Context, slug string) *models.Page {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("page cache read failed",
				logger.String("slug", slug),
				logger.Error(err),
			)
		}
		c.metrics.CacheMisses.Inc()
		return nil
	}

	page := &models.Page{}
	if err := json.Unmarshal(data, page); err != nil {
		c.logger.Warn("page cache entry corrupt, discarding",
			logger.String("slug", slug),
			logger.Error(err),
		)
		c.metrics.CacheMisses.Inc()
		return nil
	}

	c.metrics.CacheHits.Inc()
	return page
}

// Set stores a resolved page under its slug for the revalidation interval.
func (c *PageCache) Set(ctx context.Context, page *models.Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}

	if err := c.client.Set(ctx, c.key(page.Slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache page: %w", err)
	}

	return nil
}

// Flush drops every cached page. Called after the administrative clear
// operation so stale pages cannot be served from cache.
func (c *PageCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "page:*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan page cache: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("flush page cache: %w", err)
	}

	c.logger.Info("flushed page cache", logger.Int("keys", len(keys)))
	return nil
}
