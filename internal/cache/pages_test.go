package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagegen/internal/cache"
	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/metrics"
	"github.com/jonesrussell/pagegen/internal/models"
)

func newTestCache(t *testing.T) (*cache.PageCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	m := metrics.New(prometheus.NewRegistry())
	return cache.NewPageCache(client, time.Hour, m, logger.NewNopLogger()), mr
}

func cachedPage(slug string) *models.Page {
	return &models.Page{
		ID:          uuid.New(),
		ServiceID:   uuid.New(),
		CityID:      uuid.New(),
		Slug:        slug,
		Title:       "Best Web Design Services in Pune (2026)",
		MetaTitle:   "Web Design Pune | #1 2026",
		Content:     "# Web Design in Pune",
		IsGenerated: true,
		CreatedAt:   time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	page := cachedPage("pune/web-design")
	require.NoError(t, c.Set(ctx, page))

	got := c.Get(ctx, "pune/web-design")
	require.NotNil(t, got)
	assert.Equal(t, page.ID, got.ID)
	assert.Equal(t, page.Slug, got.Slug)
	assert.Equal(t, page.MetaTitle, got.MetaTitle)
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	assert.Nil(t, c.Get(context.Background(), "pune/missing"))
}

func TestGetCorruptEntryDegradesToMiss(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("page:pune/web-design", "not json"))

	assert.Nil(t, c.Get(context.Background(), "pune/web-design"))
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cachedPage("pune/web-design")))

	mr.FastForward(2 * time.Hour)

	assert.Nil(t, c.Get(ctx, "pune/web-design"))
}

func TestFlush(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cachedPage("pune/web-design")))
	require.NoError(t, c.Set(ctx, cachedPage("pune/seo")))

	// Keys outside the page namespace survive a flush.
	require.NoError(t, mr.Set("other:key", "kept"))

	require.NoError(t, c.Flush(ctx))

	assert.Nil(t, c.Get(ctx, "pune/web-design"))
	assert.Nil(t, c.Get(ctx, "pune/seo"))
	assert.True(t, mr.Exists("other:key"))
}

func TestFlushEmptyCache(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Flush(context.Background()))
}
