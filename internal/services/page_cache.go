package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okfde/froide-campaign-service/internal/metrics"
)

const pageCachePrefix = "campaign:page:"

// PageCache stores rendered responses of anonymous page requests
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the cache key of a request path and query
func (c *PageCache) Key(path, rawQuery string) string {
	if rawQuery == "" {
		return pageCachePrefix + path
	}
	return pageCachePrefix + path + "?" + rawQuery
}

// Get returns the cached body; Redis errors count as a miss
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PageCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("Page cache lookup failed")
		metrics.PageCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.PageCacheLookups.WithLabelValues("hit").Inc()
	return body, true
}

// Set stores a body for the configured TTL
func (c *PageCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to store page in cache")
	}
}
