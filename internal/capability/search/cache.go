// internal/capability/search/cache.go
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"venture-agents/internal/common/logger"
)

// CachedSearcher memoizes query results in Redis so repeated research
// runs for the same idea do not burn search quota. Cache failures fall
// through to the live search.
type CachedSearcher struct {
	inner  Searcher
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSearcher(inner Searcher, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedSearcher {
	return &CachedSearcher{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"capability": "search", "layer": "cache"}),
	}
}

func (c *CachedSearcher) Search(ctx context.Context, query string) ([]Hit, error) {
	key := cacheKey(query)

	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var hits []Hit
		if err := json.Unmarshal([]byte(cached), &hits); err == nil {
			return hits, nil
		}
		// Corrupt entry: drop it and fall through.
		c.client.Del(ctx, key)
	}

	hits, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(hits); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return hits, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "search:" + hex.EncodeToString(sum[:16])
}
