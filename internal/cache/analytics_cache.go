package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pc-crazy/product-analytics-api/internal/models"
)

// KV is the minimal key-value contract AnalyticsCache needs. *RedisClient
// satisfies it; tests substitute an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// AnalyticsCache stores computed analytics responses keyed by a digest of
// the raw filter values. Entries expire after a fixed TTL; staleness within
// the TTL window is accepted.
type AnalyticsCache struct {
	kv  KV
	ttl time.Duration
}

// NewAnalyticsCache creates an AnalyticsCache with the given TTL.
func NewAnalyticsCache(kv KV, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{kv: kv, ttl: ttl}
}

// Key builds the cache key from the raw query values. Absent filters are the
// empty string, so "no filter" and "filter=<empty>" share an entry, which is
// fine: they produce the same aggregate. The concatenation is hashed so keys
// stay bounded regardless of input length.
func (c *AnalyticsCache) Key(category, minPrice, maxPrice string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%s", category, minPrice, maxPrice)))
	return "product_analytics:" + hex.EncodeToString(sum[:])
}

// Get retrieves a cached analytics result. Any error (including a plain
// miss) is returned to the caller, which treats it as a miss.
func (c *AnalyticsCache) Get(ctx context.Context, key string) (*models.ProductAnalytics, error) {
	jsonData, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var data models.ProductAnalytics
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	return &data, nil
}

// Set stores an analytics result under key with the configured TTL.
func (c *AnalyticsCache) Set(ctx context.Context, key string, data *models.ProductAnalytics) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}
	return c.kv.Set(ctx, key, string(jsonData), c.ttl)
}
