package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pc-crazy/product-analytics-api/internal/models"
	"github.com/pc-crazy/product-analytics-api/internal/utils"
)

// ProductAggregator computes analytics over the filtered product set.
type ProductAggregator interface {
	Aggregate(filters models.AnalyticsFilters) (*models.ProductAnalytics, error)
}

// ResultCache stores computed analytics keyed by the raw filter values.
type ResultCache interface {
	Key(category, minPrice, maxPrice string) string
	Get(ctx context.Context, key string) (*models.ProductAnalytics, error)
	Set(ctx context.Context, key string, data *models.ProductAnalytics) error
}

// AnalyticsService serves the cached product analytics aggregate.
type AnalyticsService struct {
	products ProductAggregator
	cache    ResultCache
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(products ProductAggregator, cache ResultCache) *AnalyticsService {
	return &AnalyticsService{products: products, cache: cache}
}

// GetAnalytics returns the aggregate for the given raw filter values,
// serving from cache when possible. The cache is consulted before the bounds
// are validated, so only successfully computed responses ever populate it.
// Cache failures on either side are treated as a miss, never as a request
// failure. Returns utils.ErrInvalidMinPrice / utils.ErrInvalidMaxPrice when
// a supplied bound is not numeric.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, category, minPrice, maxPrice string) (*models.ProductAnalytics, error) {
	key := s.cache.Key(category, minPrice, maxPrice)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	filters := models.AnalyticsFilters{Category: category}
	if minPrice != "" {
		v, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			return nil, utils.ErrInvalidMinPrice
		}
		filters.MinPrice = &v
	}
	if maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			return nil, utils.ErrInvalidMaxPrice
		}
		filters.MaxPrice = &v
	}

	result, err := s.products.Aggregate(filters)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache analytics result")
	}
	return result, nil
}
