package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pc-crazy/product-analytics-api/internal/service"
	"github.com/pc-crazy/product-analytics-api/internal/utils"
)

// AnalyticsHandler serves the product analytics endpoint. The response shape
// is flat JSON, not the list-endpoint envelope, and the endpoint is open.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics handles GET /api/products/analytics/.
// Filters: category (case-insensitive exact match), min_price, max_price
// (inclusive). A supplied but non-numeric bound is a 400 naming the field;
// an absent one is simply not applied.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	category := c.Query("category")
	minPrice := c.Query("min_price")
	maxPrice := c.Query("max_price")

	result, err := h.analyticsService.GetAnalytics(c.Request.Context(), category, minPrice, maxPrice)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidMinPrice):
			c.JSON(400, gin.H{"error": "Invalid min_price"})
		case errors.Is(err, utils.ErrInvalidMaxPrice):
			c.JSON(400, gin.H{"error": "Invalid max_price"})
		default:
			log.Error().Err(err).Msg("analytics aggregation failed")
			c.JSON(500, gin.H{"error": "Failed to compute analytics"})
		}
		return
	}

	c.JSON(200, result)
}
