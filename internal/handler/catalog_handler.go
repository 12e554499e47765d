package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pc-crazy/product-analytics-api/internal/models"
	"github.com/pc-crazy/product-analytics-api/internal/utils"
)

// ProductLister provides the paged product list.
type ProductLister interface {
	GetAllPaged(search, category string, page, limit int) ([]models.Product, int, error)
}

// CategoryLister provides the category list.
type CategoryLister interface {
	GetAll(search string) ([]models.Category, error)
}

// CatalogHandler serves the read-only catalog list endpoints.
type CatalogHandler struct {
	products   ProductLister
	categories CategoryLister
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(products ProductLister, categories CategoryLister) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

// ListProducts returns the product list ordered by name with optional
// search (product or category name) and exact category filter.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	// pagination
	page := 1
	limit := 50
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	products, total, err := h.products.GetAllPaged(search, category, page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	}, page, limit, total)
}

// ListCategories returns categories ordered by name with optional search.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetAll(c.Query("search"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}

	utils.Success(c, 200, "Categories retrieved successfully", gin.H{
		"categories": categories,
	})
}
