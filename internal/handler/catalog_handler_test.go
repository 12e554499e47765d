package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pc-crazy/product-analytics-api/internal/models"
)

type fakeProductLister struct {
	products     []models.Product
	total        int
	lastSearch   string
	lastCategory string
	lastPage     int
	lastLimit    int
}

func (f *fakeProductLister) GetAllPaged(search, category string, page, limit int) ([]models.Product, int, error) {
	f.lastSearch = search
	f.lastCategory = category
	f.lastPage = page
	f.lastLimit = limit
	return f.products, f.total, nil
}

type fakeCategoryLister struct {
	categories []models.Category
}

func (f *fakeCategoryLister) GetAll(search string) ([]models.Category, error) {
	return f.categories, nil
}

func newCatalogRouter(products *fakeProductLister, categories *fakeCategoryLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(products, categories)
	router := gin.New()
	router.GET("/api/products/", h.ListProducts)
	router.GET("/api/categories/", h.ListCategories)
	return router
}

func TestListProductsPagination(t *testing.T) {
	lister := &fakeProductLister{
		products: []models.Product{{ID: 1, Name: "Widget"}},
		total:    42,
	}
	router := newCatalogRouter(lister, &fakeCategoryLister{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/?search=wid&category=Tools&page=2&limit=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wid", lister.lastSearch)
	assert.Equal(t, "Tools", lister.lastCategory)
	assert.Equal(t, 2, lister.lastPage)
	assert.Equal(t, 10, lister.lastLimit)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Pagination struct {
				Page       int `json:"page"`
				TotalItems int `json:"totalItems"`
				TotalPages int `json:"totalPages"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Meta.Pagination.Page)
	assert.Equal(t, 42, resp.Meta.Pagination.TotalItems)
	assert.Equal(t, 5, resp.Meta.Pagination.TotalPages)
}

func TestListProductsDefaults(t *testing.T) {
	lister := &fakeProductLister{}
	router := newCatalogRouter(lister, &fakeCategoryLister{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/?page=bogus&limit=-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, lister.lastPage)
	assert.Equal(t, 50, lister.lastLimit)
}

func TestListCategories(t *testing.T) {
	categories := &fakeCategoryLister{categories: []models.Category{
		{ID: 1, Name: "Garden"},
		{ID: 2, Name: "Tools"},
	}}
	router := newCatalogRouter(&fakeProductLister{}, categories)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Categories []models.Category `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Categories, 2)
	assert.Equal(t, "Garden", resp.Data.Categories[0].Name)
}
