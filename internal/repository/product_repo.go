package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pc-crazy/product-analytics-api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// BulkInsertIgnoreConflicts inserts the batch in one multi-row statement,
// silently dropping rows whose name collides with an existing product. All
// non-conflicting rows in the batch are still inserted; existing rows are
// never modified. Returns the number of rows actually inserted, which is
// lower than len(products) when conflicts occurred.
func (r *ProductRepository) BulkInsertIgnoreConflicts(products []models.NewProduct) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}

	const q = `
        INSERT INTO products (name, category_id, price, stock)
        VALUES (:name, :category_id, :price, :stock)
        ON CONFLICT (name) DO NOTHING`

	res, err := r.db.NamedExec(q, products)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Aggregate computes product analytics over the filtered set. Filters are
// ignored when empty/nil respectively. AVG skips NULL prices, so unpriced
// products do not drag the average down; the stock-value sum treats a NULL
// price or stock as zero. An empty result set yields zeros.
func (r *ProductRepository) Aggregate(filters models.AnalyticsFilters) (*models.ProductAnalytics, error) {
	const q = `
        SELECT COUNT(p.id) AS total_products,
               COALESCE(ROUND(AVG(p.price), 2), 0) AS average_price,
               COALESCE(ROUND(SUM(COALESCE(p.price, 0) * COALESCE(p.stock, 0)), 2), 0) AS total_stock_value
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE ($1 = '' OR LOWER(c.name) = LOWER($1))
        AND ($2::numeric IS NULL OR p.price >= $2)
        AND ($3::numeric IS NULL OR p.price <= $3)`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var a models.ProductAnalytics
	if err := stmt.Get(&a, filters.Category, filters.MinPrice, filters.MaxPrice); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAllPaged returns products with their category name, filtered and
// paginated, and also returns total count. Filters: category (exact name),
// search (ILIKE on product or category name). Empty filters are ignored.
// Page begins at 1.
func (r *ProductRepository) GetAllPaged(search, category string, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const baseFrom = `FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%')
        AND ($2 = '' OR c.name = $2)`

	countQuery := `SELECT COUNT(1) ` + baseFrom
	var total int
	if err := r.db.Get(&total, countQuery, search, category); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT p.*, c.name AS category_name ` + baseFrom + `
        ORDER BY p.name LIMIT $3 OFFSET $4`
	var products []models.Product
	if err := r.db.Select(&products, listQuery, search, category, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
