package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pc-crazy/product-analytics-api/internal/models"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetOrCreate returns the category with the given name, inserting it first
// if it does not exist. The insert ignores the unique-name conflict so two
// concurrent callers converge on the same row.
func (r *CategoryRepository) GetOrCreate(name string) (*models.Category, error) {
	const insert = `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	if _, err := r.db.Exec(insert, name); err != nil {
		return nil, err
	}

	const q = `SELECT * FROM categories WHERE name = $1 LIMIT 1`
	var c models.Category
	if err := r.db.Get(&c, q, name); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll returns categories ordered by name, optionally filtered by a
// case-insensitive substring match on the name. An empty search returns all.
func (r *CategoryRepository) GetAll(search string) ([]models.Category, error) {
	const q = `
        SELECT * FROM categories
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
        ORDER BY name`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var categories []models.Category
	if err := stmt.Select(&categories, search); err != nil {
		return nil, err
	}
	return categories, nil
}
