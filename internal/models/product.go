package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Category, price and stock are all optional:
// rows created outside the import (or whose category was later removed)
// may carry NULLs. Price is numeric(10,2) in the schema.
type Product struct {
	ID         int                 `db:"id" json:"id"`
	Name       string              `db:"name" json:"name"`
	CategoryID *int                `db:"category_id" json:"categoryId,omitempty"`
	Price      decimal.NullDecimal `db:"price" json:"price"`
	Stock      *int                `db:"stock" json:"stock"`
	CreatedAt  time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time           `db:"updated_at" json:"updatedAt"`

	// Joined from categories for list responses.
	CategoryName *string `db:"category_name" json:"category,omitempty"`
}

// ProductNameMaxLen is the schema limit on product names.
const ProductNameMaxLen = 25

// NewProduct is a pending product row produced by the import pipeline,
// not yet persisted. Price and stock are always set here: rows that fail
// to parse never make it this far.
type NewProduct struct {
	Name       string              `db:"name"`
	CategoryID *int                `db:"category_id"`
	Price      decimal.NullDecimal `db:"price"`
	Stock      *int                `db:"stock"`
}
