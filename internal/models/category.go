package models

import "time"

// Category groups products. Names are unique and trimmed on the way in;
// import reuses an existing category by exact name instead of duplicating.
type Category struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CategoryNameMaxLen is the schema limit on category names.
const CategoryNameMaxLen = 25
