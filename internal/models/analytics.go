package models

// ProductAnalytics is the aggregate computed over a filtered product set.
// AveragePrice ignores products without a price; TotalStockValue counts a
// missing price or stock as zero. Both are rounded to 2 decimals in SQL.
type ProductAnalytics struct {
	TotalProducts   int     `db:"total_products" json:"total_products"`
	AveragePrice    float64 `db:"average_price" json:"average_price"`
	TotalStockValue float64 `db:"total_stock_value" json:"total_stock_value"`
}

// AnalyticsFilters are the optional bounds applied to the aggregation.
// A nil bound or empty category means the filter is not applied.
type AnalyticsFilters struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}
