package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductCode  string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue float64
	Count   int
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns total revenue from completed sales
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetTodayRevenue returns revenue and sale count for the current day
	GetTodayRevenue(ctx context.Context) (float64, int64, error)
}
