package repository

import (
	"context"
	"time"

	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	domainRepo "github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	if limit <= 0 {
		limit = 5
	}

	var results []domainRepo.TopProductResult

	// Amounts are stored in cents, divide by 100 for decimal revenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			p.code AS product_code,
			COALESCE(SUM(si.quantity), 0) AS quantity_sold,
			COALESCE(SUM(si.total), 0) / 100.0 AS revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = ? AND s.deleted_at IS NULL
		GROUP BY p.id, p.name, p.code
		ORDER BY revenue DESC
		LIMIT ?
	`, enum.SaleStatusCompleted, limit).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	if days <= 0 {
		days = 7
	}

	var results []domainRepo.DailySalesResult

	since := time.Now().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(s.sale_date) AS date,
			COALESCE(SUM(s.total), 0) / 100.0 AS revenue,
			COUNT(*) AS count
		FROM sales s
		WHERE s.status = ? AND s.sale_date >= ? AND s.deleted_at IS NULL
		GROUP BY DATE(s.sale_date)
		ORDER BY date ASC
	`, enum.SaleStatusCompleted, since).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) / 100.0
		FROM sales
		WHERE status = ? AND deleted_at IS NULL
	`, enum.SaleStatusCompleted).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetTodayRevenue(ctx context.Context) (float64, int64, error) {
	var result struct {
		Revenue float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total), 0) / 100.0 AS revenue,
			COUNT(*) AS count
		FROM sales
		WHERE status = ? AND DATE(sale_date) = CURRENT_DATE AND deleted_at IS NULL
	`, enum.SaleStatusCompleted).Scan(&result).Error

	return result.Revenue, result.Count, err
}
