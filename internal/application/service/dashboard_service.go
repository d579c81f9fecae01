package service

import (
	"context"

	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// DashboardService provides the till overview: today's takings, totals,
// low stock and top sellers.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	saleRepo      repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		saleRepo:      saleRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue   float64              `json:"today_revenue"`
	TodaySales     int64                `json:"today_sales"`
	TotalRevenue   float64              `json:"total_revenue"`
	TotalSales     int64                `json:"total_sales"`
	TotalProducts  int64                `json:"total_products"`
	TotalCustomers int64                `json:"total_customers"`
	LowStockCount  int64                `json:"low_stock_count"`
	TopProducts    []TopProductPoint    `json:"top_products"`
	DailySalesData []DailySalesPoint    `json:"daily_sales_data"`
}

// TopProductPoint represents a top selling product
type TopProductPoint struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	todayRevenue, todaySales, err := s.analyticsRepo.GetTodayRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TodayRevenue = todayRevenue
	stats.TodaySales = todaySales

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = totalRevenue

	// Counts only, the rows themselves are discarded
	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1

	_, productCount, err := s.productRepo.List(ctx, &repository.ProductFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, saleCount, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalSales = saleCount

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = make([]TopProductPoint, 0, len(topProducts))
	for _, tp := range topProducts {
		stats.TopProducts = append(stats.TopProducts, TopProductPoint{
			ProductID:    tp.ProductID.String(),
			Name:         tp.ProductName,
			Code:         tp.ProductCode,
			QuantitySold: tp.QuantitySold,
			Revenue:      tp.Revenue,
		})
	}

	dailySales, err := s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySalesData = make([]DailySalesPoint, 0, len(dailySales))
	for _, ds := range dailySales {
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:    ds.Date.Format("Jan 02"),
			Revenue: ds.Revenue,
			Count:   ds.Count,
		})
	}

	return stats, nil
}
