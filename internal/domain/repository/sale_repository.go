package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// ListAll returns every sale matching the filters without pagination (for exports).
	ListAll(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.SaleStatus
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Status     *enum.SaleStatus
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleItemRepository defines the interface for sale line item data operations
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
