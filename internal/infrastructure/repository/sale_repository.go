package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	domainRepo "github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.filtered(ctx, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("User").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListAll(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.filtered(ctx, params).
		Preload("Customer").
		Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) filtered(ctx context.Context, params *domainRepo.SaleFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	return query
}

func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Customer").
		Order("created_at ASC, id ASC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("User").
		Preload("Items.Product").
		Preload("Items.Product.Category").
		Preload("Invoice").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type saleItemRepository struct {
	db *gorm.DB
}

// NewSaleItemRepository creates a new sale item repository
func NewSaleItemRepository(db *gorm.DB) domainRepo.SaleItemRepository {
	return &saleItemRepository{db: db}
}

func (r *saleItemRepository) Create(ctx context.Context, item *entity.SaleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *saleItemRepository) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *saleItemRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sale_id = ?", saleID).
		Find(&items).Error
	return items, err
}

func (r *saleItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SaleItem{}, "id = ?", id).Error
}
