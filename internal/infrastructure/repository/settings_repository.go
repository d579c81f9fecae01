package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) GetActive(ctx context.Context) (*entity.Tax, error) {
	var tax entity.Tax
	err := r.db.WithContext(ctx).First(&tax, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) Update(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

func (r *taxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Tax{}, "id = ?", id).Error
}

func (r *taxRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error) {
	var taxes []entity.Tax
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Tax{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&taxes).Error

	return taxes, total, err
}

// Activate marks the given tax active and deactivates every other tax so
// at most one tax rate applies to checkout at any time.
func (r *taxRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Tax{}).
			Where("id != ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Tax{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
}

func (r *taxRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Tax{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new currency repository
func NewCurrencyRepository(db *gorm.DB) domainRepo.CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Create(ctx context.Context, currency *entity.Currency) error {
	return r.db.WithContext(ctx).Create(currency).Error
}

func (r *currencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	var currency entity.Currency
	err := r.db.WithContext(ctx).First(&currency, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &currency, err
}

func (r *currencyRepository) GetByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var currency entity.Currency
	err := r.db.WithContext(ctx).First(&currency, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &currency, err
}

func (r *currencyRepository) GetDefault(ctx context.Context) (*entity.Currency, error) {
	var currency entity.Currency
	err := r.db.WithContext(ctx).First(&currency, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &currency, err
}

func (r *currencyRepository) Update(ctx context.Context, currency *entity.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}

func (r *currencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Currency{}, "id = ?", id).Error
}

func (r *currencyRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Currency, int64, error) {
	var currencies []entity.Currency
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Currency{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("code ASC").
		Find(&currencies).Error

	return currencies, total, err
}

func (r *currencyRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Currency{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (r *currencyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Currency{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// SetDefault makes the given currency the default and clears the flag on
// all others. The default currency is also forced active since checkout
// snapshots it onto invoices.
func (r *currencyRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Currency{}).
			Where("id != ?", id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Currency{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_default": true, "is_active": true}).Error
	})
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) GetDefault(ctx context.Context) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Company{}, "id = ?", id).Error
}

func (r *companyRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&companies).Error

	return companies, total, err
}

func (r *companyRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Company{}).
			Where("id != ?", id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Company{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}
