package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// TaxRepository defines the interface for tax configuration operations
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	// GetActive returns the currently active tax, or nil if none is active.
	GetActive(ctx context.Context) (*entity.Tax, error)
	Update(ctx context.Context, tax *entity.Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error)
	// Activate marks one tax active and deactivates all others in a single transaction.
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CurrencyRepository defines the interface for currency configuration operations
type CurrencyRepository interface {
	Create(ctx context.Context, currency *entity.Currency) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error)
	GetByCode(ctx context.Context, code string) (*entity.Currency, error)
	// GetDefault returns the default currency, or nil if none is set.
	GetDefault(ctx context.Context) (*entity.Currency, error)
	Update(ctx context.Context, currency *entity.Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Currency, int64, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// SetDefault marks one currency as the default and clears the flag on all others.
	SetDefault(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines the interface for company profile operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	// GetDefault returns the default company, or nil if none is set.
	GetDefault(ctx context.Context) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Company, int64, error)
	// SetDefault marks one company as the default and clears the flag on all others.
	SetDefault(ctx context.Context, id uuid.UUID) error
}
