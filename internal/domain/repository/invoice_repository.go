package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices are created by checkout and read-only afterwards.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Invoice, int64, error)
	// GetWithSale returns the invoice with its sale, items and customer preloaded (for PDF rendering).
	GetWithSale(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
}
