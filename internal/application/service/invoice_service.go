package service

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"github.com/kamandelane/tillpoint-api/pkg/pdf"
)

// InvoiceService handles invoice reads and PDF generation. Invoices are
// written only by checkout.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceBySaleID retrieves the invoice belonging to a sale
func (s *InvoiceService) GetInvoiceBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with optional invoice number search
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// DownloadInvoice renders the invoice as a PDF. Returns the PDF bytes and
// the invoice number for the filename.
func (s *InvoiceService) DownloadInvoice(ctx context.Context, id uuid.UUID) (*bytes.Buffer, string, error) {
	invoice, err := s.invoiceRepo.GetWithSale(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", apperror.NewNotFoundError("Invoice")
	}

	return s.render(invoice)
}

// DownloadInvoiceBySaleID renders the PDF for the invoice of a sale.
func (s *InvoiceService) DownloadInvoiceBySaleID(ctx context.Context, saleID uuid.UUID) (*bytes.Buffer, string, error) {
	invoice, err := s.invoiceRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", apperror.NewNotFoundError("Invoice")
	}

	invoice, err = s.invoiceRepo.GetWithSale(ctx, invoice.ID)
	if err != nil {
		return nil, "", err
	}

	return s.render(invoice)
}

func (s *InvoiceService) render(invoice *entity.Invoice) (*bytes.Buffer, string, error) {
	data := &pdf.InvoiceData{
		InvoiceNo:      invoice.InvoiceNo,
		ReceiptNo:      invoice.Sale.ReceiptNo,
		Date:           invoice.CreatedAt.Format("2006-01-02"),
		CompanyName:    invoice.CompanyName,
		CurrencySymbol: invoice.CurrencySymbol,
		SubTotal:       float64(invoice.SubTotal) / 100,
		TaxName:        invoice.TaxName,
		TaxRate:        invoice.TaxRate,
		TaxAmount:      float64(invoice.TaxAmount) / 100,
		Total:          float64(invoice.Total) / 100,
	}

	if invoice.CompanyAddress != nil {
		data.CompanyAddress = *invoice.CompanyAddress
	}
	if invoice.CompanyPhone != nil {
		data.CompanyPhone = *invoice.CompanyPhone
	}
	if invoice.CompanyEmail != nil {
		data.CompanyEmail = *invoice.CompanyEmail
	}
	if invoice.CompanyTaxPin != nil {
		data.CompanyTaxPin = *invoice.CompanyTaxPin
	}
	if invoice.Sale.Customer != nil {
		data.CustomerName = invoice.Sale.Customer.Name
	}

	for _, item := range invoice.Sale.Items {
		name := item.Product.Name
		if name == "" {
			name = "Product"
		}
		data.Lines = append(data.Lines, pdf.InvoiceLine{
			Description: name,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPrice) / 100,
			Total:       float64(item.Total) / 100,
		})
	}

	buf, err := pdf.RenderInvoice(data)
	if err != nil {
		return nil, "", err
	}
	return buf, invoice.InvoiceNo, nil
}
