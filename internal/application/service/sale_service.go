package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"github.com/kamandelane/tillpoint-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// SaleService handles checkout and sales history
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	taxRepo      repository.TaxRepository
	currencyRepo repository.CurrencyRepository
	companyRepo  repository.CompanyRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	taxRepo repository.TaxRepository,
	currencyRepo repository.CurrencyRepository,
	companyRepo repository.CompanyRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		taxRepo:      taxRepo,
		currencyRepo: currencyRepo,
		companyRepo:  companyRepo,
	}
}

// CheckoutItemInput represents one line of a checkout
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput represents the checkout input. Unit prices are never taken
// from the client; the server reads them off the product records.
type CheckoutInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	PaymentMethod enum.PaymentMethod
	PaymentAmount float64
	Items         []CheckoutItemInput
}

// Checkout turns a cart into a completed sale: it validates the attendant,
// customer and payment, atomically decrements stock, persists the sale with
// its line items and writes the invoice snapshot.
func (s *SaleService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	if input.UserID == uuid.Nil {
		return nil, apperror.NewBadRequestError("An attendant is required to complete a sale")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cannot checkout an empty cart")
	}

	// Validate customer if provided
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Validate all products exist and calculate totals from server-side prices
	var total int64
	var totalItems int
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for %s", product.Name))
		}

		itemTotal := product.SellingPrice * int64(item.Quantity)
		total += itemTotal
		totalItems += item.Quantity

		saleItems = append(saleItems, entity.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.SellingPrice,
			Total:     itemTotal,
		})

		// Accumulate so duplicate lines for one product decrement the
		// combined quantity, matching what the sale charges for.
		stockDecrements[product.ID] += item.Quantity
	}

	// Apply the active tax to get the amount actually owed
	activeTax, err := s.taxRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	subTotal, taxAmount, grandTotal := activeTax.Breakdown(total)

	// Round rather than truncate: 19.99 * 100 is 1998.999... as a float
	paymentCents := int64(math.Round(input.PaymentAmount * 100))
	if paymentCents < grandTotal {
		return nil, apperror.NewBadRequestError("Payment amount is less than the sale total")
	}
	change := paymentCents - grandTotal

	// Atomically decrement stock. If any product has insufficient stock,
	// the entire operation fails and nothing is decremented.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		ReceiptNo:     utils.GenerateReceiptNo(),
		SaleDate:      time.Now(),
		Status:        enum.SaleStatusCompleted,
		TotalItems:    totalItems,
		Total:         grandTotal,
		PaymentAmount: paymentCents,
		Change:        change,
		PaymentMethod: input.PaymentMethod,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	for i := range saleItems {
		saleItems[i].SaleID = sale.ID
	}

	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// The sale and its stock movement are already committed. An invoice
	// snapshot failure must not surface as a checkout failure, otherwise
	// the client retries (or the idempotency layer replays an error) for
	// a sale that exists.
	if err := s.createInvoice(ctx, sale, activeTax, subTotal, taxAmount, grandTotal); err != nil {
		log.Printf("Failed to create invoice for sale %s: %v", sale.ReceiptNo, err)
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// createInvoice snapshots the active tax, default company and default
// currency onto an invoice row for the sale.
func (s *SaleService) createInvoice(ctx context.Context, sale *entity.Sale, tax *entity.Tax, subTotal, taxAmount, grandTotal int64) error {
	invoice := &entity.Invoice{
		SaleID:    sale.ID,
		InvoiceNo: utils.GenerateInvoiceNo(),
		SubTotal:  subTotal,
		TaxAmount: taxAmount,
		Total:     grandTotal,
	}

	if tax != nil {
		invoice.TaxRate = tax.Rate
		invoice.TaxName = tax.Name
	}

	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	if company != nil {
		invoice.CompanyName = company.Name
		invoice.CompanyAddress = company.Address
		invoice.CompanyPhone = company.Phone
		invoice.CompanyEmail = company.Email
		invoice.CompanyTaxPin = company.TaxPin
	}

	currency, err := s.currencyRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	if currency != nil {
		invoice.CurrencyCode = currency.Code
		invoice.CurrencySymbol = currency.Symbol
	}

	return s.invoiceRepo.Create(ctx, invoice)
}

// GetSale retrieves a sale with its items by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByReceiptNo retrieves a sale by its receipt number
func (s *SaleService) GetSaleByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sale entity.Sale) string { return sale.ID.String() },
		func(sale entity.Sale) time.Time { return sale.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// CancelSale cancels a completed sale and restores its stock
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewAppError(400, "Sale is already cancelled")
	}

	// Build increment map for stock restoration
	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		stockIncrements[item.ProductID] = item.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusCancelled)
}

// ExportSales writes all sales matching the filters into an XLSX workbook
func (s *SaleService) ExportSales(ctx context.Context, params *repository.SaleFilterParams) (*bytes.Buffer, error) {
	sales, err := s.saleRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Receipt No", "Date", "Attendant", "Customer", "Items", "Total", "Payment", "Change", "Method", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sale := range sales {
		customerName := "Walk-in"
		if sale.Customer != nil {
			customerName = sale.Customer.Name
		}

		values := []interface{}{
			sale.ReceiptNo,
			sale.SaleDate.Format("2006-01-02 15:04"),
			sale.User.FullName(),
			customerName,
			sale.TotalItems,
			sale.GetTotalDecimal(),
			float64(sale.PaymentAmount) / 100,
			sale.GetChangeDecimal(),
			sale.PaymentMethod.String(),
			sale.Status.String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write sales export: %w", err)
	}
	return buf, nil
}
