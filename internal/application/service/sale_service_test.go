package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
)

// Fakes embed the repository interfaces; only the methods the checkout
// path touches are implemented.

type fakeProductRepo struct {
	repository.ProductRepository
	products    map[uuid.UUID]entity.Product
	failIDs     []uuid.UUID
	decremented map[uuid.UUID]int
	incremented map[uuid.UUID]int
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	m := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{
		products:    m,
		decremented: make(map[uuid.UUID]int),
		incremented: make(map[uuid.UUID]int),
	}
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(f.failIDs) > 0 {
		return f.failIDs, nil
	}
	for id, qty := range decrements {
		f.decremented[id] += qty
	}
	return nil, nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		f.incremented[id] += qty
	}
	return nil
}

type fakeSaleRepo struct {
	repository.SaleRepository
	createErr error
	sale      *entity.Sale
	status    *enum.SaleStatus
}

func (f *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	sale.ID = uuid.New()
	f.sale = sale
	return nil
}

func (f *fakeSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	if f.sale == nil || f.sale.ID != id {
		return nil, nil
	}
	return f.sale, nil
}

func (f *fakeSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.SaleStatus) error {
	f.status = &status
	if f.sale != nil && f.sale.ID == id {
		f.sale.Status = status
	}
	return nil
}

type fakeSaleItemRepo struct {
	repository.SaleItemRepository
	items []entity.SaleItem
}

func (f *fakeSaleItemRepo) CreateBatch(_ context.Context, items []entity.SaleItem) error {
	f.items = append(f.items, items...)
	return nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customer *entity.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	if f.customer != nil && f.customer.ID == id {
		return f.customer, nil
	}
	return nil, nil
}

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	invoice   *entity.Invoice
	createErr error
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	invoice.ID = uuid.New()
	f.invoice = invoice
	return nil
}

type fakeTaxRepo struct {
	repository.TaxRepository
	active *entity.Tax
}

func (f *fakeTaxRepo) GetActive(_ context.Context) (*entity.Tax, error) {
	return f.active, nil
}

type fakeCurrencyRepo struct {
	repository.CurrencyRepository
	def *entity.Currency
}

func (f *fakeCurrencyRepo) GetDefault(_ context.Context) (*entity.Currency, error) {
	return f.def, nil
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	def *entity.Company
}

func (f *fakeCompanyRepo) GetDefault(_ context.Context) (*entity.Company, error) {
	return f.def, nil
}

type saleFixture struct {
	svc          *SaleService
	saleRepo     *fakeSaleRepo
	saleItemRepo *fakeSaleItemRepo
	productRepo  *fakeProductRepo
	customerRepo *fakeCustomerRepo
	invoiceRepo  *fakeInvoiceRepo
	taxRepo      *fakeTaxRepo
}

func newSaleFixture(products ...entity.Product) *saleFixture {
	f := &saleFixture{
		saleRepo:     &fakeSaleRepo{},
		saleItemRepo: &fakeSaleItemRepo{},
		productRepo:  newFakeProductRepo(products...),
		customerRepo: &fakeCustomerRepo{},
		invoiceRepo:  &fakeInvoiceRepo{},
		taxRepo:      &fakeTaxRepo{},
	}
	f.svc = NewSaleService(
		f.saleRepo,
		f.saleItemRepo,
		f.productRepo,
		f.customerRepo,
		f.invoiceRepo,
		f.taxRepo,
		&fakeCurrencyRepo{def: &entity.Currency{Code: "USD", Symbol: "$"}},
		&fakeCompanyRepo{def: &entity.Company{Name: "My Store"}},
	)
	return f
}

func TestCheckoutRequiresAttendant(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID: uuid.Nil,
		Items:  []CheckoutItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "attendant")
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 10,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCheckoutRejectsInsufficientPayment(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 12.99, // two units cost 13.00
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Payment amount")
	assert.Empty(t, f.productRepo.decremented, "stock must not move on a rejected payment")
}

func TestCheckoutComputesChangeAndDecrementsStock(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, int64(1300), sale.Total)
	assert.Equal(t, int64(2000), sale.PaymentAmount)
	assert.Equal(t, int64(700), sale.Change)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, 2, sale.TotalItems)
	assert.NotEmpty(t, sale.ReceiptNo)

	assert.Equal(t, 2, f.productRepo.decremented[product.ID])
	require.Len(t, f.saleItemRepo.items, 1)
	assert.Equal(t, int64(650), f.saleItemRepo.items[0].UnitPrice)
}

func TestCheckoutAppliesInclusiveTaxSnapshot(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 5800, Stock: 5}
	f := newSaleFixture(product)
	f.taxRepo.active = &entity.Tax{Name: "VAT", Rate: 16, Inclusive: true, IsActive: true}

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 116.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Inclusive tax leaves the grand total equal to the cart total
	assert.Equal(t, int64(11600), sale.Total)
	assert.Equal(t, int64(0), sale.Change)

	invoice := f.invoiceRepo.invoice
	require.NotNil(t, invoice)
	assert.Equal(t, "VAT", invoice.TaxName)
	assert.Equal(t, 16.0, invoice.TaxRate)
	assert.Equal(t, int64(10000), invoice.SubTotal)
	assert.Equal(t, int64(1600), invoice.TaxAmount)
	assert.Equal(t, int64(11600), invoice.Total)
	assert.Equal(t, "My Store", invoice.CompanyName)
	assert.Equal(t, "USD", invoice.CurrencyCode)
	assert.Equal(t, "$", invoice.CurrencySymbol)
	assert.NotEmpty(t, invoice.InvoiceNo)
}

func TestCheckoutReportsInsufficientStock(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 1}
	f := newSaleFixture(product)
	f.productRepo.failIDs = []uuid.UUID{product.ID}

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Insufficient stock")
	assert.Contains(t, appErr.Message, "IPA")
	assert.Nil(t, f.saleRepo.sale, "no sale is written when stock is short")
}

func TestCheckoutRestoresStockWhenSaleWriteFails(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)
	f.saleRepo.createErr = errors.New("db down")

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
	})

	require.Error(t, err)
	assert.Equal(t, 2, f.productRepo.decremented[product.ID])
	assert.Equal(t, 2, f.productRepo.incremented[product.ID], "decrement must be compensated")
}

func TestCheckoutRejectsUnknownCustomer(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)
	ghost := uuid.New()

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		CustomerID:    &ghost,
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 0}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCancelSaleRestoresStock(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 20.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	// GetWithItems on the fake does not join items, attach them directly
	f.saleRepo.sale.Items = f.saleItemRepo.items

	require.NoError(t, f.svc.CancelSale(context.Background(), sale.ID))
	assert.Equal(t, 3, f.productRepo.incremented[product.ID])
	require.NotNil(t, f.saleRepo.status)
	assert.Equal(t, enum.SaleStatusCancelled, *f.saleRepo.status)

	// A second cancel is rejected
	err = f.svc.CancelSale(context.Background(), sale.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCheckoutMergesDuplicateProductLines(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 1000, Stock: 10}
	f := newSaleFixture(product)

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 50.00,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// The decrement must cover every unit charged for, not just the last line
	assert.Equal(t, int64(5000), sale.Total)
	assert.Equal(t, 5, sale.TotalItems)
	assert.Equal(t, 5, f.productRepo.decremented[product.ID])
}

func TestCheckoutAcceptsExactPayment(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 1999, Stock: 5}
	f := newSaleFixture(product)

	// 19.99 * 100 is 1998.999... in float64; truncation would reject this
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 19.99,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1999), sale.Total)
	assert.Equal(t, int64(1999), sale.PaymentAmount)
	assert.Equal(t, int64(0), sale.Change)
}

func TestCheckoutSurvivesInvoiceWriteFailure(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	f := newSaleFixture(product)
	f.invoiceRepo.createErr = errors.New("invoice table unavailable")

	// The sale is committed and stock moved before the invoice snapshot, so
	// a snapshot failure must not turn the checkout into an error
	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentAmount: 10.00,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, 1, f.productRepo.decremented[product.ID])
	assert.Empty(t, f.productRepo.incremented, "committed stock must not be rolled back")
}
