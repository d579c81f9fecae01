package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
)

type memTaxRepo struct {
	repository.TaxRepository
	taxes   map[uuid.UUID]*entity.Tax
	deleted []uuid.UUID
}

func newMemTaxRepo() *memTaxRepo {
	return &memTaxRepo{taxes: make(map[uuid.UUID]*entity.Tax)}
}

func (r *memTaxRepo) Create(_ context.Context, tax *entity.Tax) error {
	tax.ID = uuid.New()
	r.taxes[tax.ID] = tax
	return nil
}

func (r *memTaxRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Tax, error) {
	return r.taxes[id], nil
}

func (r *memTaxRepo) GetActive(_ context.Context) (*entity.Tax, error) {
	for _, t := range r.taxes {
		if t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTaxRepo) Update(_ context.Context, tax *entity.Tax) error {
	r.taxes[tax.ID] = tax
	return nil
}

func (r *memTaxRepo) Activate(_ context.Context, id uuid.UUID) error {
	for _, t := range r.taxes {
		t.IsActive = t.ID == id
	}
	return nil
}

func (r *memTaxRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if t, ok := r.taxes[id]; ok {
		t.IsActive = false
	}
	return nil
}

func (r *memTaxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.taxes, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestCreateTaxValidatesRate(t *testing.T) {
	svc := NewTaxService(newMemTaxRepo())

	_, err := svc.CreateTax(context.Background(), &CreateTaxInput{Name: "Bad", Rate: -1})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.CreateTax(context.Background(), &CreateTaxInput{Name: "Bad", Rate: 100})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	tax, err := svc.CreateTax(context.Background(), &CreateTaxInput{Name: "VAT", Rate: 16, Inclusive: true})
	require.NoError(t, err)
	assert.False(t, tax.IsActive, "new taxes start inactive")
}

func TestActivateTaxIsExclusive(t *testing.T) {
	repo := newMemTaxRepo()
	svc := NewTaxService(repo)

	vat, err := svc.CreateTax(context.Background(), &CreateTaxInput{Name: "VAT", Rate: 16, Inclusive: true})
	require.NoError(t, err)
	levy, err := svc.CreateTax(context.Background(), &CreateTaxInput{Name: "Levy", Rate: 2})
	require.NoError(t, err)

	_, err = svc.ActivateTax(context.Background(), vat.ID)
	require.NoError(t, err)
	activated, err := svc.ActivateTax(context.Background(), levy.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	active, err := svc.GetActiveTax(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, levy.ID, active.ID)
	assert.False(t, repo.taxes[vat.ID].IsActive, "activating one tax deactivates the rest")
}

func TestDeleteActiveTaxBlocked(t *testing.T) {
	repo := newMemTaxRepo()
	svc := NewTaxService(repo)

	vat, err := svc.CreateTax(context.Background(), &CreateTaxInput{Name: "VAT", Rate: 16})
	require.NoError(t, err)
	_, err = svc.ActivateTax(context.Background(), vat.ID)
	require.NoError(t, err)

	err = svc.DeleteTax(context.Background(), vat.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, repo.deleted)

	_, err = svc.DeactivateTax(context.Background(), vat.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTax(context.Background(), vat.ID))
	assert.Len(t, repo.deleted, 1)
}

type memCurrencyRepo struct {
	repository.CurrencyRepository
	currencies map[uuid.UUID]*entity.Currency
	deleted    []uuid.UUID
}

func newMemCurrencyRepo() *memCurrencyRepo {
	return &memCurrencyRepo{currencies: make(map[uuid.UUID]*entity.Currency)}
}

func (r *memCurrencyRepo) Create(_ context.Context, c *entity.Currency) error {
	c.ID = uuid.New()
	r.currencies[c.ID] = c
	return nil
}

func (r *memCurrencyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Currency, error) {
	return r.currencies[id], nil
}

func (r *memCurrencyRepo) GetByCode(_ context.Context, code string) (*entity.Currency, error) {
	for _, c := range r.currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCurrencyRepo) GetDefault(_ context.Context) (*entity.Currency, error) {
	for _, c := range r.currencies {
		if c.IsDefault {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCurrencyRepo) Update(_ context.Context, c *entity.Currency) error {
	r.currencies[c.ID] = c
	return nil
}

func (r *memCurrencyRepo) SetDefault(_ context.Context, id uuid.UUID) error {
	for _, c := range r.currencies {
		c.IsDefault = c.ID == id
		if c.IsDefault {
			c.IsActive = true
		}
	}
	return nil
}

func (r *memCurrencyRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.currencies[id]; ok {
		c.IsActive = false
	}
	return nil
}

func (r *memCurrencyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.currencies, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestCreateCurrencyRejectsDuplicateCode(t *testing.T) {
	svc := NewCurrencyService(newMemCurrencyRepo())

	_, err := svc.CreateCurrency(context.Background(), &CreateCurrencyInput{Name: "US Dollar", Code: "USD", Symbol: "$"})
	require.NoError(t, err)

	_, err = svc.CreateCurrency(context.Background(), &CreateCurrencyInput{Name: "Dollar Again", Code: "USD", Symbol: "$"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestDefaultCurrencyIsProtected(t *testing.T) {
	repo := newMemCurrencyRepo()
	svc := NewCurrencyService(repo)

	usd, err := svc.CreateCurrency(context.Background(), &CreateCurrencyInput{Name: "US Dollar", Code: "USD", Symbol: "$"})
	require.NoError(t, err)
	kes, err := svc.CreateCurrency(context.Background(), &CreateCurrencyInput{Name: "Kenyan Shilling", Code: "KES", Symbol: "KSh"})
	require.NoError(t, err)

	_, err = svc.SetDefaultCurrency(context.Background(), usd.ID)
	require.NoError(t, err)

	_, err = svc.DeactivateCurrency(context.Background(), usd.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	err = svc.DeleteCurrency(context.Background(), usd.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	// Moving the default frees the old one
	_, err = svc.SetDefaultCurrency(context.Background(), kes.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCurrency(context.Background(), usd.ID))
}

func TestUpdateCurrencyKeepsCode(t *testing.T) {
	repo := newMemCurrencyRepo()
	svc := NewCurrencyService(repo)

	usd, err := svc.CreateCurrency(context.Background(), &CreateCurrencyInput{Name: "US Dollar", Code: "USD", Symbol: "$"})
	require.NoError(t, err)

	name := "United States Dollar"
	symbol := "US$"
	updated, err := svc.UpdateCurrency(context.Background(), &UpdateCurrencyInput{ID: usd.ID, Name: &name, Symbol: &symbol})
	require.NoError(t, err)

	assert.Equal(t, "United States Dollar", updated.Name)
	assert.Equal(t, "US$", updated.Symbol)
	assert.Equal(t, "USD", updated.Code)
}

type memCompanyRepo struct {
	repository.CompanyRepository
	companies map[uuid.UUID]*entity.Company
	deleted   []uuid.UUID
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: make(map[uuid.UUID]*entity.Company)}
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	c.ID = uuid.New()
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *memCompanyRepo) GetDefault(_ context.Context) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.IsDefault {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) SetDefault(_ context.Context, id uuid.UUID) error {
	for _, c := range r.companies {
		c.IsDefault = c.ID == id
	}
	return nil
}

func (r *memCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.companies, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestFirstCompanyBecomesDefault(t *testing.T) {
	svc := NewCompanyService(newMemCompanyRepo())

	first, err := svc.CreateCompany(context.Background(), &CompanyInput{Name: "Main Branch"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.CreateCompany(context.Background(), &CompanyInput{Name: "Second Branch"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestDeleteDefaultCompanyBlocked(t *testing.T) {
	repo := newMemCompanyRepo()
	svc := NewCompanyService(repo)

	main, err := svc.CreateCompany(context.Background(), &CompanyInput{Name: "Main Branch"})
	require.NoError(t, err)
	second, err := svc.CreateCompany(context.Background(), &CompanyInput{Name: "Second Branch"})
	require.NoError(t, err)

	err = svc.DeleteCompany(context.Background(), main.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.SetDefaultCompany(context.Background(), second.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCompany(context.Background(), main.ID))
	assert.Len(t, repo.deleted, 1)
}
