package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// TaxService handles tax configuration. Only one tax can be active at a
// time; the active tax is snapshotted onto invoices at checkout.
type TaxService struct {
	taxRepo repository.TaxRepository
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo repository.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// CreateTaxInput represents the create tax input
type CreateTaxInput struct {
	Name      string
	Rate      float64
	Inclusive bool
}

// CreateTax creates a new tax rate (inactive until activated)
func (s *TaxService) CreateTax(ctx context.Context, input *CreateTaxInput) (*entity.Tax, error) {
	if input.Rate < 0 || input.Rate >= 100 {
		return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
	}

	tax := &entity.Tax{
		Name:      input.Name,
		Rate:      input.Rate,
		Inclusive: input.Inclusive,
	}

	if err := s.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// GetTax retrieves a tax by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}
	return tax, nil
}

// GetActiveTax returns the currently active tax, nil if none
func (s *TaxService) GetActiveTax(ctx context.Context) (*entity.Tax, error) {
	return s.taxRepo.GetActive(ctx)
}

// ListTaxes lists configured taxes
func (s *TaxService) ListTaxes(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Tax], error) {
	taxes, total, err := s.taxRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(taxes, pag), nil
}

// UpdateTaxInput represents the update tax input
type UpdateTaxInput struct {
	ID        uuid.UUID
	Name      *string
	Rate      *float64
	Inclusive *bool
}

// UpdateTax updates a tax rate. Existing invoices keep their snapshot.
func (s *TaxService) UpdateTax(ctx context.Context, input *UpdateTaxInput) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}

	if input.Name != nil {
		tax.Name = *input.Name
	}
	if input.Rate != nil {
		if *input.Rate < 0 || *input.Rate >= 100 {
			return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
		}
		tax.Rate = *input.Rate
	}
	if input.Inclusive != nil {
		tax.Inclusive = *input.Inclusive
	}

	if err := s.taxRepo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// ActivateTax makes a tax the active one, deactivating any other
func (s *TaxService) ActivateTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}

	if err := s.taxRepo.Activate(ctx, id); err != nil {
		return nil, err
	}
	return s.taxRepo.GetByID(ctx, id)
}

// DeactivateTax deactivates a tax. Checkout then runs untaxed.
func (s *TaxService) DeactivateTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}

	if err := s.taxRepo.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.taxRepo.GetByID(ctx, id)
}

// DeleteTax deletes a tax rate
func (s *TaxService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tax == nil {
		return apperror.NewNotFoundError("Tax")
	}
	if tax.IsActive {
		return apperror.NewBadRequestError("Cannot delete the active tax; deactivate it first")
	}

	return s.taxRepo.Delete(ctx, id)
}

// CurrencyService handles currency configuration
type CurrencyService struct {
	currencyRepo repository.CurrencyRepository
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(currencyRepo repository.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// CreateCurrencyInput represents the create currency input
type CreateCurrencyInput struct {
	Name   string
	Code   string
	Symbol string
}

// CreateCurrency creates a new currency
func (s *CurrencyService) CreateCurrency(ctx context.Context, input *CreateCurrencyInput) (*entity.Currency, error) {
	existing, err := s.currencyRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Currency code already exists")
	}

	currency := &entity.Currency{
		Name:   input.Name,
		Code:   input.Code,
		Symbol: input.Symbol,
	}

	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// GetCurrency retrieves a currency by ID
func (s *CurrencyService) GetCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}
	return currency, nil
}

// GetDefaultCurrency returns the default currency, nil if none
func (s *CurrencyService) GetDefaultCurrency(ctx context.Context) (*entity.Currency, error) {
	return s.currencyRepo.GetDefault(ctx)
}

// ListCurrencies lists configured currencies
func (s *CurrencyService) ListCurrencies(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Currency], error) {
	currencies, total, err := s.currencyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(currencies, pag), nil
}

// UpdateCurrencyInput represents the update currency input
type UpdateCurrencyInput struct {
	ID     uuid.UUID
	Name   *string
	Symbol *string
}

// UpdateCurrency updates a currency's display fields. The code is immutable.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, input *UpdateCurrencyInput) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	if input.Name != nil {
		currency.Name = *input.Name
	}
	if input.Symbol != nil {
		currency.Symbol = *input.Symbol
	}

	if err := s.currencyRepo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// ActivateCurrency marks a currency as usable
func (s *CurrencyService) ActivateCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	if err := s.currencyRepo.Activate(ctx, id); err != nil {
		return nil, err
	}
	return s.currencyRepo.GetByID(ctx, id)
}

// DeactivateCurrency marks a currency as unusable. The default currency
// cannot be deactivated.
func (s *CurrencyService) DeactivateCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}
	if currency.IsDefault {
		return nil, apperror.NewBadRequestError("Cannot deactivate the default currency")
	}

	if err := s.currencyRepo.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.currencyRepo.GetByID(ctx, id)
}

// SetDefaultCurrency makes a currency the default one used at checkout
func (s *CurrencyService) SetDefaultCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	if err := s.currencyRepo.SetDefault(ctx, id); err != nil {
		return nil, err
	}
	return s.currencyRepo.GetByID(ctx, id)
}

// DeleteCurrency deletes a currency
func (s *CurrencyService) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if currency == nil {
		return apperror.NewNotFoundError("Currency")
	}
	if currency.IsDefault {
		return apperror.NewBadRequestError("Cannot delete the default currency")
	}

	return s.currencyRepo.Delete(ctx, id)
}

// CompanyService handles company profile configuration
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput carries company profile fields
type CompanyInput struct {
	Name    string
	Address *string
	Phone   *string
	Email   *string
	TaxPin  *string
	Logo    *string
}

// CreateCompany creates a new company profile
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	company := &entity.Company{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		TaxPin:  input.TaxPin,
		Logo:    input.Logo,
	}

	// First company becomes the default automatically
	existing, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		company.IsDefault = true
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// GetDefaultCompany returns the default company profile, nil if none
func (s *CompanyService) GetDefaultCompany(ctx context.Context) (*entity.Company, error) {
	return s.companyRepo.GetDefault(ctx)
}

// ListCompanies lists company profiles
func (s *CompanyService) ListCompanies(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// UpdateCompanyInput represents the update company input
type UpdateCompanyInput struct {
	ID      uuid.UUID
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	TaxPin  *string
	Logo    *string
}

// UpdateCompany updates a company profile. Existing invoices keep their
// snapshot of the old details.
func (s *CompanyService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Email != nil {
		company.Email = input.Email
	}
	if input.TaxPin != nil {
		company.TaxPin = input.TaxPin
	}
	if input.Logo != nil {
		company.Logo = input.Logo
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// SetDefaultCompany makes a company the default invoicing identity
func (s *CompanyService) SetDefaultCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if err := s.companyRepo.SetDefault(ctx, id); err != nil {
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, id)
}

// DeleteCompany deletes a company profile
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	if company.IsDefault {
		return apperror.NewBadRequestError("Cannot delete the default company")
	}

	return s.companyRepo.Delete(ctx, id)
}
