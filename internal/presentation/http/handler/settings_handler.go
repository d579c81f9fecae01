package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/application/service"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

func listParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// TaxHandler handles tax configuration HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// List handles listing taxes
func (h *TaxHandler) List(c *gin.Context) {
	result, err := h.taxService.ListTaxes(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Taxes retrieved successfully", result)
}

// GetActive handles fetching the tax currently applied at checkout
func (h *TaxHandler) GetActive(c *gin.Context) {
	tax, err := h.taxService.GetActiveTax(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active tax retrieved successfully", tax)
}

// Create handles creating a tax
func (h *TaxHandler) Create(c *gin.Context) {
	var req request.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), &service.CreateTaxInput{
		Name:      req.Name,
		Rate:      req.Rate,
		Inclusive: req.Inclusive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax created successfully", tax)
}

// Update handles updating a tax
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	var req request.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), &service.UpdateTaxInput{
		ID:        id,
		Name:      req.Name,
		Rate:      req.Rate,
		Inclusive: req.Inclusive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax updated successfully", tax)
}

// Activate handles making a tax the one applied at checkout
func (h *TaxHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.ActivateTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax activated successfully", tax)
}

// Deactivate handles deactivating a tax
func (h *TaxHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.DeactivateTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax deactivated successfully", tax)
}

// Delete handles deleting a tax
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CurrencyHandler handles currency configuration HTTP requests
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// List handles listing currencies
func (h *CurrencyHandler) List(c *gin.Context) {
	result, err := h.currencyService.ListCurrencies(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Currencies retrieved successfully", result)
}

// GetDefault handles fetching the currency used for display and invoices
func (h *CurrencyHandler) GetDefault(c *gin.Context) {
	currency, err := h.currencyService.GetDefaultCurrency(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default currency retrieved successfully", currency)
}

// Create handles creating a currency
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req request.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), &service.CreateCurrencyInput{
		Name:   req.Name,
		Code:   req.Code,
		Symbol: req.Symbol,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Currency created successfully", currency)
}

// Update handles updating a currency's name and symbol
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	var req request.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), &service.UpdateCurrencyInput{
		ID:     id,
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency updated successfully", currency)
}

// Activate handles activating a currency
func (h *CurrencyHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	currency, err := h.currencyService.ActivateCurrency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency activated successfully", currency)
}

// Deactivate handles deactivating a currency
func (h *CurrencyHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	currency, err := h.currencyService.DeactivateCurrency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency deactivated successfully", currency)
}

// SetDefault handles making a currency the default
func (h *CurrencyHandler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	currency, err := h.currencyService.SetDefaultCurrency(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default currency updated successfully", currency)
}

// Delete handles deleting a currency
func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CompanyHandler handles company profile HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List handles listing companies
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyService.ListCompanies(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// GetDefault handles fetching the company printed on receipts and invoices
func (h *CompanyHandler) GetDefault(c *gin.Context) {
	company, err := h.companyService.GetDefaultCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default company retrieved successfully", company)
}

// Get handles getting a single company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// Create handles creating a company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), &service.CompanyInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxPin:  req.TaxPin,
		Logo:    req.Logo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// Update handles updating a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	var req request.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), &service.UpdateCompanyInput{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxPin:  req.TaxPin,
		Logo:    req.Logo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// SetDefault handles making a company the default
func (h *CompanyHandler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.SetDefaultCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default company updated successfully", company)
}

// Delete handles deleting a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
