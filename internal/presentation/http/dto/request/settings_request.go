package request

// CreateTaxRequest represents a tax creation request
type CreateTaxRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	Rate      float64 `json:"rate" binding:"min=0,lt=100"`
	Inclusive bool    `json:"inclusive"`
}

// UpdateTaxRequest represents a tax update request
type UpdateTaxRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Rate      *float64 `json:"rate" binding:"omitempty,min=0,lt=100"`
	Inclusive *bool    `json:"inclusive"`
}

// CreateCurrencyRequest represents a currency creation request
type CreateCurrencyRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Code   string `json:"code" binding:"required,min=2,max=10"`
	Symbol string `json:"symbol" binding:"required,min=1,max=10"`
}

// UpdateCurrencyRequest represents a currency update request. The code
// is immutable once created.
type UpdateCurrencyRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=255"`
	Symbol *string `json:"symbol" binding:"omitempty,min=1,max=10"`
}

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	TaxPin  *string `json:"tax_pin" binding:"omitempty,max=100"`
	Logo    *string `json:"logo"`
}

// UpdateCompanyRequest represents a company update request
type UpdateCompanyRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	TaxPin  *string `json:"tax_pin" binding:"omitempty,max=100"`
	Logo    *string `json:"logo"`
}
