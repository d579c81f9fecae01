package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is a read-only snapshot derived from a Sale at checkout time.
// The tax breakdown and company details are captured as they were when the
// sale happened, so later configuration changes do not rewrite invoices.
type Invoice struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	InvoiceNo string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	SubTotal  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxRate   float64        `gorm:"default:0" json:"tax_rate"`
	TaxAmount int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxName   string         `gorm:"size:100" json:"tax_name"`

	// Company snapshot
	CompanyName    string  `gorm:"size:255" json:"company_name"`
	CompanyAddress *string `gorm:"type:text" json:"company_address,omitempty"`
	CompanyPhone   *string `gorm:"size:50" json:"company_phone,omitempty"`
	CompanyEmail   *string `gorm:"size:255" json:"company_email,omitempty"`
	CompanyTaxPin  *string `gorm:"size:100" json:"company_tax_pin,omitempty"`

	// Currency snapshot
	CurrencyCode   string `gorm:"size:10" json:"currency_code"`
	CurrencySymbol string `gorm:"size:10" json:"currency_symbol"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		TaxAmount float64 `json:"tax_amount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		SubTotal:  float64(i.SubTotal) / 100,
		TaxAmount: float64(i.TaxAmount) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
