package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed checkout. It is created exactly once and is
// immutable through the API afterwards, except for cancellation.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ReceiptNo     string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	SaleDate      time.Time          `gorm:"not null" json:"sale_date"`
	Status        enum.SaleStatus    `gorm:"default:0" json:"status"`
	TotalItems    int                `gorm:"default:0" json:"total_items"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentAmount int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Change        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Invoice  *Invoice   `gorm:"foreignKey:SaleID" json:"invoice,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total         float64 `json:"total"`
		PaymentAmount float64 `json:"payment_amount"`
		Change        float64 `json:"change"`
	}{
		Alias:         Alias(s),
		Total:         float64(s.Total) / 100,
		PaymentAmount: float64(s.PaymentAmount) / 100,
		Change:        float64(s.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// GetChangeDecimal returns the change as a decimal
func (s *Sale) GetChangeDecimal() float64 {
	return float64(s.Change) / 100
}

// SaleItem represents a line item in a sale. Unit price is snapshotted at
// checkout time so later product edits do not rewrite history.
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
