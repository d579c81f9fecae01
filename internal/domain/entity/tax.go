package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tax represents a configured tax rate. At most one tax is active at a time;
// the active tax drives the invoice breakdown at checkout.
type Tax struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Rate      float64        `gorm:"not null" json:"rate"` // Percentage, e.g. 16 for 16%
	Inclusive bool           `gorm:"default:true" json:"inclusive"`
	IsActive  bool           `gorm:"default:false;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax
func (t *Tax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tax model
func (Tax) TableName() string {
	return "taxes"
}

// Breakdown splits a sale total (in cents) into subtotal and tax amount.
// For an inclusive tax the total already carries the tax, so the tax portion
// is extracted; for an exclusive tax the subtotal is the sale total and the
// tax is added on top.
func (t *Tax) Breakdown(total int64) (subTotal, taxAmount, grandTotal int64) {
	if t == nil || t.Rate == 0 {
		return total, 0, total
	}
	if t.Inclusive {
		taxAmount = int64(float64(total) * (t.Rate / (100 + t.Rate)))
		return total - taxAmount, taxAmount, total
	}
	taxAmount = int64(float64(total) * t.Rate / 100)
	return total, taxAmount, total + taxAmount
}
