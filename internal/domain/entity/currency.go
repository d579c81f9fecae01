package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Currency represents a configured currency. Exactly one currency is the
// default; its code and symbol are snapshotted into invoices.
type Currency struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Code      string         `gorm:"size:10;unique;not null" json:"code"`
	Symbol    string         `gorm:"size:10;not null" json:"symbol"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	IsDefault bool           `gorm:"default:false;index" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new currency
func (c *Currency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Currency model
func (Currency) TableName() string {
	return "currencies"
}
