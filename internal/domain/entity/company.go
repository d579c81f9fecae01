package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a business profile. The default company is the one
// snapshotted into invoices at checkout time.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	TaxPin    *string        `gorm:"size:100" json:"tax_pin,omitempty"`
	Logo      *string        `gorm:"size:255" json:"logo,omitempty"`
	IsDefault bool           `gorm:"default:false;index" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
