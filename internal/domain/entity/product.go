package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. Stock held here is the
// authoritative count; checkout decrements it atomically.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Slug         string         `gorm:"size:255;unique;not null" json:"slug"`
	Code         string         `gorm:"size:100;unique;not null" json:"code"`
	Stock        int            `gorm:"default:0" json:"stock"`
	StockAlert   int            `gorm:"default:0" json:"stock_alert"`
	SellingPrice int64          `gorm:"default:0" json:"selling_price"` // Stored in cents
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	ProductImage *string        `gorm:"size:255" json:"product_image,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price * 100)
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Code         string     `json:"code"`
	Stock        int        `json:"stock"`
	StockAlert   int        `json:"stock_alert"`
	SellingPrice float64    `json:"selling_price"` // Decimal value for JSON
	Description  *string    `json:"description,omitempty"`
	ProductImage *string    `json:"product_image,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Category     *Category  `json:"category,omitempty"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:           p.ID,
		UserID:       p.UserID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Slug:         p.Slug,
		Code:         p.Code,
		Stock:        p.Stock,
		StockAlert:   p.StockAlert,
		SellingPrice: p.GetSellingPriceDecimal(),
		Description:  p.Description,
		ProductImage: p.ProductImage,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Category:     p.Category,
	})
}

// Category represents an optional product type tag
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
