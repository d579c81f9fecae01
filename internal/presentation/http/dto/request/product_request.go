package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         string     `json:"name" binding:"required,min=2,max=255"`
	Code         string     `json:"code" binding:"omitempty,max=100"`
	Stock        int        `json:"stock" binding:"min=0"`
	StockAlert   int        `json:"stock_alert" binding:"min=0"`
	SellingPrice float64    `json:"selling_price" binding:"min=0"`
	Description  *string    `json:"description"`
	ProductImage *string    `json:"product_image"`
}

// UpdateProductRequest represents a product update request. Stock is
// deliberately absent; it only moves through restock and checkout.
type UpdateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Code         *string    `json:"code" binding:"omitempty,min=1,max=100"`
	StockAlert   *int       `json:"stock_alert" binding:"omitempty,min=0"`
	SellingPrice *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Description  *string    `json:"description"`
	ProductImage *string    `json:"product_image"`
}

// RestockProductRequest represents a stock replenishment request
type RestockProductRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}
