package request

import (
	"github.com/google/uuid"

	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
)

// CheckoutItemRequest is a single line in a checkout request
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest represents a checkout request. Items may be omitted
// when a register is given, in which case the register's cart is used.
type CheckoutRequest struct {
	Register      *string               `json:"register"`
	CustomerID    *uuid.UUID            `json:"customer_id"`
	PaymentMethod enum.PaymentMethod    `json:"payment_method"`
	PaymentAmount float64               `json:"payment_amount" binding:"required,gt=0"`
	Items         []CheckoutItemRequest `json:"items"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	UserID     string `form:"user_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}
