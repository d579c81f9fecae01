package request

import "github.com/google/uuid"

// AddCartItemRequest represents adding a product to a register's cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,gt=0"`
}
