package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/application/service"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/response"
)

// CartHandler handles register cart HTTP requests. Carts are working
// state for a till; nothing here touches stock until checkout.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles fetching a register's current cart
func (h *CartHandler) Get(c *gin.Context) {
	register := c.Param("register")
	if register == "" {
		response.BadRequest(c, "Register is required")
		return
	}

	response.OK(c, "Cart retrieved successfully", h.cartService.GetCart(register))
}

// AddItem handles adding a product to a register's cart
func (h *CartHandler) AddItem(c *gin.Context) {
	register := c.Param("register")
	if register == "" {
		response.BadRequest(c, "Register is required")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), register, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", view)
}

// DecreaseItem handles decrementing a line's quantity by one
func (h *CartHandler) DecreaseItem(c *gin.Context) {
	register := c.Param("register")
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.cartService.DecreaseItem(register, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item quantity decreased", view)
}

// RemoveItem handles removing a line from the cart entirely
func (h *CartHandler) RemoveItem(c *gin.Context) {
	register := c.Param("register")
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.cartService.RemoveItem(register, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart", view)
}

// Clear handles emptying a register's cart
func (h *CartHandler) Clear(c *gin.Context) {
	register := c.Param("register")
	if register == "" {
		response.BadRequest(c, "Register is required")
		return
	}

	response.OK(c, "Cart cleared", h.cartService.ClearCart(register))
}
