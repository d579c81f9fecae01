package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/application/cart"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
)

// CartService keeps one in-memory cart per register. Carts are transient
// working state: they never touch the database and checkout re-validates
// stock against it regardless of what the cart believed.
type CartService struct {
	mu          sync.Mutex
	carts       map[string]*cart.Cart
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(productRepo repository.ProductRepository) *CartService {
	return &CartService{
		carts:       make(map[string]*cart.Cart),
		productRepo: productRepo,
	}
}

// CartView is the API representation of a register's cart
type CartView struct {
	Register   string      `json:"register"`
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	Total      float64     `json:"total"`
}

func (s *CartService) get(register string) *cart.Cart {
	c, ok := s.carts[register]
	if !ok {
		c = cart.New()
		s.carts[register] = c
	}
	return c
}

func (s *CartService) view(register string, c *cart.Cart) *CartView {
	return &CartView{
		Register:   register,
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		Total:      float64(c.Total()) / 100,
	}
}

// GetCart returns the current state of a register's cart
func (s *CartService) GetCart(register string) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(register, s.get(register))
}

// AddItem adds units of a product to the register's cart, bounded by the
// product's current stock
func (s *CartService) AddItem(ctx context.Context, register string, productID uuid.UUID, quantity int) (*CartView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(register)
	if err := c.AddQuantity(product, quantity); err != nil {
		return nil, mapCartError(err, product.Name)
	}
	return s.view(register, c), nil
}

// DecreaseItem removes one unit of a product from the register's cart
func (s *CartService) DecreaseItem(register string, productID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(register)
	if err := c.Decrease(productID); err != nil {
		return nil, mapCartError(err, "")
	}
	return s.view(register, c), nil
}

// RemoveItem drops a product line from the register's cart
func (s *CartService) RemoveItem(register string, productID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(register)
	if err := c.Remove(productID); err != nil {
		return nil, mapCartError(err, "")
	}
	return s.view(register, c), nil
}

// ClearCart empties the register's cart
func (s *CartService) ClearCart(register string) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(register)
	c.Clear()
	return s.view(register, c)
}

// CheckoutItems snapshots the register's cart as checkout input lines.
// Returns an error if the cart is empty.
func (s *CartService) CheckoutItems(register string) ([]CheckoutItemInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(register)
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("Cannot checkout an empty cart")
	}

	items := c.Items()
	inputs := make([]CheckoutItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return inputs, nil
}

func mapCartError(err error, productName string) error {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		if productName != "" {
			return apperror.NewBadRequestError(productName + " is out of stock")
		}
		return apperror.NewBadRequestError("Product is out of stock")
	case errors.Is(err, cart.ErrInsufficientStock):
		if productName != "" {
			return apperror.NewBadRequestError("Not enough stock for " + productName)
		}
		return apperror.NewBadRequestError("Not enough stock")
	case errors.Is(err, cart.ErrItemNotFound):
		return apperror.NewNotFoundError("Cart item")
	default:
		return err
	}
}
