package cart

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
)

var (
	// ErrInsufficientStock is returned when adding a line would exceed the
	// product's available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrItemNotFound is returned when the product is not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
	// ErrOutOfStock is returned when adding a product with zero stock.
	ErrOutOfStock = errors.New("product out of stock")
)

// Item is a single cart line. UnitPrice and Subtotal are in cents.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Stock     int       `json:"stock"`
}

// Subtotal returns the line total in cents.
func (i *Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Cart accumulates lines before checkout. Quantities are bounded by the
// stock recorded at the time each product was added; the database check at
// checkout remains authoritative.
type Cart struct {
	items map[uuid.UUID]*Item
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{items: make(map[uuid.UUID]*Item)}
}

// Add puts one unit of the product in the cart, or increments the existing
// line. Adding past the available stock fails and leaves the cart unchanged.
func (c *Cart) Add(product *entity.Product) error {
	if product.Stock <= 0 {
		return ErrOutOfStock
	}

	if item, ok := c.items[product.ID]; ok {
		if item.Quantity+1 > product.Stock {
			return ErrInsufficientStock
		}
		item.Quantity++
		item.Stock = product.Stock
		return nil
	}

	c.items[product.ID] = &Item{
		ProductID: product.ID,
		Name:      product.Name,
		Code:      product.Code,
		UnitPrice: product.SellingPrice,
		Quantity:  1,
		Stock:     product.Stock,
	}
	return nil
}

// AddQuantity adds n units at once, subject to the same stock bound.
func (c *Cart) AddQuantity(product *entity.Product, n int) error {
	if n <= 0 {
		return nil
	}

	current := 0
	if item, ok := c.items[product.ID]; ok {
		current = item.Quantity
	}
	if current+n > product.Stock {
		return ErrInsufficientStock
	}
	for i := 0; i < n; i++ {
		if err := c.Add(product); err != nil {
			return err
		}
	}
	return nil
}

// Decrease removes one unit from the line. The line disappears when the
// quantity reaches zero.
func (c *Cart) Decrease(productID uuid.UUID) error {
	item, ok := c.items[productID]
	if !ok {
		return ErrItemNotFound
	}

	item.Quantity--
	if item.Quantity <= 0 {
		delete(c.items, productID)
	}
	return nil
}

// Remove drops the line entirely regardless of quantity.
func (c *Cart) Remove(productID uuid.UUID) error {
	if _, ok := c.items[productID]; !ok {
		return ErrItemNotFound
	}
	delete(c.items, productID)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = make(map[uuid.UUID]*Item)
}

// Total returns the cart total in cents.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// TotalItems returns the number of units across all lines.
func (c *Cart) TotalItems() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Quantity returns the quantity of a product in the cart, 0 if absent.
func (c *Cart) Quantity(productID uuid.UUID) int {
	if item, ok := c.items[productID]; ok {
		return item.Quantity
	}
	return 0
}

// Items returns the cart lines ordered by product name for stable output.
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}
