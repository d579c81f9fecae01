package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
)

func testProduct(name string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		Code:         "PC-" + name,
		SellingPrice: price,
		Stock:        stock,
	}
}

func TestAddBoundedByStock(t *testing.T) {
	c := New()
	ipa := testProduct("IPA", 650, 5)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Add(ipa))
	}
	assert.Equal(t, 5, c.Quantity(ipa.ID))

	// The sixth unit exceeds the available stock
	err := c.Add(ipa)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, c.Quantity(ipa.ID), "failed add must leave the cart unchanged")
}

func TestAddOutOfStock(t *testing.T) {
	c := New()
	gone := testProduct("Gone", 100, 0)

	err := c.Add(gone)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestAddQuantity(t *testing.T) {
	c := New()
	lager := testProduct("Lager", 500, 10)

	require.NoError(t, c.AddQuantity(lager, 4))
	assert.Equal(t, 4, c.Quantity(lager.ID))

	// Adding 7 more would push past the stock of 10
	err := c.AddQuantity(lager, 7)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 4, c.Quantity(lager.ID))

	// Non-positive quantities are a no-op
	require.NoError(t, c.AddQuantity(lager, 0))
	require.NoError(t, c.AddQuantity(lager, -3))
	assert.Equal(t, 4, c.Quantity(lager.ID))
}

func TestDecreaseRemovesLineAtZero(t *testing.T) {
	c := New()
	soda := testProduct("Soda", 150, 3)

	require.NoError(t, c.AddQuantity(soda, 2))
	require.NoError(t, c.Decrease(soda.ID))
	assert.Equal(t, 1, c.Quantity(soda.ID))

	require.NoError(t, c.Decrease(soda.ID))
	assert.Equal(t, 0, c.Quantity(soda.ID))
	assert.True(t, c.IsEmpty())

	err := c.Decrease(soda.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemove(t *testing.T) {
	c := New()
	water := testProduct("Water", 100, 8)

	require.NoError(t, c.AddQuantity(water, 5))
	require.NoError(t, c.Remove(water.ID))
	assert.True(t, c.IsEmpty())

	err := c.Remove(water.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTotals(t *testing.T) {
	c := New()
	ipa := testProduct("IPA", 650, 5)
	stout := testProduct("Stout", 700, 5)

	require.NoError(t, c.AddQuantity(ipa, 2))
	require.NoError(t, c.AddQuantity(stout, 3))

	assert.Equal(t, int64(2*650+3*700), c.Total())
	assert.Equal(t, 5, c.TotalItems())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.TotalItems())
}

func TestItemsSortedByName(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(testProduct("Zebra", 100, 1)))
	require.NoError(t, c.Add(testProduct("Apple", 100, 1)))
	require.NoError(t, c.Add(testProduct("Mango", 100, 1)))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "Mango", items[1].Name)
	assert.Equal(t, "Zebra", items[2].Name)
}

func TestReaddedLineRefreshesStockBound(t *testing.T) {
	c := New()
	ipa := testProduct("IPA", 650, 2)

	require.NoError(t, c.AddQuantity(ipa, 2))
	assert.ErrorIs(t, c.Add(ipa), ErrInsufficientStock)

	// A restock observed on a later fetch widens the bound
	ipa.Stock = 3
	require.NoError(t, c.Add(ipa))
	assert.Equal(t, 3, c.Quantity(ipa.ID))
}
