package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
)

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func TestCartServiceAddItem(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	svc := NewCartService(newFakeProductRepo(product))

	view, err := svc.AddItem(context.Background(), "till-1", product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, 13.00, view.Total)

	_, err = svc.AddItem(context.Background(), "till-1", product.ID, 4)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "IPA")

	// the failed add must not have touched the cart
	view = svc.GetCart("till-1")
	assert.Equal(t, 2, view.TotalItems)
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	svc := NewCartService(newFakeProductRepo())

	_, err := svc.AddItem(context.Background(), "till-1", uuid.New(), 1)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartServiceRegistersAreIsolated(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	svc := NewCartService(newFakeProductRepo(product))

	_, err := svc.AddItem(context.Background(), "till-1", product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.GetCart("till-2").TotalItems)
	assert.Equal(t, 3, svc.GetCart("till-1").TotalItems)
}

func TestCartServiceCheckoutItems(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	svc := NewCartService(newFakeProductRepo(product))

	_, err := svc.CheckoutItems("till-1")
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.AddItem(context.Background(), "till-1", product.ID, 2)
	require.NoError(t, err)

	items, err := svc.CheckoutItems("till-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartServiceDecreaseAndClear(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "IPA", SellingPrice: 650, Stock: 5}
	svc := NewCartService(newFakeProductRepo(product))

	_, err := svc.AddItem(context.Background(), "till-1", product.ID, 2)
	require.NoError(t, err)

	view, err := svc.DecreaseItem("till-1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)

	view, err = svc.DecreaseItem("till-1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalItems)

	_, err = svc.AddItem(context.Background(), "till-1", product.ID, 1)
	require.NoError(t, err)
	view = svc.ClearCart("till-1")
	assert.Empty(t, view.Items)
}
