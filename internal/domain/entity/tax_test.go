package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxBreakdownInclusive(t *testing.T) {
	vat := &Tax{Name: "VAT", Rate: 16, Inclusive: true}

	subTotal, taxAmount, grandTotal := vat.Breakdown(11600)

	// Inclusive tax is extracted from the total, never added on top
	assert.Equal(t, int64(11600), grandTotal)
	assert.Equal(t, int64(1600), taxAmount)
	assert.Equal(t, int64(10000), subTotal)
	assert.Equal(t, grandTotal, subTotal+taxAmount)
}

func TestTaxBreakdownExclusive(t *testing.T) {
	levy := &Tax{Name: "Levy", Rate: 10, Inclusive: false}

	subTotal, taxAmount, grandTotal := levy.Breakdown(10000)

	assert.Equal(t, int64(10000), subTotal)
	assert.Equal(t, int64(1000), taxAmount)
	assert.Equal(t, int64(11000), grandTotal)
}

func TestTaxBreakdownZeroRate(t *testing.T) {
	none := &Tax{Name: "No Tax", Rate: 0}

	subTotal, taxAmount, grandTotal := none.Breakdown(5000)

	assert.Equal(t, int64(5000), subTotal)
	assert.Equal(t, int64(0), taxAmount)
	assert.Equal(t, int64(5000), grandTotal)
}

func TestTaxBreakdownNilReceiver(t *testing.T) {
	var none *Tax

	subTotal, taxAmount, grandTotal := none.Breakdown(5000)

	assert.Equal(t, int64(5000), subTotal)
	assert.Equal(t, int64(0), taxAmount)
	assert.Equal(t, int64(5000), grandTotal)
}

func TestTaxBreakdownZeroTotal(t *testing.T) {
	vat := &Tax{Name: "VAT", Rate: 16, Inclusive: true}

	subTotal, taxAmount, grandTotal := vat.Breakdown(0)

	assert.Equal(t, int64(0), subTotal)
	assert.Equal(t, int64(0), taxAmount)
	assert.Equal(t, int64(0), grandTotal)
}
