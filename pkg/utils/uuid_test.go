package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cold Brew Coffee", "cold-brew-coffee"},
		{"  Spaced  Out  ", "spaced-out"},
		{"50% Off! (Today)", "50-off-today"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER Case", "upper-case"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGenerateReceiptNo(t *testing.T) {
	a := GenerateReceiptNo()
	b := GenerateReceiptNo()

	assert.True(t, strings.HasPrefix(a, "RCP-"))
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestGenerateInvoiceNo(t *testing.T) {
	n := GenerateInvoiceNo()
	assert.True(t, strings.HasPrefix(n, "INV-"))
	assert.Len(t, n, 12)
}

func TestGenerateProductCode(t *testing.T) {
	c := GenerateProductCode()
	assert.True(t, strings.HasPrefix(c, "PROD-"))
	assert.Len(t, c, 13)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
