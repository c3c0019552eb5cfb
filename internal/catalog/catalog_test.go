package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.Len(t, products, 6)

	first := products[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Premium Wireless Headphones", first.Name)
	assert.Equal(t, "$299.99", first.Price)
	assert.InDelta(t, 4.8, first.Rating, 1e-9)

	price, err := first.PriceValue()
	require.NoError(t, err)
	assert.Equal(t, "299.99", price.String())
}

func TestProductsReturnsCopy(t *testing.T) {
	a := MustProducts()
	a[0].Name = "changed"

	b := MustProducts()
	assert.Equal(t, "Premium Wireless Headphones", b[0].Name)
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := Parse([]byte("products:\n  - id: 1\n    price: \"$1\"\n"))
	assert.ErrorContains(t, err, "has no name")

	_, err = Parse([]byte("products:\n  - id: 1\n    name: Lamp\n    price: cheap\n"))
	assert.ErrorContains(t, err, "invalid price")

	_, err = Parse([]byte("products: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse catalog")
}
