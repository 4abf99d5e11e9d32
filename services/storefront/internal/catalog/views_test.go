package catalog

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

func numbered(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: i + 1}
	}
	return out
}

func TestPopular(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(Popular(numbered(10))))
	assert.Equal(t, []int{1, 2}, ids(Popular(numbered(2))))
	assert.Empty(t, Popular(nil))
}

func TestSlideshow(t *testing.T) {
	assert.Equal(t, []int{4, 3, 2}, ids(Slideshow(numbered(4))))
	assert.Equal(t, []int{2, 1}, ids(Slideshow(numbered(2))))
	assert.Empty(t, Slideshow(nil))
}

func TestViews_DoNotMutateInput(t *testing.T) {
	catalog := numbered(8)
	before := slices.Clone(catalog)

	popular := Popular(catalog)
	popular[0].Name = "changed"
	Slideshow(catalog)

	assert.Equal(t, before, catalog)
}

func TestCheckoutRows(t *testing.T) {
	catalog := numbered(3)
	items := []domain.CheckoutLineItem{
		{ProductID: 3, Quantity: 2, Total: decimal.NewFromInt(20)},
		{ProductID: 99, Quantity: 1, Total: decimal.NewFromInt(5)},
		{ProductID: 1, Quantity: 1, Total: decimal.NewFromInt(7)},
	}

	rows := CheckoutRows(catalog, items)

	assert.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Product.ID)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, "20", rows[0].Total.String())
	assert.Equal(t, 1, rows[1].Product.ID)
}

func TestCheckoutRows_FirstMatchWins(t *testing.T) {
	catalog := []domain.Product{{ID: 1, Name: "first"}, {ID: 1, Name: "second"}}

	rows := CheckoutRows(catalog, []domain.CheckoutLineItem{{ProductID: 1, Quantity: 1}})

	assert.Equal(t, "first", rows[0].Product.Name)
}

func TestCheckoutRows_NoItems(t *testing.T) {
	assert.Empty(t, CheckoutRows(numbered(3), nil))
}
