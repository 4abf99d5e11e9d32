package domain

import "github.com/shopspring/decimal"

// CheckoutLineItem is one stored checkout entry of a shopper. Total is the
// line price in major units, fixed when the item was added.
type CheckoutLineItem struct {
	ProductID int             `json:"id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CheckoutRow is a line item joined to its catalog product.
type CheckoutRow struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Checkout is the checkout summary shown to a shopper.
type Checkout struct {
	ShopperID string          `json:"shopper_id"`
	Rows      []CheckoutRow   `json:"rows"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewCheckout builds a summary from resolved rows. Rows without a matching
// product are expected to be dropped by the caller already.
func NewCheckout(shopperID string, rows []CheckoutRow) *Checkout {
	c := &Checkout{ShopperID: shopperID, Rows: rows, Total: decimal.Zero}
	if c.Rows == nil {
		c.Rows = []CheckoutRow{}
	}
	for _, r := range rows {
		c.ItemCount += r.Quantity
		c.Total = c.Total.Add(r.Total)
	}
	return c
}

// ItemCount returns the sum of quantities over items.
func ItemCount(items []CheckoutLineItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// TotalAmount returns the sum of line totals over items.
func TotalAmount(items []CheckoutLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	return total
}

// FindItemIndex returns the index of the item for productID, or -1.
func FindItemIndex(items []CheckoutLineItem, productID int) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
