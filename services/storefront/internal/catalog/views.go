package catalog

import "github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"

const (
	// PopularCount is the number of products on the popular shelf.
	PopularCount = 6
	// SlideshowCount is the number of slides shown.
	SlideshowCount = 3
)

// Popular returns the first PopularCount products in catalog order.
func Popular(products []domain.Product) []domain.Product {
	return head(products, PopularCount)
}

// Slideshow returns up to SlideshowCount products taken from the end of the
// catalog, last product first.
func Slideshow(products []domain.Product) []domain.Product {
	n := min(len(products), SlideshowCount)
	out := make([]domain.Product, 0, n)
	for i := len(products) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, products[i])
	}
	return out
}

// CheckoutRows resolves each line item to the first product with the same
// id, in line-item order. Items without a product are skipped.
func CheckoutRows(products []domain.Product, items []domain.CheckoutLineItem) []domain.CheckoutRow {
	rows := make([]domain.CheckoutRow, 0, len(items))
	for _, item := range items {
		p, ok := Find(products, item.ProductID)
		if !ok {
			continue
		}
		rows = append(rows, domain.CheckoutRow{
			Product:  p,
			Quantity: item.Quantity,
			Total:    item.Total,
		})
	}
	return rows
}

// Find returns the first product with the given id.
func Find(products []domain.Product, id int) (domain.Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return products[i], true
		}
	}
	return domain.Product{}, false
}

func head(products []domain.Product, n int) []domain.Product {
	n = min(len(products), n)
	out := make([]domain.Product, n)
	copy(out, products[:n])
	return out
}
