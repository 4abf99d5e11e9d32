package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

//go:embed templates/fragments.html
var fragmentFS embed.FS

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"money": func(p domain.Prices, amount decimal.Decimal) string { return p.Format(amount) },
	// Store API descriptions are HTML authored in the shop backend.
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(fragmentFS, "templates/fragments.html"))

// ProductCard renders a catalog tile.
func ProductCard(p domain.Product) (Fragment, error) {
	return execute("product-card", &p)
}

// ProductCards renders a tile per product, in order.
func ProductCards(products []domain.Product) ([]Fragment, error) {
	out := make([]Fragment, 0, len(products))
	for i := range products {
		f, err := execute("product-card", &products[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Slides renders a slideshow image per product, in order.
func Slides(products []domain.Product) ([]Fragment, error) {
	out := make([]Fragment, 0, len(products))
	for i := range products {
		f, err := execute("slide", &products[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ProductDetail renders the full description block of one product.
func ProductDetail(p domain.Product) (Fragment, error) {
	return execute("product-detail", &p)
}

// CheckoutRows renders a checkout line per row, in order.
func CheckoutRows(rows []domain.CheckoutRow) ([]Fragment, error) {
	out := make([]Fragment, 0, len(rows))
	for i := range rows {
		f, err := execute("checkout-row", &rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// NoProductsFound is the empty-state marker of product containers.
func NoProductsFound() Fragment {
	return mustExecute("no-products")
}

// NoCheckoutProducts is the marker shown for an empty or unavailable checkout.
func NoCheckoutProducts() Fragment {
	return mustExecute("no-checkout-products")
}

func execute(name string, data any) (Fragment, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return Fragment(buf.String()), nil
}

func mustExecute(name string) Fragment {
	f, err := execute(name, nil)
	if err != nil {
		panic(err)
	}
	return f
}
