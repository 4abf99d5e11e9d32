// Package render places storefront fragments into HTML page documents.
// Containers are located by element id.
package render

import "html/template"

// Fragment is a trusted piece of rendered HTML.
type Fragment = template.HTML

// Element ids every page template may carry. A page without a container
// simply skips the view that renders into it.
const (
	PopularContainer  = "popular-products"
	PopularSkeletons  = "popular-products-skeletons"
	CatalogContainer  = "allProducts"
	CatalogSkeletons  = "allProductsSkeletons"
	FilterOptions     = "filterOptions"
	SlideContainer    = "productSlide"
	SlideSkeletons    = "productImageSlideShow"
	CheckoutContainer = "checkOutItems"
	CheckoutSkeletons = "checkoutSkeletons"
	CheckoutTotal     = "checkoutTotal"
	DetailContainer   = "productDetails"
	DetailSkeletons   = "productDetailsSkeletons"
	CartBadge         = "cartBadge"

	PriceFromInput = "price_from"
	PriceToInput   = "price_to"
	InStockInput   = "in_stock"
	OnSaleInput    = "on_sale"
	SearchInput    = "search"
	SortInput      = "sort"
)

// Renderer is the view surface the storefront writes to. Implementations
// must be safe for concurrent use; calls naming an absent element are
// no-ops.
type Renderer interface {
	// Has reports whether an element with the id exists.
	Has(id string) bool
	// RenderList appends items to the container in order.
	RenderList(container string, items []Fragment)
	// ShowEmptyState appends the "no products found" marker to the container.
	ShowEmptyState(container string)
	// Hide sets the element's display to none.
	Hide(id string)
	// Show sets the element's display to block.
	Show(id string)
	// SetValue sets the current value of a form control.
	SetValue(id, value string)
	// SetText replaces the text content of the element.
	SetText(id, text string)
}
