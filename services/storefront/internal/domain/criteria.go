package domain

import "github.com/shopspring/decimal"

// SortKey selects the ordering of a filtered catalog.
type SortKey string

const (
	SortByRating    SortKey = "average_rating"
	SortByPriceAsc  SortKey = "lowhigh"
	SortByPriceDesc SortKey = "highlow"
)

// Known reports whether k is one of the supported orderings. Unknown keys
// are accepted everywhere and leave the order untouched.
func (k SortKey) Known() bool {
	switch k {
	case SortByRating, SortByPriceAsc, SortByPriceDesc:
		return true
	}
	return false
}

// FilterCriteria is the set of catalog filters parsed from a request.
// A nil pointer or empty string means the filter is not applied.
type FilterCriteria struct {
	PriceFrom  *decimal.Decimal `json:"price_from,omitempty"`
	PriceTo    *decimal.Decimal `json:"price_to,omitempty"`
	InStock    *bool            `json:"in_stock,omitempty"`
	OnSale     *bool            `json:"on_sale,omitempty"`
	SearchTerm string           `json:"search,omitempty"`
	SortBy     SortKey          `json:"sort_by,omitempty"`
}

// IsZero reports whether no filter and no ordering is set.
func (c FilterCriteria) IsZero() bool {
	return c.PriceFrom == nil && c.PriceTo == nil && c.InStock == nil &&
		c.OnSale == nil && c.SearchTerm == "" && c.SortBy == ""
}
