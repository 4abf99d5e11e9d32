// Package catalog holds the pure product pipelines behind every storefront
// view. Nothing here performs I/O or mutates its input slices.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// FilterAndSort returns the products satisfying every criterion, ordered by
// criteria.SortBy. The result is a new slice; products is left untouched.
//
// Products whose price cannot be parsed never satisfy a price bound and are
// placed after all priced products when sorting by price. The same holds for
// unparseable ratings.
func FilterAndSort(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	var search *LikePattern
	if criteria.SearchTerm != "" {
		search = Contains(criteria.SearchTerm)
	}

	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		if !matches(&products[i], &criteria, search) {
			continue
		}
		matched = append(matched, products[i])
	}

	sortProducts(matched, criteria.SortBy)
	return matched
}

// matches checks a product against the filters in their fixed order.
func matches(p *domain.Product, c *domain.FilterCriteria, search *LikePattern) bool {
	if c.PriceFrom != nil || c.PriceTo != nil {
		price, ok := p.Price()
		if !ok {
			return false
		}
		if c.PriceFrom != nil && price.LessThan(*c.PriceFrom) {
			return false
		}
		if c.PriceTo != nil && price.GreaterThan(*c.PriceTo) {
			return false
		}
	}

	if c.InStock != nil && p.IsInStock != *c.InStock {
		return false
	}

	if c.OnSale != nil && p.OnSale != *c.OnSale {
		return false
	}

	if search != nil && !search.Match(p.Name) {
		return false
	}

	return true
}

type sortKey struct {
	value decimal.Decimal
	ok    bool
}

// sortProducts orders products in place. Unknown keys keep the input order.
func sortProducts(products []domain.Product, by domain.SortKey) {
	var keyOf func(*domain.Product) (decimal.Decimal, bool)
	desc := false

	switch by {
	case domain.SortByRating:
		keyOf = (*domain.Product).Rating
	case domain.SortByPriceAsc:
		keyOf = (*domain.Product).Price
	case domain.SortByPriceDesc:
		keyOf = (*domain.Product).Price
		desc = true
	default:
		return
	}

	keys := make([]sortKey, len(products))
	for i := range products {
		keys[i].value, keys[i].ok = keyOf(&products[i])
	}

	sort.Stable(&byKey{products: products, keys: keys, desc: desc})
}

// byKey sorts products and their precomputed keys together.
type byKey struct {
	products []domain.Product
	keys     []sortKey
	desc     bool
}

func (s *byKey) Len() int { return len(s.products) }

func (s *byKey) Swap(i, j int) {
	s.products[i], s.products[j] = s.products[j], s.products[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

func (s *byKey) Less(i, j int) bool {
	a, b := s.keys[i], s.keys[j]
	if a.ok != b.ok {
		return a.ok
	}
	if !a.ok {
		return false
	}
	if s.desc {
		return b.value.LessThan(a.value)
	}
	return a.value.LessThan(b.value)
}
