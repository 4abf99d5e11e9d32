package http

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

// Catalog query parameters.
const (
	paramPriceFrom = "price_from"
	paramPriceTo   = "price_to"
	paramInStock   = "in_stock"
	paramOnSale    = "on_sale"
	paramSearch    = "search"
	paramSortBy    = "sort_by"
)

// Price bounds are plain decimals. Exponent notation and oversized values
// are refused: comparing against a huge exponent costs time per product.
const (
	maxPriceLen      = 32
	maxPriceExponent = 20
)

var errPriceFormat = errors.New("price must be a plain decimal")

// parsePrice parses a price bound such as "10" or "19.99".
func parsePrice(raw string) (decimal.Decimal, error) {
	if len(raw) > maxPriceLen || strings.ContainsAny(raw, "eE") {
		return decimal.Decimal{}, errPriceFormat
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if exp := d.Exponent(); exp > maxPriceExponent || exp < -maxPriceExponent {
		return decimal.Decimal{}, errPriceFormat
	}
	return d, nil
}

// ParseCriteria builds catalog filters from query parameters. Empty values
// leave a filter unset. In strict mode a malformed value is reported as an
// InvalidInput error; otherwise it is ignored.
func ParseCriteria(q url.Values, strict bool) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{paramPriceFrom, &c.PriceFrom},
		{paramPriceTo, &c.PriceTo},
	} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		d, err := parsePrice(raw)
		if err != nil {
			if strict {
				return domain.FilterCriteria{}, apperrors.InvalidInput(fmt.Sprintf("%s must be a plain decimal number", p.name))
			}
			continue
		}
		*p.dst = &d
	}

	for _, p := range []struct {
		name string
		dst  **bool
	}{
		{paramInStock, &c.InStock},
		{paramOnSale, &c.OnSale},
	} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			if strict {
				return domain.FilterCriteria{}, apperrors.InvalidInput(fmt.Sprintf("%s must be true or false", p.name))
			}
			continue
		}
		*p.dst = &b
	}

	c.SearchTerm = strings.TrimSpace(q.Get(paramSearch))
	c.SortBy = domain.SortKey(strings.TrimSpace(q.Get(paramSortBy)))

	return c, nil
}
