package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Image is a product picture as served by the store API.
type Image struct {
	ID        int    `json:"id"`
	Src       string `json:"src"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Alt       string `json:"alt"`
	Name      string `json:"name,omitempty"`
}

// Prices holds the raw price fields of a product. Amounts are integer
// strings expressed in the currency's minor unit ("1999" with a minor unit
// of 2 means 19.99).
type Prices struct {
	Price             string `json:"price"`
	RegularPrice      string `json:"regular_price"`
	SalePrice         string `json:"sale_price"`
	CurrencyCode      string `json:"currency_code"`
	CurrencySymbol    string `json:"currency_symbol"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
	CurrencyPrefix    string `json:"currency_prefix,omitempty"`
	CurrencySuffix    string `json:"currency_suffix,omitempty"`
}

// Normalized returns Price divided by 10^CurrencyMinorUnit.
func (p Prices) Normalized() (decimal.Decimal, error) {
	return normalize(p.Price, p.CurrencyMinorUnit)
}

// NormalizedRegular returns RegularPrice in major units.
func (p Prices) NormalizedRegular() (decimal.Decimal, error) {
	return normalize(p.RegularPrice, p.CurrencyMinorUnit)
}

// Format renders amount with the currency prefix and suffix, falling back to
// the currency symbol when the upstream sends no prefix.
func (p Prices) Format(amount decimal.Decimal) string {
	prefix := p.CurrencyPrefix
	if prefix == "" && p.CurrencySuffix == "" {
		prefix = p.CurrencySymbol
	}
	return prefix + amount.StringFixed(int32(p.CurrencyMinorUnit)) + p.CurrencySuffix
}

func normalize(raw string, minorUnit int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-int32(minorUnit)), nil
}

// Product is a catalog entry. Products are never modified after they are
// fetched.
type Product struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Permalink        string  `json:"permalink"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description,omitempty"`
	Images           []Image `json:"images"`
	AverageRating    string  `json:"average_rating"`
	Prices           Prices  `json:"prices"`
	IsInStock        bool    `json:"is_in_stock"`
	OnSale           bool    `json:"on_sale"`
}

// Price returns the normalized price and whether it could be parsed.
func (p *Product) Price() (decimal.Decimal, bool) {
	d, err := p.Prices.Normalized()
	return d, err == nil
}

// Rating returns the parsed average rating and whether it could be parsed.
func (p *Product) Rating() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(p.AverageRating)
	return d, err == nil
}

// DisplayPrice is the formatted current price, or the raw value when it
// cannot be parsed.
func (p *Product) DisplayPrice() string {
	d, ok := p.Price()
	if !ok {
		return p.Prices.Price
	}
	return p.Prices.Format(d)
}

// DisplayRegularPrice is the formatted regular price, empty when unknown.
func (p *Product) DisplayRegularPrice() string {
	d, err := p.Prices.NormalizedRegular()
	if err != nil {
		return ""
	}
	return p.Prices.Format(d)
}

// MainImage returns the first image, or the zero Image when there is none.
func (p *Product) MainImage() Image {
	if len(p.Images) == 0 {
		return Image{}
	}
	return p.Images[0]
}

// IDString returns the product id in decimal form.
func (p *Product) IDString() string {
	return strconv.Itoa(p.ID)
}
