package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Product is one catalog entry as served by the catalog API.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	AffiliateLink string   `json:"affiliateLink"`
	IsFlash       bool     `json:"isFlash,omitempty"`
}

var ErrInvalidProduct = errors.New("invalid product")

// Validate checks the fields the storefront cannot render without.
// Prices are deliberately left unchecked.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: %s: missing name", ErrInvalidProduct, p.ID)
	}
	return nil
}

// Discount is round((1 - price/originalPrice) * 100) when the original
// price exceeds the current one, and 0 otherwise.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((1 - p.Price / *p.OriginalPrice) * 100))
}

// HasOriginalPrice reports whether a reference price should be shown.
func (p Product) HasOriginalPrice() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice != 0
}

// FormatPrice renders a price the way the page shows it: "$40", "$12.5".
func FormatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func ValidateProducts(products []Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
