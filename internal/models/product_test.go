package models

import (
	"errors"
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestProduct_Discount(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		original *float64
		want     int
	}{
		{"watch example", 40, ptr(100), 60},
		{"rounds half up", 299, ptr(549), 46},
		{"rounds down", 249, ptr(399), 38},
		{"equal prices", 50, ptr(50), 0},
		{"original below price", 80, ptr(50), 0},
		{"missing original", 80, nil, 0},
		{"tiny discount rounds to zero", 99.8, ptr(100), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{ID: "1", Name: "x", Price: tt.price, OriginalPrice: tt.original}
			if got := p.Discount(); got != tt.want {
				t.Errorf("Discount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProduct_DiscountMatchesFormula(t *testing.T) {
	for price := 1.0; price < 200; price += 7 {
		original := 200.0
		p := Product{ID: "1", Name: "x", Price: price, OriginalPrice: &original}
		want := int(math.Round((1 - price/original) * 100))
		if got := p.Discount(); got != want {
			t.Errorf("price %v: Discount() = %d, want %d", price, got, want)
		}
	}
}

func TestProduct_Validate(t *testing.T) {
	if err := (Product{ID: "1", Name: "Watch", Price: -5}).Validate(); err != nil {
		t.Errorf("negative price should not be rejected: %v", err)
	}

	err := Product{Name: "Watch"}.Validate()
	if !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for missing id, got %v", err)
	}

	err = ValidateProducts([]Product{{ID: "1", Name: "a"}, {ID: "2"}})
	if !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for missing name, got %v", err)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := map[float64]string{
		40:      "$40",
		100:     "$100",
		12.5:    "$12.5",
		0:       "$0",
		1299.99: "$1299.99",
	}
	for in, want := range tests {
		if got := FormatPrice(in); got != want {
			t.Errorf("FormatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestProduct_HasOriginalPrice(t *testing.T) {
	if (Product{}).HasOriginalPrice() {
		t.Error("nil original price should not be shown")
	}
	if (Product{OriginalPrice: ptr(0)}).HasOriginalPrice() {
		t.Error("zero original price should not be shown")
	}
	if !(Product{OriginalPrice: ptr(10)}).HasOriginalPrice() {
		t.Error("original price should be shown")
	}
}
