// Package commerce derives template prices from an original price and a
// percentage discount.
package commerce

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Category is the single source of truth for whether a template is sold.
type Category string

const (
	CategoryFree    Category = "free"
	CategoryPremium Category = "premium"
)

// CurrencySymbol prefixes formatted prices.
const CurrencySymbol = "₱"

// FreeLabel is displayed instead of a price for free templates.
const FreeLabel = "Free"

var printer = message.NewPrinter(language.English)

// ParseCategory accepts "free" or "premium" in any case.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryFree, CategoryPremium:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// CategoryOf maps the legacy premium flag to a Category.
func CategoryOf(premium bool) Category {
	if premium {
		return CategoryPremium
	}
	return CategoryFree
}

// IsPremium is the read-only projection of the category.
func (c Category) IsPremium() bool {
	return c == CategoryPremium
}

// ClampDiscount bounds a discount percentage to [0, 100].
func ClampDiscount(d float64) float64 {
	switch {
	case math.IsNaN(d), d < 0:
		return 0
	case d > 100:
		return 100
	default:
		return d
	}
}

// ClampPrice bounds a price to be non-negative and finite.
func ClampPrice(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if math.IsInf(p, 1) {
		return math.MaxFloat64
	}
	return p
}

// ComputePrice returns original less discount percent, at full precision.
// Out-of-range inputs are clamped first.
func ComputePrice(original, discount float64) float64 {
	original = ClampPrice(original)
	discount = ClampDiscount(discount)
	return ClampPrice(original - original*discount/100)
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice renders v with the currency symbol, grouping and two decimals.
func FormatPrice(v float64) string {
	return CurrencySymbol + printer.Sprintf("%.2f", Round2(v))
}

// Pricing edits the pricing fields of one template. Price is derived and can
// only change through the original price, the discount or the category.
type Pricing struct {
	category Category
	original float64
	discount float64
	price    float64
}

// NewPricing returns Pricing with the price derived from its inputs.
func NewPricing(category Category, original, discount float64) Pricing {
	p := Pricing{category: category, original: ClampPrice(original), discount: ClampDiscount(discount)}
	p.recompute()
	return p
}

// SetOriginalPrice changes the original price and recomputes the price.
func (p *Pricing) SetOriginalPrice(v float64) {
	p.original = ClampPrice(v)
	p.recompute()
}

// SetDiscount changes the discount percent and recomputes the price.
func (p *Pricing) SetDiscount(v float64) {
	p.discount = ClampDiscount(v)
	p.recompute()
}

// SetCategory switches the category. Original price and discount are kept
// while a template is free so switching back restores its price.
func (p *Pricing) SetCategory(c Category) {
	p.category = c
	p.recompute()
}

func (p *Pricing) recompute() {
	if !p.category.IsPremium() {
		p.price = 0
		return
	}
	p.price = ComputePrice(p.original, p.discount)
}

func (p Pricing) Category() Category     { return p.category }
func (p Pricing) OriginalPrice() float64 { return p.original }
func (p Pricing) Discount() float64      { return p.discount }

// Price is the effective price. It is zero for free templates.
func (p Pricing) Price() float64 { return p.price }

// Display returns the formatted price, or FreeLabel for free templates.
func (p Pricing) Display() string {
	if !p.category.IsPremium() {
		return FreeLabel
	}
	return FormatPrice(p.price)
}

// DisplayOriginal returns the formatted original price when a discount applies.
func (p Pricing) DisplayOriginal() string {
	if !p.category.IsPremium() || p.discount == 0 {
		return ""
	}
	return FormatPrice(p.original)
}
