// Package pricing exposes the template price calculator.
package pricing

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/cardfolio/internal/card/commerce"
)

// QuoteInput for POST /pricing
type QuoteInput struct {
	Body struct {
		Category      string  `json:"category"                 doc:"Sales category"        enum:"free,premium" example:"premium"`
		OriginalPrice float64 `json:"original_price,omitempty" doc:"Price before discount"                     example:"249"`
		Discount      float64 `json:"discount,omitempty"       doc:"Discount percent"                          example:"20"`
	}
}

// Quote is a computed price. Out-of-range inputs are clamped.
type Quote struct {
	Category             string  `json:"category"                         example:"premium"`
	IsPremium            bool    `json:"is_premium"`
	OriginalPrice        float64 `json:"original_price"                   example:"249"`
	Discount             float64 `json:"discount"                         example:"20"`
	Price                float64 `json:"price"                            example:"199.2"`
	Display              string  `json:"display"                          example:"₱199.20"`
	OriginalPriceDisplay string  `json:"original_price_display,omitempty" example:"₱249.00"`
}

// QuoteOutput for POST /pricing
type QuoteOutput struct {
	Body Quote
}

// Register wires the pricing route.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "quote-price",
		Method:      http.MethodPost,
		Path:        "/pricing",
		Summary:     "Compute a template price",
		Description: "Applies the discount to the original price. Free templates always cost zero; negative prices and discounts outside 0 to 100 are clamped.",
		Tags:        []string{"Pricing"},
	}, func(_ context.Context, input *QuoteInput) (*QuoteOutput, error) {
		category, err := commerce.ParseCategory(input.Body.Category)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		p := commerce.NewPricing(category, input.Body.OriginalPrice, input.Body.Discount)
		return &QuoteOutput{Body: Quote{
			Category:             string(p.Category()),
			IsPremium:            p.Category().IsPremium(),
			OriginalPrice:        p.OriginalPrice(),
			Discount:             p.Discount(),
			Price:                p.Price(),
			Display:              p.Display(),
			OriginalPriceDisplay: p.DisplayOriginal(),
		}}, nil
	})
}
