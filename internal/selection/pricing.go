package selection

import (
	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/widget/internal/catalog"
)

// PriceDisplay is the resolved price presentation: the price charged plus,
// when the entity is discounted, the original struck-through price.
type PriceDisplay struct {
	Current  decimal.Decimal  `json:"current"`
	Original *decimal.Decimal `json:"original,omitempty"`
}

// Discounted reports whether an original price should be shown struck through.
func (p PriceDisplay) Discounted() bool {
	return p.Original != nil
}

// ResolvePrice applies the display rule at product and variant level. The
// variant takes precedence once selected; the discounted price is always the
// primary one. The unit price charged into the cart is always variant.Price,
// independent of this display resolution.
func ResolvePrice(product *catalog.Product, variant *catalog.Variant) PriceDisplay {
	if variant != nil {
		display := PriceDisplay{Current: variant.Price}
		if variant.OriginalPrice != nil {
			original := *variant.OriginalPrice
			display.Original = &original
		}
		return display
	}

	if product == nil {
		return PriceDisplay{}
	}

	if product.IsOnSale {
		original := product.BasePrice
		return PriceDisplay{Current: product.SalePrice, Original: &original}
	}
	return PriceDisplay{Current: product.BasePrice}
}
