package cart

import "github.com/shopspring/decimal"

// LineItem is one row in the cart: a unique product+variant pair, its
// quantity, and the snapshot of display fields taken at add time. The JSON
// field names match the persisted cart payload.
type LineItem struct {
	ProductID    int64           `json:"productId"`
	VariantID    string          `json:"variantId"`
	Title        string          `json:"title"`
	VariantLabel string          `json:"variantLabel"`
	VariantName  string          `json:"variant"`
	UnitPrice    decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Image        *string         `json:"image,omitempty"`
	SKU          string          `json:"sku"`
}
