package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/widget/internal/cart"
	"github.com/storefrontlabs/widget/internal/catalog"
	"github.com/storefrontlabs/widget/internal/selection"
)

// CartView is the cart as the presentation layer renders it.
type CartView struct {
	Items        []cart.LineItem `json:"items"`
	ItemCount    int             `json:"itemCount"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
	IsEmpty      bool            `json:"isEmpty"`
}

// Snapshot is the full widget state handed to the view on every change.
type Snapshot struct {
	SessionID string             `json:"sessionId"`
	Selection selection.Snapshot `json:"selection"`
	Cart      CartView           `json:"cart"`
	Related   []catalog.Product  `json:"relatedProducts,omitempty"`
}
