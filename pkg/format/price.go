package format

import "github.com/shopspring/decimal"

// Price renders a decimal amount as a display string, e.g. "$12.50".
func Price(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// PricePtr renders an optional amount; nil yields the unavailable marker.
func PricePtr(amount *decimal.Decimal) string {
	if amount == nil {
		return "Price not available"
	}
	return Price(*amount)
}
