package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"20", "$20.00"},
		{"12.5", "$12.50"},
		{"19.999", "$20.00"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parsing %q: %v", tc.amount, err)
		}
		if got := Price(amount); got != tc.want {
			t.Fatalf("Price(%s): expected %s, got %s", tc.amount, tc.want, got)
		}
	}
}

func TestPricePtrNil(t *testing.T) {
	t.Parallel()

	if got := PricePtr(nil); got != "Price not available" {
		t.Fatalf("unexpected nil rendering: %s", got)
	}
	amount := decimal.NewFromInt(3)
	if got := PricePtr(&amount); got != "$3.00" {
		t.Fatalf("unexpected rendering: %s", got)
	}
}
