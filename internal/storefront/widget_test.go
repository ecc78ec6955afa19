package storefront

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlabs/widget/internal/cart"
	"github.com/storefrontlabs/widget/internal/catalog"
	pkgerrors "github.com/storefrontlabs/widget/pkg/errors"
	"github.com/storefrontlabs/widget/pkg/storage"
)

type staticSource struct {
	products []catalog.Product
	err      error
}

func (s *staticSource) Fetch(ctx context.Context) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func feedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:           1,
			Title:        "Classic Tee",
			BasePrice:    decimal.NewFromInt(20),
			VariantLabel: "Size",
			Variants: []catalog.Variant{
				{ID: "s", Name: "Small", Stock: 2, Price: decimal.NewFromInt(20), SKU: "TEE-S"},
			},
		},
		{
			ID:           2,
			Title:        "Hoodie",
			BasePrice:    decimal.NewFromInt(45),
			VariantLabel: "Size",
			Variants: []catalog.Variant{
				{ID: "l", Name: "Large", Stock: 9, Price: decimal.NewFromInt(45), SKU: "HOOD-L"},
			},
		},
	}
}

func newTestWidget(t *testing.T, source catalog.Source) *Widget {
	t.Helper()
	widget, err := NewWidget(Params{
		Source:     source,
		Storage:    storage.NewMemoryStore(),
		StorageKey: "shopping-cart",
	})
	require.NoError(t, err)
	return widget
}

func TestInitSelectsFirstProductByDefault(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	require.NoError(t, widget.Init(context.Background(), 0))

	snap := widget.Snapshot()
	require.NotNil(t, snap.Selection.Product)
	require.Equal(t, int64(1), snap.Selection.Product.ID)
	require.Len(t, snap.Related, 1)
	require.Equal(t, int64(2), snap.Related[0].ID)
}

func TestInitHonorsExplicitProductID(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	require.NoError(t, widget.Init(context.Background(), 2))

	snap := widget.Snapshot()
	require.Equal(t, int64(2), snap.Selection.Product.ID)
}

func TestInitAbortsOnCatalogFailure(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{err: pkgerrors.New(pkgerrors.CodeFetch, "source down")})
	err := widget.Init(context.Background(), 0)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeFetch, typed.Code())
}

func TestEndToEndAddAndMergeClamped(t *testing.T) {
	t.Parallel()

	// catalog has product 1 with variant "s", stock 2, price 20
	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	ctx := context.Background()
	require.NoError(t, widget.Init(ctx, 0))

	widget.RequestSelectProduct(1)
	widget.RequestSelectVariant("s")
	widget.RequestQuantityDelta(+1) // quantity 2

	result, err := widget.RequestAddToCart(ctx)
	require.NoError(t, err)
	require.Equal(t, cart.OutcomeAdded, result.Outcome)

	snap := widget.Snapshot()
	require.Len(t, snap.Cart.Items, 1)
	require.Equal(t, 2, snap.Cart.Items[0].Quantity)
	require.True(t, snap.Cart.Items[0].TotalPrice.Equal(decimal.NewFromInt(40)))
	require.Equal(t, 2, snap.Cart.ItemCount)

	// adding quantity 2 again merges but stays clamped at stock 2
	result, err = widget.RequestAddToCart(ctx)
	require.NoError(t, err)
	require.Equal(t, cart.OutcomeMerged, result.Outcome)

	snap = widget.Snapshot()
	require.Len(t, snap.Cart.Items, 1)
	require.Equal(t, 2, snap.Cart.Items[0].Quantity)
	require.Equal(t, "$40.00", snap.Cart.TotalDisplay)
}

func TestRequestAddToCartWithoutVariantRejected(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	ctx := context.Background()
	require.NoError(t, widget.Init(ctx, 0))

	_, err := widget.RequestAddToCart(ctx)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.True(t, widget.Snapshot().Cart.IsEmpty)
}

func TestRequestRemoveCartItemOutOfRange(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	ctx := context.Background()
	require.NoError(t, widget.Init(ctx, 0))

	require.False(t, widget.RequestRemoveCartItem(ctx, 0))
	require.False(t, widget.RequestRemoveCartItem(ctx, -1))
}

func TestChangeNotificationsReachListeners(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	ctx := context.Background()

	var calls int
	widget.OnChange(func() { calls++ })
	require.NoError(t, widget.Init(ctx, 0)) // initial selection fires

	widget.RequestSelectVariant("s")
	_, err := widget.RequestAddToCart(ctx)
	require.NoError(t, err)

	require.GreaterOrEqual(t, calls, 3)
}

func TestSelectionResetOnProductChange(t *testing.T) {
	t.Parallel()

	widget := newTestWidget(t, &staticSource{products: feedProducts()})
	ctx := context.Background()
	require.NoError(t, widget.Init(ctx, 0))

	widget.RequestSelectVariant("s")
	widget.RequestSelectProduct(2)

	snap := widget.Snapshot()
	require.Empty(t, snap.Selection.VariantID)
	require.Equal(t, 1, snap.Selection.Quantity)
	require.False(t, snap.Selection.CanAddToCart)
}
