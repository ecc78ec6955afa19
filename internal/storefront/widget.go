package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/storefrontlabs/widget/internal/cart"
	"github.com/storefrontlabs/widget/internal/catalog"
	"github.com/storefrontlabs/widget/internal/selection"
	pkgerrors "github.com/storefrontlabs/widget/pkg/errors"
	"github.com/storefrontlabs/widget/pkg/format"
	"github.com/storefrontlabs/widget/pkg/logger"
	"github.com/storefrontlabs/widget/pkg/metrics"
	"github.com/storefrontlabs/widget/pkg/storage"
)

// Params collects the collaborators a widget instance is built from.
type Params struct {
	Source     catalog.Source
	Storage    storage.Store
	StorageKey string
	Logger     *logger.Logger
	Metrics    *metrics.CartMetrics
}

// Widget owns the storefront core: the session catalog, the selection state
// machine and the cart engine. The core runs synchronously; the mutex only
// serializes concurrent view adapters at the boundary.
type Widget struct {
	mu        sync.Mutex
	sessionID string

	source     catalog.Source
	store      storage.Store
	storageKey string
	logg       *logger.Logger
	metrics    *metrics.CartMetrics

	catalog   *catalog.Store
	selection *selection.State
	cart      *cart.Engine
	listeners []func()
}

// NewWidget validates the provided stack and builds an uninitialized widget.
func NewWidget(params Params) (*Widget, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("storage store required")
	}
	if params.StorageKey == "" {
		return nil, fmt.Errorf("storage key required")
	}
	return &Widget{
		sessionID:  uuid.NewString(),
		source:     params.Source,
		store:      params.Storage,
		storageKey: params.StorageKey,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}, nil
}

// SessionID identifies this widget instance in logs.
func (w *Widget) SessionID() string {
	return w.sessionID
}

// OnChange registers a listener invoked after any selection or cart change.
// Listeners run synchronously on the mutating goroutine and must not call
// back into the widget.
func (w *Widget) OnChange(listener func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if listener != nil {
		w.listeners = append(w.listeners, listener)
	}
}

// Init fetches the catalog, restores the persisted cart and selects the
// initial product (the explicit id, or the first product when id is zero).
// A catalog failure aborts initialization; there is no partial state.
func (w *Widget) Init(ctx context.Context, initialProductID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	products, err := w.source.Fetch(ctx)
	if err != nil {
		w.metrics.IncCatalogError()
		return pkgerrors.Wrap(pkgerrors.As(err).Code(), err, "initializing widget")
	}
	w.metrics.ObserveCatalogLoad(time.Since(start))

	w.catalog = catalog.NewStore(products)
	w.selection = selection.NewState(w.catalog)
	w.selection.OnChange(w.notify)

	engine, err := cart.NewEngine(ctx, w.store, w.storageKey, w.logg, w.metrics)
	if err != nil {
		return err
	}
	engine.OnChange(w.notify)
	w.cart = engine

	if w.catalog.Len() > 0 {
		id := initialProductID
		if id == 0 || w.catalog.FindByID(id) == nil {
			id = w.catalog.First().ID
		}
		w.selection.SelectProduct(id)
	}

	if w.logg != nil {
		ctx = w.logg.WithFields(ctx, map[string]any{
			"session_id": w.sessionID,
			"products":   w.catalog.Len(),
			"cart_items": w.cart.ItemCount(),
		})
		w.logg.Info(ctx, "widget initialized")
	}
	return nil
}

// RequestSelectProduct handles a product selection from the view.
func (w *Widget) RequestSelectProduct(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == nil {
		return
	}
	w.selection.SelectProduct(id)
}

// RequestSelectVariant handles a variant selection from the view.
func (w *Widget) RequestSelectVariant(variantID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == nil {
		return
	}
	w.selection.SelectVariant(variantID)
}

// RequestQuantityDelta handles a quantity +/- control from the view.
func (w *Widget) RequestQuantityDelta(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == nil {
		return
	}
	switch {
	case delta > 0:
		w.selection.IncreaseQuantity()
	case delta < 0:
		w.selection.DecreaseQuantity()
	}
}

// RequestAddToCart pushes the current selection into the cart engine. The
// engine double-checks the selection even though the view is expected to
// keep the button disabled for invalid states.
func (w *Widget) RequestAddToCart(ctx context.Context) (cart.AddResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cart == nil || w.selection == nil {
		return cart.AddResult{}, pkgerrors.New(pkgerrors.CodeInternal, "widget not initialized")
	}
	return w.cart.AddItem(ctx, w.selection.Product(), w.selection.Variant(), w.selection.Quantity())
}

// RequestRemoveCartItem removes a cart row by position; out-of-range is a no-op.
func (w *Widget) RequestRemoveCartItem(ctx context.Context, index int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cart == nil {
		return false
	}
	return w.cart.RemoveItem(ctx, index)
}

// Snapshot returns the full view model the presentation layer renders from.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Widget) snapshotLocked() Snapshot {
	snap := Snapshot{SessionID: w.sessionID}
	if w.selection != nil {
		snap.Selection = w.selection.Snapshot()
		if product := w.selection.Product(); product != nil && w.catalog != nil {
			snap.Related = w.catalog.Related(product.ID)
		}
	}
	if w.cart != nil {
		snap.Cart = CartView{
			Items:        w.cart.Items(),
			ItemCount:    w.cart.ItemCount(),
			Total:        w.cart.Total(),
			TotalDisplay: format.Price(w.cart.Total()),
			IsEmpty:      w.cart.IsEmpty(),
		}
	}
	return snap
}

// Close releases the storage handles behind the widget.
func (w *Widget) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs error
	if w.store != nil {
		errs = multierr.Append(errs, w.store.Close())
	}
	return errs
}

func (w *Widget) notify() {
	for _, listener := range w.listeners {
		listener()
	}
}
