package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/widget/internal/catalog"
	pkgerrors "github.com/storefrontlabs/widget/pkg/errors"
	"github.com/storefrontlabs/widget/pkg/logger"
	"github.com/storefrontlabs/widget/pkg/metrics"
	"github.com/storefrontlabs/widget/pkg/storage"
)

// Outcome reports how a successful add landed in the cart.
type Outcome string

const (
	OutcomeAdded  Outcome = "added"
	OutcomeMerged Outcome = "merged"
)

// Rejection reasons attached to validation errors and metrics.
const (
	ReasonNoProduct       = "no_product"
	ReasonNoVariant       = "no_variant"
	ReasonZeroStock       = "zero_stock"
	ReasonInvalidQuantity = "invalid_quantity"
)

// AddResult describes a successful AddItem call.
type AddResult struct {
	Outcome Outcome
	Item    LineItem
}

// Engine owns the cart line-item collection. Every successful mutation
// persists the whole cart and notifies listeners. Persistence failures are
// logged and absorbed: in-memory state is the source of truth for the session.
type Engine struct {
	store      storage.Store
	storageKey string
	logg       *logger.Logger
	metrics    *metrics.CartMetrics
	items      []LineItem
	listeners  []func()
}

// NewEngine builds a cart engine and loads any previously persisted cart.
// A missing or corrupt payload starts the session with an empty cart.
func NewEngine(ctx context.Context, store storage.Store, storageKey string, logg *logger.Logger, m *metrics.CartMetrics) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("storage store required")
	}
	if storageKey == "" {
		return nil, fmt.Errorf("storage key required")
	}
	engine := &Engine{
		store:      store,
		storageKey: storageKey,
		logg:       logg,
		metrics:    m,
	}
	engine.load(ctx)
	return engine, nil
}

// OnChange registers a listener invoked after every successful mutation.
func (e *Engine) OnChange(listener func()) {
	if listener != nil {
		e.listeners = append(e.listeners, listener)
	}
}

// AddItem validates the selection and merges it into the cart. A line item
// already holding the same (product, variant) pair absorbs the quantity,
// clamped to the variant's current stock; otherwise a new item is appended.
func (e *Engine) AddItem(ctx context.Context, product *catalog.Product, variant *catalog.Variant, quantity int) (AddResult, error) {
	if err := validateAdd(product, variant, quantity); err != nil {
		e.metrics.IncRejection(rejectionReason(err))
		return AddResult{}, err
	}

	if idx := e.findItem(product.ID, variant.ID); idx >= 0 {
		item := &e.items[idx]
		item.Quantity += quantity
		if item.Quantity > variant.Stock {
			item.Quantity = variant.Stock
		}
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		e.metrics.IncOperation("add", string(OutcomeMerged))
		e.save(ctx)
		e.notify()
		return AddResult{Outcome: OutcomeMerged, Item: *item}, nil
	}

	item := LineItem{
		ProductID:    product.ID,
		VariantID:    variant.ID,
		Title:        product.Title,
		VariantLabel: product.VariantLabel,
		VariantName:  variant.Name,
		UnitPrice:    variant.Price,
		Quantity:     quantity,
		TotalPrice:   variant.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Image:        product.Image,
		SKU:          variant.SKU,
	}
	e.items = append(e.items, item)

	e.metrics.IncOperation("add", string(OutcomeAdded))
	e.save(ctx)
	e.notify()
	return AddResult{Outcome: OutcomeAdded, Item: item}, nil
}

// RemoveItem drops the line item at the given position. An out-of-range
// index leaves the cart unchanged and reports false.
func (e *Engine) RemoveItem(ctx context.Context, index int) bool {
	if index < 0 || index >= len(e.items) {
		return false
	}
	e.items = append(e.items[:index], e.items[index+1:]...)

	e.metrics.IncOperation("remove", "removed")
	e.save(ctx)
	e.notify()
	return true
}

// Items returns a copy of the cart in insertion order.
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// ItemCount sums the quantities across all line items.
func (e *Engine) ItemCount() int {
	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// Total sums the line totals across all line items.
func (e *Engine) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// IsEmpty reports whether the cart has no line items.
func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

func (e *Engine) findItem(productID int64, variantID string) int {
	for i, item := range e.items {
		if item.ProductID == productID && item.VariantID == variantID {
			return i
		}
	}
	return -1
}

func validateAdd(product *catalog.Product, variant *catalog.Variant, quantity int) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "no product selected").
			WithDetails(map[string]any{"reason": ReasonNoProduct})
	}
	if variant == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "no variant selected").
			WithDetails(map[string]any{"reason": ReasonNoVariant})
	}
	if variant.Stock == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant is out of stock").
			WithDetails(map[string]any{"reason": ReasonZeroStock})
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"reason": ReasonInvalidQuantity})
	}
	return nil
}

func rejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "unknown"
	}
	if details, ok := typed.Details().(map[string]any); ok {
		if reason, ok := details["reason"].(string); ok {
			return reason
		}
	}
	return "unknown"
}

func (e *Engine) load(ctx context.Context) {
	payload, err := e.store.Get(ctx, e.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && e.logg != nil {
			e.logg.Warn(ctx, "cart load failed, starting empty: "+err.Error())
		}
		e.items = nil
		return
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		if e.logg != nil {
			e.logg.Warn(ctx, "persisted cart corrupt, starting empty: "+err.Error())
		}
		e.items = nil
		return
	}
	e.items = items
}

func (e *Engine) save(ctx context.Context) {
	payload, err := json.Marshal(e.items)
	if err != nil {
		e.metrics.IncSaveFailure()
		if e.logg != nil {
			e.logg.Error(ctx, "cart serialization failed", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "marshal cart"))
		}
		return
	}
	if err := e.store.Set(ctx, e.storageKey, string(payload)); err != nil {
		e.metrics.IncSaveFailure()
		if e.logg != nil {
			e.logg.Error(ctx, "cart persistence failed, in-memory state kept", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist cart"))
		}
	}
}

func (e *Engine) notify() {
	for _, listener := range e.listeners {
		listener()
	}
}
