package selection

import (
	"github.com/storefrontlabs/widget/internal/catalog"
)

// lowStockThreshold is the remaining-stock ceiling for the advisory signal.
const lowStockThreshold = 10

// State tracks the currently selected product, variant and quantity. All
// mutations run synchronously; callers own the single-session discipline.
type State struct {
	catalog   *catalog.Store
	product   *catalog.Product
	variant   *catalog.Variant
	quantity  int
	listeners []func()
}

// NewState builds a selection state over the session catalog.
func NewState(store *catalog.Store) *State {
	return &State{catalog: store, quantity: 1}
}

// OnChange registers a listener invoked after every state change.
func (s *State) OnChange(listener func()) {
	if listener != nil {
		s.listeners = append(s.listeners, listener)
	}
}

func (s *State) notify() {
	for _, listener := range s.listeners {
		listener()
	}
}

// SelectProduct looks up the product and makes it current. A missing id
// leaves no product selected rather than failing. The variant is cleared
// and quantity resets to 1 either way.
func (s *State) SelectProduct(id int64) {
	s.product = s.catalog.FindByID(id)
	s.variant = nil
	s.quantity = 1
	s.notify()
}

// SelectVariant looks up the variant within the selected product. A missing
// id clears the variant, which disables add-to-cart. A found variant clamps
// the current quantity to its stock.
func (s *State) SelectVariant(variantID string) {
	s.variant = s.product.FindVariant(variantID)
	if s.variant != nil && s.quantity > s.variant.Stock {
		s.quantity = s.variant.Stock
	}
	if s.quantity < 1 {
		s.quantity = 1
	}
	s.notify()
}

// IncreaseQuantity bumps the quantity, bounded by the selected variant's stock.
func (s *State) IncreaseQuantity() {
	if s.variant == nil || s.quantity >= s.variant.Stock {
		return
	}
	s.quantity++
	s.notify()
}

// DecreaseQuantity lowers the quantity, bounded below by 1.
func (s *State) DecreaseQuantity() {
	if s.quantity <= 1 {
		return
	}
	s.quantity--
	s.notify()
}

// Product returns the selected product, or nil.
func (s *State) Product() *catalog.Product {
	return s.product
}

// Variant returns the selected variant, or nil.
func (s *State) Variant() *catalog.Variant {
	return s.variant
}

// Quantity returns the current quantity.
func (s *State) Quantity() int {
	return s.quantity
}

// CanAddToCart reports whether the current selection is addable.
func (s *State) CanAddToCart() bool {
	return s.product != nil && s.variant.InStock()
}

// LowStockNotice is the advisory surfaced when stock is running out.
type LowStockNotice struct {
	Remaining int `json:"remaining"`
}

// Snapshot is the view model the presentation layer renders from.
type Snapshot struct {
	Product      *catalog.Product `json:"product,omitempty"`
	VariantID    string           `json:"variantId,omitempty"`
	Quantity     int              `json:"quantity"`
	CanDecrease  bool             `json:"canDecrease"`
	CanIncrease  bool             `json:"canIncrease"`
	CanAddToCart bool             `json:"canAddToCart"`
	Price        PriceDisplay     `json:"price"`
	LowStock     *LowStockNotice  `json:"lowStock,omitempty"`
}

// Snapshot resolves the current selection into its view model.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Quantity:     s.quantity,
		CanDecrease:  s.quantity > 1,
		CanAddToCart: s.CanAddToCart(),
		Product:      s.product,
		Price:        ResolvePrice(s.product, s.variant),
	}
	if s.variant != nil {
		snap.VariantID = s.variant.ID
		snap.CanIncrease = s.quantity < s.variant.Stock
		if s.variant.Stock > 0 && s.variant.Stock <= lowStockThreshold {
			snap.LowStock = &LowStockNotice{Remaining: s.variant.Stock}
		}
	}
	return snap
}
