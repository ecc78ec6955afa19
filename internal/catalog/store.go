package catalog

// Store holds the immutable product list for the session.
type Store struct {
	products []Product
	byID     map[int64]*Product
}

// NewStore indexes the fetched products. The slice is owned by the store
// after this call; the catalog is read-only for the rest of the session.
func NewStore(products []Product) *Store {
	byID := make(map[int64]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return &Store{products: products, byID: byID}
}

// FindByID returns the product with the given id, or nil if absent.
func (s *Store) FindByID(id int64) *Product {
	return s.byID[id]
}

// First returns the first product in feed order, or nil for an empty catalog.
func (s *Store) First() *Product {
	if len(s.products) == 0 {
		return nil
	}
	return &s.products[0]
}

// Related returns every product except the excluded one, in feed order.
func (s *Store) Related(excludeID int64) []Product {
	related := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID == excludeID {
			continue
		}
		related = append(related, p)
	}
	return related
}

// Len reports the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}
