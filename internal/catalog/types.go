package catalog

import "github.com/shopspring/decimal"

// Product is one sellable listing in the session catalog. The JSON shape
// mirrors the catalog feed document.
type Product struct {
	ID           int64           `json:"id" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description"`
	Image        *string         `json:"image,omitempty"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	IsOnSale     bool            `json:"isOnSale"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	Rating       float64         `json:"rating"`
	Reviews      int             `json:"reviews"`
	VariantLabel string          `json:"variantLabel" validate:"required"`
	Variants     []Variant       `json:"variants" validate:"required,min=1,dive"`
}

// Variant is a purchasable option of a product with its own stock and price.
type Variant struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	SKU           string           `json:"sku"`
}

// FindVariant returns the variant with the given id, or nil if absent.
func (p *Product) FindVariant(id string) *Variant {
	if p == nil {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// InStock reports whether the variant can be added to a cart at all.
func (v *Variant) InStock() bool {
	return v != nil && v.Stock > 0
}
