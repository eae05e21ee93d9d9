package catalog

import (
	"ostocare-be/internal/product"
)

// QuantityReader answers how many units of a product, over all its
// variants, are already in the cart. The cart store satisfies it.
type QuantityReader interface {
	ProductQuantity(productID string) int
}

// ProductView is a visible product plus the state its add-to-cart control needs.
type ProductView struct {
	product.Product
	Available    bool `json:"available"`
	InCart       int  `json:"inCart"`
	CanIncrement bool `json:"canIncrement"`
}

// Engine holds the fetched product list and the active filters and keeps the
// visible subset current. It is not safe for concurrent use; each view owns one.
type Engine struct {
	products []product.Product
	filters  FilterState
	visible  []product.Product
	cart     QuantityReader
}

func NewEngine(cart QuantityReader) *Engine {
	e := &Engine{cart: cart}
	e.recompute()
	return e
}

// SetProducts replaces the full product list. A nil or empty list is a
// normal state with no visible products.
func (e *Engine) SetProducts(products []product.Product) {
	e.products = append([]product.Product(nil), products...)
	e.recompute()
}

func (e *Engine) SetFilters(patch FilterPatch) {
	e.filters = e.filters.Merge(patch)
	e.recompute()
}

func (e *Engine) ClearFilters() {
	e.filters = FilterState{}
	e.recompute()
}

func (e *Engine) Filters() FilterState {
	return e.filters
}

func (e *Engine) Products() []product.Product {
	return append([]product.Product(nil), e.products...)
}

// Visible returns a copy of the current visible subset.
func (e *Engine) Visible() []product.Product {
	return append([]product.Product{}, e.visible...)
}

// CartQuantity returns the units of productID in the cart under any variant.
func (e *Engine) CartQuantity(productID string) int {
	if e.cart == nil {
		return 0
	}
	return e.cart.ProductQuantity(productID)
}

// Items decorates the visible products with availability and cart state.
// Increment stops at the stock boundary, which the cart applies per product.
func (e *Engine) Items() []ProductView {
	views := make([]ProductView, 0, len(e.visible))
	for _, p := range e.visible {
		inCart := e.CartQuantity(p.ID)
		views = append(views, ProductView{
			Product:      p,
			Available:    p.Available(),
			InCart:       inCart,
			CanIncrement: p.Available() && inCart < p.StockQuantity,
		})
	}
	return views
}

func (e *Engine) recompute() {
	e.visible = Filter(e.products, e.filters)
}
