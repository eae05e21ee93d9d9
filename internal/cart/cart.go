package cart

import (
	"strings"

	"ostocare-be/internal/product"

	"github.com/shopspring/decimal"
)

// Cart is the in-memory line item collection. It knows nothing about
// storage or subscribers; Store layers those on top.
//
// Invariants: no line item has Quantity <= 0, keys are unique, and items
// keep insertion order.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(k Key) int {
	for i, it := range c.items {
		if it.Key() == k {
			return i
		}
	}
	return -1
}

// Add increments the line for (p.ID, variant) by quantity, creating it when
// absent. The units of p held across all its variants may not exceed
// p.StockQuantity.
func (c *Cart) Add(p product.Product, quantity int, variant string) (LineItem, error) {
	if strings.TrimSpace(p.ID) == "" {
		return LineItem{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if p.Price.IsNegative() {
		return LineItem{}, ErrInvalidPrice
	}
	if !p.Available() {
		return LineItem{}, ErrOutOfStock
	}

	// Compared as a difference so a huge quantity cannot wrap the sum.
	if quantity > p.StockQuantity-c.ProductQuantity(p.ID) {
		return LineItem{}, ErrInsufficientStock
	}

	k := Key{ProductID: p.ID, Variant: variant}
	if i := c.indexOf(k); i >= 0 {
		c.items[i].Quantity += quantity
		c.items[i].StockQuantity = p.StockQuantity
		return c.items[i], nil
	}

	item := LineItem{
		ProductID:     p.ID,
		Variant:       variant,
		Name:          p.Name,
		UnitPrice:     p.Price,
		ImageRef:      p.PrimaryImage(),
		Quantity:      quantity,
		StockQuantity: p.StockQuantity,
	}
	c.items = append(c.items, item)
	return item, nil
}

// SetQuantity sets the line to exactly quantity. quantity <= 0 removes the
// line (absent lines included, as a no-op). Setting a positive quantity on a
// line that does not exist is an error. The captured stock caps the units of
// the product across all its variants. changed reports whether the cart
// differs afterwards.
func (c *Cart) SetQuantity(productID, variant string, quantity int) (changed bool, err error) {
	k := Key{ProductID: productID, Variant: variant}
	if quantity <= 0 {
		return c.Remove(productID, variant), nil
	}

	i := c.indexOf(k)
	if i < 0 {
		return false, ErrCartItemNotFound
	}
	others := c.ProductQuantity(productID) - c.items[i].Quantity
	if c.items[i].exceedsStock(quantity, others) {
		return false, ErrInsufficientStock
	}
	if c.items[i].Quantity == quantity {
		return false, nil
	}
	c.items[i].Quantity = quantity
	return true, nil
}

// Remove deletes the line if present and reports whether it did.
func (c *Cart) Remove(productID, variant string) bool {
	i := c.indexOf(Key{ProductID: productID, Variant: variant})
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

// Quantity returns the current quantity of the line, or 0.
func (c *Cart) Quantity(productID, variant string) int {
	if i := c.indexOf(Key{ProductID: productID, Variant: variant}); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// ProductQuantity returns the units of productID held under any variant.
func (c *Cart) ProductQuantity(productID string) int {
	n := 0
	for _, it := range c.items {
		if it.ProductID == productID {
			n = addSaturating(n, it.Quantity)
		}
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	return append([]LineItem{}, c.items...)
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Items:          c.Items(),
		TotalItemCount: c.TotalItemCount(),
		TotalPrice:     c.TotalPrice(),
	}
}

// Restore replaces the contents with items, dropping lines without an id,
// with a non-positive quantity or a negative price, and merging duplicate keys.
// A merged line never passes its captured stock.
func (c *Cart) Restore(items []LineItem) {
	c.items = nil
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			continue
		}
		if i := c.indexOf(it.Key()); i >= 0 {
			c.items[i].Quantity = c.items[i].merged(it.Quantity)
			continue
		}
		c.items = append(c.items, it)
	}
}
