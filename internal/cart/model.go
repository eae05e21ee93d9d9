package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

// Key identifies a line item. The same product with a different variant is a
// different line.
type Key struct {
	ProductID string
	Variant   string
}

// LineItem is one product-plus-variant entry. Name, UnitPrice and ImageRef
// are captured when the item is first added and never refreshed.
// StockQuantity is the stock seen at the last add; 0 means unknown.
type LineItem struct {
	ProductID     string          `json:"productId"`
	Variant       string          `json:"variant,omitempty"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	ImageRef      string          `json:"imageRef,omitempty"`
	Quantity      int             `json:"quantity"`
	StockQuantity int             `json:"stockQuantity,omitempty"`
}

func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Variant: li.Variant}
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// exceedsStock reports whether quantity plus others, the units held under the
// product's other variants, is above the captured stock cap.
func (li LineItem) exceedsStock(quantity, others int) bool {
	return li.StockQuantity > 0 && quantity > li.StockQuantity-others
}

// merged returns the line quantity after adding q, clamped to the captured
// stock when it is known.
func (li LineItem) merged(q int) int {
	next := addSaturating(li.Quantity, q)
	if li.StockQuantity > 0 && next > li.StockQuantity {
		return max(li.Quantity, li.StockQuantity)
	}
	return next
}

func addSaturating(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// Snapshot is an immutable view of the cart with its derived totals.
type Snapshot struct {
	Items          []LineItem      `json:"items"`
	TotalItemCount int             `json:"totalItemCount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}
