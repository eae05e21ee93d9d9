package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Encode serializes items as a JSON array. An empty cart encodes as "[]".
func Encode(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// record accepts the current field names and the legacy ones (id, price,
// image) written by older clients. Every field is optional so that partial
// records can be detected and dropped instead of failing the whole slot.
type record struct {
	ProductID     *string          `json:"productId"`
	LegacyID      *string          `json:"id"`
	Variant       *string          `json:"variant"`
	Name          *string          `json:"name"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	LegacyPrice   *decimal.Decimal `json:"price"`
	ImageRef      *string          `json:"imageRef"`
	LegacyImage   *string          `json:"image"`
	Quantity      *json.Number     `json:"quantity"`
	StockQuantity *json.Number     `json:"stockQuantity"`
}

func (r record) lineItem() (LineItem, bool) {
	id := firstString(r.ProductID, r.LegacyID)
	if id == "" || r.Quantity == nil {
		return LineItem{}, false
	}

	qty, err := r.Quantity.Int64()
	if err != nil || qty <= 0 {
		return LineItem{}, false
	}

	price := decimal.Zero
	switch {
	case r.UnitPrice != nil:
		price = *r.UnitPrice
	case r.LegacyPrice != nil:
		price = *r.LegacyPrice
	}
	if price.IsNegative() {
		return LineItem{}, false
	}

	var stock int64
	if r.StockQuantity != nil {
		if s, err := r.StockQuantity.Int64(); err == nil && s > 0 {
			stock = s
		}
	}

	return LineItem{
		ProductID:     id,
		Variant:       firstString(r.Variant),
		Name:          firstString(r.Name),
		UnitPrice:     price,
		ImageRef:      firstString(r.ImageRef, r.LegacyImage),
		Quantity:      int(qty),
		StockQuantity: int(stock),
	}, true
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// Decode parses a persisted slot. Empty input is an empty cart. Individual
// records that are incomplete or invalid are skipped; dropped counts them.
// Only an unparseable document is an error.
func Decode(data []byte) (items []LineItem, dropped int, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, 0, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorruptCart, err)
	}

	items = make([]LineItem, 0, len(records))
	for _, r := range records {
		item, ok := r.lineItem()
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped, nil
}
