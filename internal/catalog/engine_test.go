package catalog

import (
	"strings"
	"testing"

	"ostocare-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCart is keyed by "productID|variant".
type stubCart map[string]int

func (s stubCart) ProductQuantity(productID string) int {
	n := 0
	for k, q := range s {
		if strings.HasPrefix(k, productID+"|") {
			n += q
		}
	}
	return n
}

func TestEngine_SetFiltersRecomputes(t *testing.T) {
	e := NewEngine(nil)
	assert.Empty(t, e.Visible())

	e.SetProducts(sampleCatalog())
	assert.Len(t, e.Visible(), 10)

	e.SetFilters(FilterPatch{Category: ptr(product.CategoryBook)})
	assert.Len(t, e.Visible(), 3)

	e.SetFilters(FilterPatch{SearchText: ptr("cook")})
	assert.Equal(t, []string{"6"}, ids(e.Visible()))
	assert.Equal(t, product.CategoryBook, *e.Filters().Category, "partial update keeps category")

	e.ClearFilters()
	assert.Equal(t, FilterState{}, e.Filters())
	assert.Len(t, e.Visible(), 10)
}

func TestEngine_VisibleIsACopy(t *testing.T) {
	e := NewEngine(nil)
	e.SetProducts(sampleCatalog())

	visible := e.Visible()
	visible[0].Name = "mutated"

	assert.NotEqual(t, "mutated", e.Visible()[0].Name)
}

func TestEngine_Items(t *testing.T) {
	catalog := []product.Product{
		mk("a", "Pouch", "", product.CategoryIndividualItem, product.OstomyUniversal),
		mk("b", "Kit", "", product.CategoryCareKit, product.OstomyColostomy),
		mk("c", "Book", "", product.CategoryBook, product.OstomyUniversal),
	}
	catalog[1].StockQuantity = 2
	catalog[2].StockQuantity = 0

	e := NewEngine(stubCart{"a|": 1, "b|": 2})
	e.SetProducts(catalog)

	items := e.Items()
	require.Len(t, items, 3)

	assert.True(t, items[0].Available)
	assert.Equal(t, 1, items[0].InCart)
	assert.True(t, items[0].CanIncrement)

	assert.Equal(t, 2, items[1].InCart)
	assert.False(t, items[1].CanIncrement, "at stock boundary")

	assert.False(t, items[2].Available)
	assert.False(t, items[2].CanIncrement)
	assert.Equal(t, 0, items[2].InCart)
}

func TestEngine_ItemsCountAllVariants(t *testing.T) {
	catalog := []product.Product{
		mk("P1", "Pouch", "", product.CategoryIndividualItem, product.OstomyUniversal),
		mk("P2", "Kit", "", product.CategoryCareKit, product.OstomyColostomy),
	}
	catalog[0].StockQuantity = 5
	catalog[1].StockQuantity = 5

	e := NewEngine(stubCart{"P1|colostomy": 5, "P2|colostomy": 1, "P2|ileostomy": 2})
	e.SetProducts(catalog)

	items := e.Items()
	require.Len(t, items, 2)

	assert.Equal(t, 5, items[0].InCart)
	assert.False(t, items[0].CanIncrement, "variant units use up the stock")

	assert.Equal(t, 3, items[1].InCart)
	assert.True(t, items[1].CanIncrement)
	assert.Equal(t, 3, e.CartQuantity("P2"))
}

func TestEngine_CartQuantityWithoutCart(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, 0, e.CartQuantity("a"))
}
