package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(t *testing.T, prices ...string) Snapshot {
	t.Helper()
	c := New()
	for i, p := range prices {
		_, err := c.Add(testProduct(string(rune('A'+i)), p, 100), 1, "")
		require.NoError(t, err)
	}
	return c.Snapshot()
}

func TestSummarize(t *testing.T) {
	pricing := DefaultPricing()

	tests := []struct {
		name         string
		prices       []string
		shipping     string
		savings      string
		total        string
		freeShipping bool
		toFree       string
	}{
		{name: "BelowThreshold", prices: []string{"40"}, shipping: "9.99", savings: "0", total: "49.99", toFree: "10"},
		{name: "AboveThreshold", prices: []string{"60"}, shipping: "0", savings: "0", total: "60", freeShipping: true, toFree: "0"},
		{name: "ExactlyThreshold", prices: []string{"30", "20"}, shipping: "0", savings: "0", total: "50", freeShipping: true, toFree: "0"},
		{name: "SavingsNotAtExactly100", prices: []string{"100"}, shipping: "0", savings: "0", total: "100", freeShipping: true, toFree: "0"},
		{name: "SavingsAbove100", prices: []string{"120.55"}, shipping: "0", savings: "12.06", total: "108.49", freeShipping: true, toFree: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Summarize(snapshotOf(t, tt.prices...), pricing)

			assert.True(t, decimal.RequireFromString(tt.shipping).Equal(sum.Shipping), "shipping %s", sum.Shipping)
			assert.True(t, decimal.RequireFromString(tt.savings).Equal(sum.Savings), "savings %s", sum.Savings)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(sum.Total), "total %s", sum.Total)
			assert.True(t, decimal.RequireFromString(tt.toFree).Equal(sum.AmountToFreeShipping), "to free %s", sum.AmountToFreeShipping)
			assert.Equal(t, tt.freeShipping, sum.FreeShipping)
			assert.Equal(t, len(tt.prices), sum.LineCount)
		})
	}
}

func TestSummarize_Progress(t *testing.T) {
	sum := Summarize(snapshotOf(t, "12.50"), DefaultPricing())
	assert.Equal(t, "0.25", sum.FreeShippingProgress.String())

	sum = Summarize(snapshotOf(t, "75"), DefaultPricing())
	assert.Equal(t, "1", sum.FreeShippingProgress.String())
}

func TestSummarize_EmptyCart(t *testing.T) {
	sum := Summarize(New().Snapshot(), DefaultPricing())

	assert.Equal(t, 0, sum.ItemCount)
	assert.True(t, sum.Total.IsZero())
	assert.True(t, sum.Shipping.IsZero())
	assert.False(t, sum.FreeShipping)
	assert.Equal(t, "50", sum.AmountToFreeShipping.String())
	assert.True(t, sum.FreeShippingProgress.IsZero())
}

func TestSummarize_CustomPricing(t *testing.T) {
	p := Pricing{
		FreeShippingThreshold: decimal.NewFromInt(25),
		ShippingFee:           decimal.RequireFromString("4.50"),
		SavingsThreshold:      decimal.NewFromInt(1000),
		SavingsRate:           decimal.Zero,
	}

	sum := Summarize(snapshotOf(t, "20"), p)
	assert.Equal(t, "24.5", sum.Total.String())
	assert.Equal(t, "0.8", sum.FreeShippingProgress.String())
}
