package cart

import (
	"github.com/shopspring/decimal"
)

// Pricing holds the checkout rules shown on the cart page.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	SavingsThreshold      decimal.Decimal
	SavingsRate           decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.RequireFromString("9.99"),
		SavingsThreshold:      decimal.NewFromInt(100),
		SavingsRate:           decimal.RequireFromString("0.10"),
	}
}

type Summary struct {
	ItemCount            int             `json:"itemCount"`
	LineCount            int             `json:"lineCount"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	Savings              decimal.Decimal `json:"savings"`
	Shipping             decimal.Decimal `json:"shipping"`
	FreeShipping         bool            `json:"freeShipping"`
	AmountToFreeShipping decimal.Decimal `json:"amountToFreeShipping"`
	FreeShippingProgress decimal.Decimal `json:"freeShippingProgress"`
	Total                decimal.Decimal `json:"total"`
}

// Summarize derives the order summary. Shipping is waived once the subtotal
// reaches the threshold; savings apply strictly above the savings threshold.
// An empty cart owes nothing.
func Summarize(s Snapshot, p Pricing) Summary {
	sum := Summary{
		ItemCount:            s.TotalItemCount,
		LineCount:            len(s.Items),
		Subtotal:             s.TotalPrice,
		Savings:              decimal.Zero,
		Shipping:             decimal.Zero,
		AmountToFreeShipping: decimal.Zero,
		FreeShippingProgress: decimal.NewFromInt(1),
	}

	if len(s.Items) == 0 {
		sum.FreeShippingProgress = decimal.Zero
		sum.AmountToFreeShipping = p.FreeShippingThreshold
		sum.Total = decimal.Zero
		return sum
	}

	if s.TotalPrice.GreaterThan(p.SavingsThreshold) {
		sum.Savings = s.TotalPrice.Mul(p.SavingsRate).Round(2)
	}

	if s.TotalPrice.GreaterThanOrEqual(p.FreeShippingThreshold) {
		sum.FreeShipping = true
	} else {
		sum.Shipping = p.ShippingFee
		sum.AmountToFreeShipping = p.FreeShippingThreshold.Sub(s.TotalPrice)
		if p.FreeShippingThreshold.IsPositive() {
			sum.FreeShippingProgress = s.TotalPrice.Div(p.FreeShippingThreshold).Round(4)
		}
	}

	sum.Total = s.TotalPrice.Sub(sum.Savings).Add(sum.Shipping)
	return sum
}
