package invoice

import (
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Totals are derived from a draft's items and adjustments. Values returned by
// CalculateTotals are unrounded; use Rounded for display and commit.
type Totals struct {
	SubTotal      decimal.Decimal `json:"sub_total"`
	Shipping      decimal.Decimal `json:"shipping"`
	TaxValue      decimal.Decimal `json:"tax_value"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Paid          decimal.Decimal `json:"paid"`
	Due           decimal.Decimal `json:"due"`
}

// CalculateTotals has no side effects. Due is signed: paying more than the
// grand total gives a negative due.
func CalculateTotals(items []LineItem, adj Adjustments) Totals {
	subTotal := lo.Reduce(items, func(acc decimal.Decimal, item LineItem, _ int) decimal.Decimal {
		return acc.Add(item.Total())
	}, decimal.Zero)

	taxValue := adj.Tax.Value(subTotal)
	discountValue := adj.Discount.Value(subTotal)
	grandTotal := subTotal.Add(adj.Shipping).Add(taxValue).Sub(discountValue)

	return Totals{
		SubTotal:      subTotal,
		Shipping:      adj.Shipping,
		TaxValue:      taxValue,
		DiscountValue: discountValue,
		GrandTotal:    grandTotal,
		Paid:          adj.Paid,
		Due:           grandTotal.Sub(adj.Paid),
	}
}

// Rounded returns a copy with every amount rounded half-up to 2 places
func (t Totals) Rounded() Totals {
	return Totals{
		SubTotal:      types.RoundMoney(t.SubTotal),
		Shipping:      types.RoundMoney(t.Shipping),
		TaxValue:      types.RoundMoney(t.TaxValue),
		DiscountValue: types.RoundMoney(t.DiscountValue),
		GrandTotal:    types.RoundMoney(t.GrandTotal),
		Paid:          types.RoundMoney(t.Paid),
		Due:           types.RoundMoney(t.Due),
	}
}

// IsOverpaid reports a negative due, i.e. the customer paid more than the grand total
func (t Totals) IsOverpaid() bool {
	return t.Due.IsNegative()
}
