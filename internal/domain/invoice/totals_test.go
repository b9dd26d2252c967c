package invoice

import (
	"testing"

	"github.com/inventorypos/salesdesk/internal/domain/product"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(price string, qty int) LineItem {
	return NewLineItem(&product.Product{ID: "p", Name: "p", SellingPrice: d(price)}, qty)
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		adj   func(a *Adjustments)
		want  map[string]string
	}{
		{
			name:  "empty draft",
			items: nil,
			adj:   func(a *Adjustments) {},
			want: map[string]string{
				"sub": "0.00", "tax": "0.00", "discount": "0.00", "grand": "0.00", "due": "0.00",
			},
		},
		{
			name:  "percentage tax with fixed discount",
			items: []LineItem{item("40.00", 2), item("20.00", 1)},
			adj: func(a *Adjustments) {
				a.Shipping = d("10")
				a.Tax = PercentageCharge(d("10"))
				a.Discount = FixedCharge(d("5"))
			},
			want: map[string]string{
				"sub": "100.00", "tax": "10.00", "discount": "5.00", "grand": "115.00", "due": "115.00",
			},
		},
		{
			name:  "fixed tax with percentage discount",
			items: []LineItem{item("19.99", 3)},
			adj: func(a *Adjustments) {
				a.Tax = FixedCharge(d("2.50"))
				a.Discount = PercentageCharge(d("12.5"))
				a.Paid = d("50")
			},
			// 59.97 + 2.50 - 7.49625
			want: map[string]string{
				"sub": "59.97", "tax": "2.50", "discount": "7.50", "grand": "54.97", "due": "4.97",
			},
		},
		{
			name:  "overpayment gives negative due",
			items: []LineItem{item("9.50", 1)},
			adj: func(a *Adjustments) {
				a.Paid = d("20")
			},
			want: map[string]string{
				"sub": "9.50", "tax": "0.00", "discount": "0.00", "grand": "9.50", "due": "-10.50",
			},
		},
		{
			name:  "discount larger than the sale",
			items: []LineItem{item("3.00", 1)},
			adj: func(a *Adjustments) {
				a.Discount = FixedCharge(d("5"))
			},
			want: map[string]string{
				"sub": "3.00", "tax": "0.00", "discount": "5.00", "grand": "-2.00", "due": "-2.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := DefaultAdjustments()
			tt.adj(&adj)

			got := CalculateTotals(tt.items, adj).Rounded()
			assert.Equal(t, tt.want["sub"], got.SubTotal.StringFixed(2))
			assert.Equal(t, tt.want["tax"], got.TaxValue.StringFixed(2))
			assert.Equal(t, tt.want["discount"], got.DiscountValue.StringFixed(2))
			assert.Equal(t, tt.want["grand"], got.GrandTotal.StringFixed(2))
			assert.Equal(t, tt.want["due"], got.Due.StringFixed(2))
		})
	}
}

func TestCalculateTotalsRoundsOnlyAtTheEnd(t *testing.T) {
	// tax 0.125 and discount 0.125 would each round to 0.13; unrounded they cancel
	adj := DefaultAdjustments()
	adj.Tax = PercentageCharge(d("5"))
	adj.Discount = PercentageCharge(d("5"))

	totals := CalculateTotals([]LineItem{item("2.50", 1)}, adj)
	assert.True(t, totals.TaxValue.Equal(d("0.125")))
	assert.Equal(t, "2.50", totals.Rounded().GrandTotal.StringFixed(2))
}

func TestCalculateTotalsIsPure(t *testing.T) {
	items := []LineItem{item("1.10", 3), item("0.35", 7)}
	adj := DefaultAdjustments()
	adj.Tax = PercentageCharge(d("8"))

	first := CalculateTotals(items, adj)
	second := CalculateTotals(items, adj)
	assert.Equal(t, first, second)
	assert.Len(t, items, 2)
}

func TestIsOverpaid(t *testing.T) {
	assert.True(t, Totals{Due: d("-0.01")}.IsOverpaid())
	assert.False(t, Totals{Due: decimal.Zero}.IsOverpaid())
	assert.False(t, Totals{Due: d("3")}.IsOverpaid())
}

func TestAdjustmentsValidate(t *testing.T) {
	tests := []struct {
		name    string
		adj     func(a *Adjustments)
		wantErr bool
	}{
		{name: "defaults", adj: func(a *Adjustments) {}},
		{name: "negative shipping", adj: func(a *Adjustments) { a.Shipping = d("-1") }, wantErr: true},
		{name: "negative paid", adj: func(a *Adjustments) { a.Paid = d("-0.01") }, wantErr: true},
		{name: "negative tax", adj: func(a *Adjustments) { a.Tax = FixedCharge(d("-2")) }, wantErr: true},
		{name: "negative discount", adj: func(a *Adjustments) { a.Discount = PercentageCharge(d("-5")) }, wantErr: true},
		{name: "unknown tax mode", adj: func(a *Adjustments) { a.Tax.Mode = "per_item" }, wantErr: true},
		{name: "unknown payment type", adj: func(a *Adjustments) { a.PaymentType = "BARTER" }, wantErr: true},
		{name: "percentage over 100 is allowed", adj: func(a *Adjustments) { a.Discount = PercentageCharge(d("150")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := DefaultAdjustments()
			tt.adj(&adj)

			err := adj.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAdjustmentsReference(t *testing.T) {
	adj := DefaultAdjustments()
	adj.PaymentReference = "CHQ-1182"
	assert.Empty(t, adj.Reference())

	adj.PaymentType = types.PaymentTypeCheque
	assert.Equal(t, "CHQ-1182", adj.Reference())

	adj.PaymentType = types.PaymentTypeOnline
	assert.Equal(t, "CHQ-1182", adj.Reference())
}

func TestLineItemSnapshot(t *testing.T) {
	p := &product.Product{ID: "prod_milk", Name: "Milk 1L", Barcode: "4790001", Unit: "btl", SellingPrice: d("3.40")}
	li := NewLineItem(p, 3)

	p.SellingPrice = d("3.90")
	p.Name = "Milk 1L (new)"

	assert.Equal(t, "Milk 1L", li.ProductName)
	assert.Equal(t, "10.20", li.Total().StringFixed(2))
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-202610-00042", FormatInvoiceNumber("INV", "202610", 42))
	assert.Equal(t, "INV-202610-123456", FormatInvoiceNumber("INV", "202610", 123456))
}

func TestTotalQuantity(t *testing.T) {
	assert.Equal(t, 0, TotalQuantity(nil))

	items := []LineItem{item("10", 2), item("3.50", 5), item("1", 1)}
	assert.Equal(t, 8, TotalQuantity(items))

	draft := &Draft{LineItems: items}
	assert.Equal(t, 3, draft.ItemCount())
	assert.Equal(t, TotalQuantity(items), draft.TotalQuantity())
}
