package invoice

import (
	"time"

	"github.com/inventorypos/salesdesk/internal/domain/product"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LineItem is one entry of a draft. The product fields are a snapshot taken
// when the item was added and are not refreshed if the catalog changes.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NewLineItem snapshots p at its current selling price
func NewLineItem(p *product.Product, quantity int) LineItem {
	return LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Barcode:     p.Barcode,
		Unit:        p.Unit,
		Quantity:    quantity,
		UnitPrice:   p.SellingPrice,
	}
}

// Total is quantity times unit price
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalQuantity is the sum of quantities over items
func TotalQuantity(items []LineItem) int {
	return lo.SumBy(items, func(item LineItem) int {
		return item.Quantity
	})
}

// InvoiceLineItem is a line of a committed invoice. Position is 1-based and
// follows the order the items were added in.
type InvoiceLineItem struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	Position    int             `db:"position" json:"position"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Barcode     string          `db:"barcode" json:"barcode"`
	Unit        string          `db:"unit" json:"unit"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total" json:"line_total"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
