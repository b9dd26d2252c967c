package invoice

import (
	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Draft is a read-only snapshot of an invoice being assembled. Totals are
// unrounded.
type Draft struct {
	InvoiceNumber string
	Customer      *customer.Customer
	Arrears       decimal.Decimal
	LineItems     []LineItem
	Adjustments   Adjustments
	PrintFormat   types.PrintFormat
	Totals        Totals
}

func (d *Draft) ItemCount() int {
	return len(d.LineItems)
}

func (d *Draft) TotalQuantity() int {
	return TotalQuantity(d.LineItems)
}
