package invoice

import (
	"strings"
	"time"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is a committed sales invoice. It is built once from a draft and
// never modified afterwards; all amounts are rounded to 2 places.
type Invoice struct {
	ID            string    `db:"id" json:"id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	CustomerID    string    `db:"customer_id" json:"customer_id"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerCity  string    `db:"customer_city" json:"customer_city"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoice_date"`

	SubTotal       decimal.Decimal  `db:"sub_total" json:"sub_total"`
	ShippingCost   decimal.Decimal  `db:"shipping_cost" json:"shipping_cost"`
	TaxAmount      decimal.Decimal  `db:"tax_amount" json:"tax_amount"`
	TaxMode        types.ChargeMode `db:"tax_mode" json:"tax_mode"`
	TaxValue       decimal.Decimal  `db:"tax_value" json:"tax_value"`
	DiscountAmount decimal.Decimal  `db:"discount_amount" json:"discount_amount"`
	DiscountMode   types.ChargeMode `db:"discount_mode" json:"discount_mode"`
	DiscountValue  decimal.Decimal  `db:"discount_value" json:"discount_value"`
	GrandTotal     decimal.Decimal  `db:"grand_total" json:"grand_total"`
	PaidAmount     decimal.Decimal  `db:"paid_amount" json:"paid_amount"`
	DueAmount      decimal.Decimal  `db:"due_amount" json:"due_amount"`

	PaymentType      types.PaymentType `db:"payment_type" json:"payment_type"`
	PaymentReference string            `db:"payment_reference" json:"payment_reference,omitempty"`
	Notes            string            `db:"notes" json:"notes,omitempty"`
	PrintFormat      types.PrintFormat `db:"print_format" json:"print_format"`

	LineItems []*InvoiceLineItem `db:"-" json:"line_items"`

	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Totals returns the committed amounts in the same shape CalculateTotals produces
func (i *Invoice) Totals() Totals {
	return Totals{
		SubTotal:      i.SubTotal,
		Shipping:      i.ShippingCost,
		TaxValue:      i.TaxValue,
		DiscountValue: i.DiscountValue,
		GrandTotal:    i.GrandTotal,
		Paid:          i.PaidAmount,
		Due:           i.DueAmount,
	}
}

// ItemCount is the number of lines on the invoice
func (i *Invoice) ItemCount() int {
	return len(i.LineItems)
}

func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.InvoiceNumber) == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Invoice number is required").
			Mark(ierr.ErrValidation)
	}
	if i.CustomerID == "" {
		return ierr.WithError(ErrNoCustomer).
			WithHint("Please select a customer!").
			Mark(ierr.ErrValidation)
	}
	if len(i.LineItems) == 0 {
		return ierr.WithError(ErrNoItems).
			WithHint("Please add at least one item!").
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.LineItems {
		if item.Quantity <= 0 {
			return ierr.NewError("line item quantity must be positive").
				WithHint("Line item quantity must be positive").
				WithReportableDetails(map[string]any{
					"position": item.Position,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	if err := i.PaymentType.Validate(); err != nil {
		return err
	}
	return i.PrintFormat.Validate()
}
