package dto

import (
	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/inventorypos/salesdesk/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SelectCustomerRequest selects the customer of the current draft by id or name
type SelectCustomerRequest struct {
	CustomerID   string `json:"customer_id" validate:"required_without=CustomerName"`
	CustomerName string `json:"customer_name" validate:"required_without=CustomerID"`
}

func (r *SelectCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// AddLineItemRequest adds a product to the current draft. When both the id
// and the name are given the id is tried first.
type AddLineItemRequest struct {
	ProductID   string `json:"product_id" validate:"required_without=ProductName"`
	ProductName string `json:"product_name" validate:"required_without=ProductID"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

func (r *AddLineItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateAdjustmentsRequest carries the adjustment fields as entered at the
// counter. Amounts are text; text that is not a number counts as zero.
type UpdateAdjustmentsRequest struct {
	Shipping         string `json:"shipping"`
	Tax              string `json:"tax"`
	TaxMode          string `json:"tax_mode"`
	Discount         string `json:"discount"`
	DiscountMode     string `json:"discount_mode"`
	Paid             string `json:"paid"`
	PaymentType      string `json:"payment_type"`
	PaymentReference string `json:"payment_reference" validate:"max=100"`
	Notes            string `json:"notes" validate:"max=1000"`
	PrintFormat      string `json:"print_format"`
}

func (r *UpdateAdjustmentsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CustomerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type ChargeResponse struct {
	Amount string           `json:"amount"`
	Mode   types.ChargeMode `json:"mode"`
}

// TotalsResponse holds the rounded totals formatted with two decimals
type TotalsResponse struct {
	SubTotal      string `json:"sub_total"`
	Shipping      string `json:"shipping"`
	TaxValue      string `json:"tax_value"`
	DiscountValue string `json:"discount_value"`
	GrandTotal    string `json:"grand_total"`
	Paid          string `json:"paid"`
	Due           string `json:"due"`
	Overpaid      bool   `json:"overpaid"`
}

type LineItemResponse struct {
	Index       int    `json:"index"`
	Ordinal     int    `json:"ordinal"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Barcode     string `json:"barcode"`
	Unit        string `json:"unit"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type DraftResponse struct {
	InvoiceNumber    string             `json:"invoice_number"`
	Customer         *CustomerSummary   `json:"customer,omitempty"`
	Arrears          string             `json:"arrears"`
	LineItems        []LineItemResponse `json:"line_items"`
	ItemCount        int                `json:"item_count"`
	TotalQuantity    int                `json:"total_quantity"`
	Tax              ChargeResponse     `json:"tax"`
	Discount         ChargeResponse     `json:"discount"`
	PaymentType      types.PaymentType  `json:"payment_type"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	PrintFormat      types.PrintFormat  `json:"print_format"`
	Totals           TotalsResponse     `json:"totals"`
}

type InvoiceResponse struct {
	*invoice.Invoice
	Totals TotalsResponse `json:"totals"`
}

func formatMoney(d decimal.Decimal) string {
	return types.RoundMoney(d).StringFixed(types.MoneyScale)
}

// NewTotalsResponse rounds t for display
func NewTotalsResponse(t invoice.Totals) TotalsResponse {
	rounded := t.Rounded()
	return TotalsResponse{
		SubTotal:      formatMoney(rounded.SubTotal),
		Shipping:      formatMoney(rounded.Shipping),
		TaxValue:      formatMoney(rounded.TaxValue),
		DiscountValue: formatMoney(rounded.DiscountValue),
		GrandTotal:    formatMoney(rounded.GrandTotal),
		Paid:          formatMoney(rounded.Paid),
		Due:           formatMoney(rounded.Due),
		Overpaid:      rounded.IsOverpaid(),
	}
}

func newCustomerSummary(c *customer.Customer) *CustomerSummary {
	if c == nil {
		return nil
	}
	return &CustomerSummary{ID: c.ID, Name: c.Name, City: c.City}
}

func NewDraftResponse(d *invoice.Draft) *DraftResponse {
	adj := d.Adjustments
	return &DraftResponse{
		InvoiceNumber: d.InvoiceNumber,
		Customer:      newCustomerSummary(d.Customer),
		Arrears:       formatMoney(d.Arrears),
		LineItems: lo.Map(d.LineItems, func(item invoice.LineItem, i int) LineItemResponse {
			return LineItemResponse{
				Index:       i,
				Ordinal:     i + 1,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Barcode:     item.Barcode,
				Unit:        item.Unit,
				Quantity:    item.Quantity,
				UnitPrice:   formatMoney(item.UnitPrice),
				Total:       formatMoney(item.Total()),
			}
		}),
		ItemCount:        d.ItemCount(),
		TotalQuantity:    d.TotalQuantity(),
		Tax:              ChargeResponse{Amount: adj.Tax.Amount.String(), Mode: adj.Tax.Mode},
		Discount:         ChargeResponse{Amount: adj.Discount.Amount.String(), Mode: adj.Discount.Mode},
		PaymentType:      adj.PaymentType,
		PaymentReference: adj.Reference(),
		Notes:            adj.Notes,
		PrintFormat:      d.PrintFormat,
		Totals:           NewTotalsResponse(d.Totals),
	}
}

// NewInvoiceResponse uses the totals stored on the committed invoice
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		Invoice: inv,
		Totals:  NewTotalsResponse(inv.Totals()),
	}
}
