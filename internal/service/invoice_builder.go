package service

import (
	"context"
	"strings"
	"time"

	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/domain/product"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CustomerRef names a customer by id or by name
type CustomerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductRef names a catalog product by id or by name
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AdjustmentInput carries the adjustment fields as typed by the operator.
// Amounts that do not parse are taken as zero; negative amounts are rejected.
type AdjustmentInput struct {
	Shipping         string
	Tax              string
	TaxMode          string
	Discount         string
	DiscountMode     string
	Paid             string
	PaymentType      string
	PaymentReference string
	Notes            string
}

// InvoiceBuilder assembles one sales invoice at a time. It is not safe for
// concurrent use; callers serialise access (see SalesSessionService).
//
// Every operation either succeeds completely or leaves the draft as it was.
type InvoiceBuilder struct {
	ServiceParams

	invoiceNumber string
	customer      *customer.Customer
	arrears       decimal.Decimal
	items         []invoice.LineItem
	adjustments   invoice.Adjustments
	printFormat   types.PrintFormat
}

// NewInvoiceBuilder starts an empty draft with a freshly issued invoice number
func NewInvoiceBuilder(ctx context.Context, params ServiceParams) (*InvoiceBuilder, error) {
	b := &InvoiceBuilder{
		ServiceParams: params,
	}
	b.clearDraft()

	number, err := b.NumberGenerator.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to issue an invoice number").
			Mark(ierr.ErrSystem)
	}
	b.invoiceNumber = number

	b.Logger.Debugw("started invoice draft", "invoice_number", number)
	return b, nil
}

// SelectCustomer makes the referenced customer the active one and returns
// the customer's arrears from earlier invoices.
func (b *InvoiceBuilder) SelectCustomer(ctx context.Context, ref CustomerRef) (*customer.Customer, decimal.Decimal, error) {
	cust, err := b.resolveCustomer(ctx, ref)
	if err != nil {
		return nil, decimal.Zero, err
	}

	arrears, err := b.CustomerRepo.GetArrears(ctx, cust.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	b.customer = cust
	b.arrears = arrears

	b.Logger.Debugw("selected customer",
		"invoice_number", b.invoiceNumber,
		"customer_id", cust.ID,
		"arrears", arrears.String(),
	)
	return cust, arrears, nil
}

func (b *InvoiceBuilder) resolveCustomer(ctx context.Context, ref CustomerRef) (*customer.Customer, error) {
	id, name := strings.TrimSpace(ref.ID), strings.TrimSpace(ref.Name)
	if id == "" && name == "" {
		return nil, ierr.NewError("customer reference is empty").
			WithHint("Please select a customer!").
			Mark(ierr.ErrValidation)
	}

	if id != "" {
		cust, err := b.CustomerRepo.GetByID(ctx, id)
		if err == nil || !ierr.IsNotFound(err) || name == "" {
			return cust, err
		}
	}
	return b.CustomerRepo.GetByName(ctx, name)
}

// AddLineItem appends quantity units of the referenced product at its
// current selling price. Adding the same product twice yields two lines.
func (b *InvoiceBuilder) AddLineItem(ctx context.Context, ref ProductRef, quantity int) (*invoice.LineItem, error) {
	if quantity <= 0 {
		return nil, ierr.NewError("quantity must be positive").
			WithHint("Please enter a valid quantity!").
			WithReportableDetails(map[string]any{
				"quantity": quantity,
			}).
			Mark(ierr.ErrValidation)
	}

	p, err := b.resolveProduct(ctx, ref)
	if err != nil {
		return nil, err
	}

	// stock is checked, not reserved
	if !p.HasStock(quantity) {
		return nil, ierr.NewInsufficientStockError(p.ID, quantity, p.StockQuantity)
	}

	item := invoice.NewLineItem(p, quantity)
	b.items = append(b.items, item)

	b.Logger.Debugw("added line item",
		"invoice_number", b.invoiceNumber,
		"product_id", p.ID,
		"quantity", quantity,
		"unit_price", p.SellingPrice.String(),
	)
	return &item, nil
}

func (b *InvoiceBuilder) resolveProduct(ctx context.Context, ref ProductRef) (*product.Product, error) {
	id, name := strings.TrimSpace(ref.ID), strings.TrimSpace(ref.Name)
	if id == "" && name == "" {
		return nil, ierr.NewError("product reference is empty").
			WithHint("Please select a product!").
			Mark(ierr.ErrValidation)
	}

	if id != "" {
		p, err := b.ProductRepo.GetByID(ctx, id)
		if err == nil || !ierr.IsNotFound(err) || name == "" {
			return p, err
		}
	}
	return b.ProductRepo.GetByName(ctx, name)
}

// RemoveLineItem removes the line at the 0-based index
func (b *InvoiceBuilder) RemoveLineItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return ierr.NewError("line item index out of range").
			WithHint("Please select an item to remove!").
			WithReportableDetails(map[string]any{
				"index": index,
				"count": len(b.items),
			}).
			Mark(ierr.ErrIndexOutOfRange)
	}

	removed := b.items[index]
	b.items = append(b.items[:index:index], b.items[index+1:]...)

	b.Logger.Debugw("removed line item",
		"invoice_number", b.invoiceNumber,
		"index", index,
		"product_id", removed.ProductID,
	)
	return nil
}

// ClearLineItems drops every line item
func (b *InvoiceBuilder) ClearLineItems() {
	b.items = nil
}

func (b *InvoiceBuilder) SetShipping(amount decimal.Decimal) error {
	adj := b.adjustments
	adj.Shipping = amount
	return b.setAdjustments(adj)
}

func (b *InvoiceBuilder) SetTax(charge invoice.Charge) error {
	adj := b.adjustments
	adj.Tax = charge
	return b.setAdjustments(adj)
}

func (b *InvoiceBuilder) SetDiscount(charge invoice.Charge) error {
	adj := b.adjustments
	adj.Discount = charge
	return b.setAdjustments(adj)
}

func (b *InvoiceBuilder) SetPaidAmount(amount decimal.Decimal) error {
	adj := b.adjustments
	adj.Paid = amount
	return b.setAdjustments(adj)
}

// SetPayment sets the payment type and, for cheque and online payments, its reference
func (b *InvoiceBuilder) SetPayment(paymentType types.PaymentType, reference string) error {
	adj := b.adjustments
	adj.PaymentType = paymentType
	adj.PaymentReference = strings.TrimSpace(reference)
	return b.setAdjustments(adj)
}

func (b *InvoiceBuilder) SetNotes(notes string) {
	b.adjustments.Notes = notes
}

func (b *InvoiceBuilder) SetPrintFormat(format types.PrintFormat) error {
	if err := format.Validate(); err != nil {
		return err
	}
	b.printFormat = format
	return nil
}

// ApplyAdjustments replaces all adjustment fields at once from operator text
func (b *InvoiceBuilder) ApplyAdjustments(in AdjustmentInput) error {
	return b.setAdjustments(invoice.Adjustments{
		Shipping: types.ParseAmount(in.Shipping),
		Tax: invoice.Charge{
			Amount: types.ParseAmount(in.Tax),
			Mode:   types.ParseChargeMode(in.TaxMode),
		},
		Discount: invoice.Charge{
			Amount: types.ParseAmount(in.Discount),
			Mode:   types.ParseChargeMode(in.DiscountMode),
		},
		Paid:             types.ParseAmount(in.Paid),
		PaymentType:      types.ParsePaymentType(in.PaymentType),
		PaymentReference: strings.TrimSpace(in.PaymentReference),
		Notes:            in.Notes,
	})
}

func (b *InvoiceBuilder) setAdjustments(adj invoice.Adjustments) error {
	if err := adj.Validate(); err != nil {
		return err
	}
	b.adjustments = adj
	return nil
}

// ComputeTotals derives the invoice amounts from the current draft. It has
// no side effects; call Rounded on the result for display.
func (b *InvoiceBuilder) ComputeTotals() invoice.Totals {
	return invoice.CalculateTotals(b.items, b.adjustments)
}

// Commit persists the draft as an invoice and starts a new draft with the
// next invoice number. When saving fails the draft is kept for a retry.
func (b *InvoiceBuilder) Commit(ctx context.Context) (*invoice.Invoice, error) {
	if b.customer == nil {
		return nil, ierr.WithError(invoice.ErrNoCustomer).
			WithHint("Please select a customer!").
			Mark(ierr.ErrValidation)
	}
	if len(b.items) == 0 {
		return nil, ierr.WithError(invoice.ErrNoItems).
			WithHint("Please add at least one item!").
			Mark(ierr.ErrValidation)
	}
	if b.invoiceNumber == "" {
		// a previous commit saved but could not issue the next number
		if err := b.nextInvoiceNumber(ctx); err != nil {
			return nil, err
		}
	}

	inv := b.buildInvoice(ctx)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	span, saveCtx := b.Sentry.StartDBSpan(ctx, "invoice.save", map[string]interface{}{
		"invoice_number": inv.InvoiceNumber,
		"line_items":     inv.ItemCount(),
	})
	err := b.InvoiceRepo.Save(saveCtx, inv)
	if span != nil {
		span.Finish()
	}
	if err != nil {
		b.Logger.Errorw("failed to save invoice",
			"invoice_number", inv.InvoiceNumber,
			"error", err,
		)
		b.Sentry.CaptureException(err)
		return nil, ierr.WithError(err).
			WithHint("Failed to save the invoice, please try again").
			WithReportableDetails(map[string]any{
				"invoice_number": inv.InvoiceNumber,
			}).
			Mark(ierr.ErrPersistence)
	}

	b.Logger.Infow("committed invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID,
		"items", inv.ItemCount(),
		"grand_total", inv.GrandTotal.String(),
		"due", inv.DueAmount.String(),
	)
	b.Sentry.AddBreadcrumb("invoice", "committed invoice", map[string]interface{}{
		"invoice_number": inv.InvoiceNumber,
	})

	if b.EventPublisher != nil {
		if err := b.EventPublisher.PublishInvoiceCommitted(ctx, inv); err != nil {
			b.Logger.Errorw("failed to publish invoice event",
				"invoice_number", inv.InvoiceNumber,
				"error", err,
			)
		}
	}

	b.clearDraft()
	b.invoiceNumber = ""
	if err := b.nextInvoiceNumber(ctx); err != nil {
		return inv, err
	}
	return inv, nil
}

// Reset discards the draft and issues a new invoice number
func (b *InvoiceBuilder) Reset(ctx context.Context) error {
	if err := b.nextInvoiceNumber(ctx); err != nil {
		return err
	}
	b.clearDraft()
	return nil
}

func (b *InvoiceBuilder) nextInvoiceNumber(ctx context.Context) error {
	number, err := b.NumberGenerator.NextInvoiceNumber(ctx)
	if err != nil {
		b.Logger.Errorw("failed to issue invoice number", "error", err)
		return ierr.WithError(err).
			WithHint("Failed to issue the next invoice number").
			Mark(ierr.ErrSystem)
	}
	b.invoiceNumber = number
	return nil
}

func (b *InvoiceBuilder) clearDraft() {
	b.customer = nil
	b.arrears = decimal.Zero
	b.items = nil
	b.adjustments = invoice.DefaultAdjustments()
	b.printFormat = b.defaultPrintFormat()
}

func (b *InvoiceBuilder) defaultPrintFormat() types.PrintFormat {
	if b.Config != nil && b.Config.Sales.DefaultPrintFormat != "" {
		return b.Config.Sales.DefaultPrintFormat
	}
	return types.PrintFormatFullA4
}

func (b *InvoiceBuilder) buildInvoice(ctx context.Context) *invoice.Invoice {
	now := time.Now().UTC()
	totals := b.ComputeTotals().Rounded()
	invoiceID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)

	lines := lo.Map(b.items, func(item invoice.LineItem, i int) *invoice.InvoiceLineItem {
		return &invoice.InvoiceLineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   invoiceID,
			Position:    i + 1,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Barcode:     item.Barcode,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   types.RoundMoney(item.Total()),
			CreatedAt:   now,
		}
	})

	adj := b.adjustments
	return &invoice.Invoice{
		ID:               invoiceID,
		InvoiceNumber:    b.invoiceNumber,
		CustomerID:       b.customer.ID,
		CustomerName:     b.customer.Name,
		CustomerCity:     b.customer.City,
		InvoiceDate:      now,
		SubTotal:         totals.SubTotal,
		ShippingCost:     totals.Shipping,
		TaxAmount:        adj.Tax.Amount,
		TaxMode:          adj.Tax.Mode,
		TaxValue:         totals.TaxValue,
		DiscountAmount:   adj.Discount.Amount,
		DiscountMode:     adj.Discount.Mode,
		DiscountValue:    totals.DiscountValue,
		GrandTotal:       totals.GrandTotal,
		PaidAmount:       totals.Paid,
		DueAmount:        totals.Due,
		PaymentType:      adj.PaymentType,
		PaymentReference: adj.Reference(),
		Notes:            adj.Notes,
		PrintFormat:      b.printFormat,
		LineItems:        lines,
		CreatedBy:        types.GetOperatorID(ctx),
		CreatedAt:        now,
	}
}

func (b *InvoiceBuilder) InvoiceNumber() string {
	return b.invoiceNumber
}

// Customer returns the selected customer, nil before one is selected
func (b *InvoiceBuilder) Customer() *customer.Customer {
	return b.customer
}

func (b *InvoiceBuilder) Arrears() decimal.Decimal {
	return b.arrears
}

// LineItems returns a copy of the draft's lines in the order they were added
func (b *InvoiceBuilder) LineItems() []invoice.LineItem {
	return append([]invoice.LineItem(nil), b.items...)
}

func (b *InvoiceBuilder) ItemCount() int {
	return len(b.items)
}

// TotalQuantity is the sum of quantities over all lines
func (b *InvoiceBuilder) TotalQuantity() int {
	return invoice.TotalQuantity(b.items)
}

// Draft returns a snapshot of the current draft with unrounded totals
func (b *InvoiceBuilder) Draft() *invoice.Draft {
	return &invoice.Draft{
		InvoiceNumber: b.invoiceNumber,
		Customer:      b.customer,
		Arrears:       b.arrears,
		LineItems:     b.LineItems(),
		Adjustments:   b.adjustments,
		PrintFormat:   b.printFormat,
		Totals:        b.ComputeTotals(),
	}
}
