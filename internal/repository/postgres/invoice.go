package postgres

import (
	"context"

	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `id, invoice_number, customer_id, customer_name, customer_city, invoice_date,
	sub_total, shipping_cost, tax_amount, tax_mode, tax_value, discount_amount, discount_mode, discount_value,
	grand_total, paid_amount, due_amount, payment_type, payment_reference, notes, print_format,
	created_by, created_at`

const lineItemColumns = `id, invoice_id, position, product_id, product_name, barcode, unit,
	quantity, unit_price, line_total, created_at`

// Save writes the header and every line in one transaction
func (r *invoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("saving invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"line_items", len(inv.LineItems),
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)

		headerQuery := `
			INSERT INTO invoices (` + invoiceColumns + `)
			VALUES (
				:id, :invoice_number, :customer_id, :customer_name, :customer_city, :invoice_date,
				:sub_total, :shipping_cost, :tax_amount, :tax_mode, :tax_value, :discount_amount, :discount_mode, :discount_value,
				:grand_total, :paid_amount, :due_amount, :payment_type, :payment_reference, :notes, :print_format,
				:created_by, :created_at
			)`
		if _, err := q.NamedExecContext(ctx, headerQuery, inv); err != nil {
			return wrapQueryError(err, "insert invoice", "", nil)
		}

		lineQuery := `
			INSERT INTO invoice_line_items (` + lineItemColumns + `)
			VALUES (
				:id, :invoice_id, :position, :product_id, :product_name, :barcode, :unit,
				:quantity, :unit_price, :line_total, :created_at
			)`
		for _, item := range inv.LineItems {
			if _, err := q.NamedExecContext(ctx, lineQuery, item); err != nil {
				return wrapQueryError(err, "insert invoice line item", "", nil)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.getOne(ctx, query, id, "Invoice "+id+" not found!", map[string]any{
		"invoice_id": id,
	})
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = $1`
	return r.getOne(ctx, query, invoiceNumber, "Invoice "+invoiceNumber+" not found!", map[string]any{
		"invoice_number": invoiceNumber,
	})
}

func (r *invoiceRepository) getOne(ctx context.Context, query string, arg string, hint string, details map[string]any) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)

	var inv invoice.Invoice
	if err := q.GetContext(ctx, &inv, query, arg); err != nil {
		return nil, wrapQueryError(err, "get invoice", hint, details)
	}

	lines := make([]*invoice.InvoiceLineItem, 0)
	linesQuery := `SELECT ` + lineItemColumns + ` FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	if err := q.SelectContext(ctx, &lines, linesQuery, inv.ID); err != nil {
		return nil, wrapQueryError(err, "list invoice line items", "", nil)
	}
	inv.LineItems = lines
	return &inv, nil
}
