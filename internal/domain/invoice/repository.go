package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Save persists the invoice with all of its line items, or nothing at all
	Save(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// GetByNumber retrieves an invoice by its invoice number
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
}

// NumberGenerator issues invoice numbers. Every call returns a new number.
type NumberGenerator interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
}
