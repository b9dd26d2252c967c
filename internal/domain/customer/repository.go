package customer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByName(ctx context.Context, name string) (*Customer, error)
	// GetArrears returns the customer's outstanding balance from prior invoices
	GetArrears(ctx context.Context, customerID string) (decimal.Decimal, error)
}
