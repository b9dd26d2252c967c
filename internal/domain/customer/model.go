package customer

import (
	"strings"
	"time"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/shopspring/decimal"
)

// Customer represents a customer in the system
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the name of the customer
	Name string `db:"name" json:"name"`

	// City is shown next to the customer on the sales screen
	City string `db:"city" json:"city"`

	// OpeningBalance is the unpaid amount carried over from before the
	// customer's invoices were recorded here
	OpeningBalance decimal.Decimal `db:"opening_balance" json:"opening_balance"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return ierr.NewError("customer id and name are required").
			WithHint("Customer id and name are required").
			Mark(ierr.ErrValidation)
	}
	if c.OpeningBalance.IsNegative() {
		return ierr.NewError("opening balance must not be negative").
			WithHint("Opening balance must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
