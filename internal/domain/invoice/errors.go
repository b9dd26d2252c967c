package invoice

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoCustomer is the reason a draft without a selected customer cannot be committed
	ErrNoCustomer = errors.New("no customer")

	// ErrNoItems is the reason a draft without line items cannot be committed
	ErrNoItems = errors.New("no items")
)
