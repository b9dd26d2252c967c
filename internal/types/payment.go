package types

import (
	"strings"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/samber/lo"
)

// PaymentType is the tender used to settle an invoice
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "CASH"
	PaymentTypeCard   PaymentType = "CARD"
	PaymentTypeCheque PaymentType = "CHEQUE"
	PaymentTypeOnline PaymentType = "ONLINE"
)

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeCash,
		PaymentTypeCard,
		PaymentTypeCheque,
		PaymentTypeOnline,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment type").
			WithHint("Please provide a valid payment type").
			WithReportableDetails(map[string]any{
				"allowed":      allowed,
				"payment_type": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HasReference reports whether the payment type carries a reference such as a cheque number
func (p PaymentType) HasReference() bool {
	return p == PaymentTypeCheque || p == PaymentTypeOnline
}

// ParsePaymentType normalises user input, e.g. "cheque" -> CHEQUE
func ParsePaymentType(s string) PaymentType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PaymentTypeCash
	}
	return PaymentType(s)
}
