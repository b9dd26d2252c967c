package invoice

import (
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Charge is a tax or discount amount together with how it applies
type Charge struct {
	Amount decimal.Decimal  `json:"amount"`
	Mode   types.ChargeMode `json:"mode"`
}

func PercentageCharge(amount decimal.Decimal) Charge {
	return Charge{Amount: amount, Mode: types.ChargeModePercentage}
}

func FixedCharge(amount decimal.Decimal) Charge {
	return Charge{Amount: amount, Mode: types.ChargeModeFixed}
}

// Value resolves the charge against a sub total. Percentages are not rounded.
func (c Charge) Value(subTotal decimal.Decimal) decimal.Decimal {
	if c.Mode == types.ChargeModePercentage {
		return subTotal.Mul(c.Amount).Shift(-2)
	}
	return c.Amount
}

func (c Charge) validate(field string) error {
	if err := c.Mode.Validate(); err != nil {
		return err
	}
	if c.Amount.IsNegative() {
		return negativeAmountError(field, c.Amount)
	}
	return nil
}

// Adjustments are the operator-editable fields of a draft besides its items
type Adjustments struct {
	Shipping         decimal.Decimal   `json:"shipping"`
	Tax              Charge            `json:"tax"`
	Discount         Charge            `json:"discount"`
	Paid             decimal.Decimal   `json:"paid"`
	PaymentType      types.PaymentType `json:"payment_type"`
	PaymentReference string            `json:"payment_reference"`
	Notes            string            `json:"notes"`
}

// DefaultAdjustments is the state of a fresh draft: zero amounts, percentage
// tax and discount, cash payment.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		Shipping:    decimal.Zero,
		Tax:         PercentageCharge(decimal.Zero),
		Discount:    PercentageCharge(decimal.Zero),
		Paid:        decimal.Zero,
		PaymentType: types.PaymentTypeCash,
	}
}

func (a Adjustments) Validate() error {
	if a.Shipping.IsNegative() {
		return negativeAmountError("shipping", a.Shipping)
	}
	if a.Paid.IsNegative() {
		return negativeAmountError("paid", a.Paid)
	}
	if err := a.Tax.validate("tax"); err != nil {
		return err
	}
	if err := a.Discount.validate("discount"); err != nil {
		return err
	}
	return a.PaymentType.Validate()
}

// Reference returns the payment reference when the payment type carries one
func (a Adjustments) Reference() string {
	if a.PaymentType.HasReference() {
		return a.PaymentReference
	}
	return ""
}

func negativeAmountError(field string, amount decimal.Decimal) error {
	return ierr.NewError(field + " must not be negative").
		WithHintf("The %s amount must not be negative", field).
		WithReportableDetails(map[string]any{
			"field":  field,
			"amount": amount.String(),
		}).
		Mark(ierr.ErrValidation)
}
