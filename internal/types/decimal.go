package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places amounts are displayed and stored with
const MoneyScale int32 = 2

const (
	// maxAmountTextLen bounds what the sales screen can submit as an amount
	maxAmountTextLen = 32
	// exponents outside this range are not money and would make rounding
	// expand the coefficient to an arbitrary number of digits
	minAmountExponent int32 = -10
	maxAmountExponent int32 = 15
)

// ParseAmount parses user entered numeric text. Empty, malformed or
// out-of-range text is treated as not yet entered and yields zero.
func ParseAmount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxAmountTextLen {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero
	}
	return d
}

// RoundMoney rounds half away from zero to MoneyScale places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
