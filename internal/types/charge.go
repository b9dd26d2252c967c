package types

import (
	"strings"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/samber/lo"
)

// ChargeMode says how a tax or discount amount is applied to the sub total
type ChargeMode string

const (
	// ChargeModePercentage applies the amount as a percentage of the sub total
	ChargeModePercentage ChargeMode = "percentage"
	// ChargeModeFixed applies the amount as a flat value
	ChargeModeFixed ChargeMode = "fixed"
)

func (m ChargeMode) String() string {
	return string(m)
}

func (m ChargeMode) Validate() error {
	allowed := []ChargeMode{
		ChargeModePercentage,
		ChargeModeFixed,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid charge mode").
			WithHint("Please provide a valid tax or discount mode").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"mode":    m,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ParseChargeMode maps the labels offered on the sales screen ("%" and
// "Fixed") as well as the mode names to a ChargeMode. Empty input means
// percentage, the screen's default.
func ParseChargeMode(s string) ChargeMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "%", string(ChargeModePercentage):
		return ChargeModePercentage
	case string(ChargeModeFixed):
		return ChargeModeFixed
	}
	return ChargeMode(s)
}
