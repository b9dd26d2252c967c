package types

import (
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/samber/lo"
)

// PrintFormat is the layout a committed invoice is printed with
type PrintFormat string

const (
	PrintFormatFullA4 PrintFormat = "FULL_INVOICE_A4"
	PrintFormatA4     PrintFormat = "A4_INVOICE"
	PrintFormatA5     PrintFormat = "A5_INVOICE"
	PrintFormatShort  PrintFormat = "SHORT_INVOICE"
)

func (f PrintFormat) String() string {
	return string(f)
}

func (f PrintFormat) Validate() error {
	allowed := []PrintFormat{
		PrintFormatFullA4,
		PrintFormatA4,
		PrintFormatA5,
		PrintFormatShort,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid print format").
			WithHint("Please provide a valid invoice print format").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// InvoiceEventCommitted is published once an invoice has been persisted
	InvoiceEventCommitted = "invoice.committed"
)
