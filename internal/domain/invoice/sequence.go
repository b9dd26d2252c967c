package invoice

import (
	"fmt"
	"time"
)

// InvoiceSequence is the invoice number counter for one calendar month
type InvoiceSequence struct {
	YearMonth string    `db:"year_month"`
	LastValue int64     `db:"last_value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// YearMonth formats t as the sequence key, e.g. 202610
func YearMonth(t time.Time) string {
	return t.UTC().Format("200601")
}

// FormatInvoiceNumber renders a number such as INV-202610-00042
func FormatInvoiceNumber(prefix, yearMonth string, value int64) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, yearMonth, value)
}
