package postgres

import (
	"context"
	"time"

	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
)

// invoiceSequenceRepository issues invoice numbers from a per-month counter
// row. The upsert is atomic, so concurrent counters never share a number.
type invoiceSequenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	prefix string
	now    func() time.Time
}

func NewInvoiceSequenceRepository(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) invoice.NumberGenerator {
	return &invoiceSequenceRepository{
		db:     db,
		logger: logger,
		prefix: cfg.Sales.InvoicePrefix,
		now:    time.Now,
	}
}

func (r *invoiceSequenceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	yearMonth := invoice.YearMonth(r.now())

	query := `
		INSERT INTO invoice_sequences (year_month, last_value, created_at, updated_at)
		VALUES ($1, 1, NOW(), NOW())
		ON CONFLICT (year_month) DO UPDATE
		SET last_value = invoice_sequences.last_value + 1,
			updated_at = NOW()
		RETURNING last_value`

	var value int64
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &value, query, yearMonth); err != nil {
		return "", wrapQueryError(err, "next invoice number", "", nil)
	}

	number := invoice.FormatInvoiceNumber(r.prefix, yearMonth, value)
	r.logger.Debugw("issued invoice number", "invoice_number", number, "year_month", yearMonth)
	return number, nil
}
