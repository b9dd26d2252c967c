package postgres

import (
	"context"

	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

const customerColumns = `id, name, city, opening_balance, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES (:id, :name, :city, :opening_balance, :created_at, :updated_at)`

	r.logger.Debugw("creating customer", "customer_id", c.ID)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return wrapQueryError(err, "create customer", "", nil)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id); err != nil {
		return nil, wrapQueryError(err, "get customer", "Customer "+id+" not found!", map[string]any{
			"customer_id": id,
		})
	}
	return &c, nil
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1 ORDER BY id LIMIT 1`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, name); err != nil {
		return nil, wrapQueryError(err, "get customer by name", "Customer "+name+" not found!", map[string]any{
			"name": name,
		})
	}
	return &c, nil
}

// GetArrears is the opening balance plus whatever is still due on the
// customer's invoices. Overpaid invoices do not reduce it.
func (r *customerRepository) GetArrears(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var arrears decimal.Decimal
	query := `
		SELECT c.opening_balance + COALESCE((
			SELECT SUM(i.due_amount) FROM invoices i
			WHERE i.customer_id = c.id AND i.due_amount > 0
		), 0)
		FROM customers c
		WHERE c.id = $1`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &arrears, query, customerID); err != nil {
		return decimal.Zero, wrapQueryError(err, "get customer arrears", "Customer "+customerID+" not found!", map[string]any{
			"customer_id": customerID,
		})
	}
	return arrears, nil
}
