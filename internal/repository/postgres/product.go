package postgres

import (
	"context"

	"github.com/inventorypos/salesdesk/internal/domain/product"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
)

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

const productColumns = `id, name, barcode, unit, default_capacity, selling_price, stock_quantity, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (
			:id, :name, :barcode, :unit, :default_capacity, :selling_price, :stock_quantity, :created_at, :updated_at
		)`

	r.logger.Debugw("creating product", "product_id", p.ID)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p); err != nil {
		return wrapQueryError(err, "create product", "", nil)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id); err != nil {
		return nil, wrapQueryError(err, "get product", "Product "+id+" not found!", map[string]any{
			"product_id": id,
		})
	}
	return &p, nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*product.Product, error) {
	var p product.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 ORDER BY id LIMIT 1`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, name); err != nil {
		return nil, wrapQueryError(err, "get product by name", "Product "+name+" not found!", map[string]any{
			"name": name,
		})
	}
	return &p, nil
}
