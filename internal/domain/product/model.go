package product

import (
	"strings"
	"time"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as seen by the sales desk
type Product struct {
	// ID is the catalog identifier typed or scanned at the counter
	ID string `db:"id" json:"id"`

	// Name is the display name, unique within the catalog
	Name string `db:"name" json:"name"`

	// Barcode printed on the item
	Barcode string `db:"barcode" json:"barcode"`

	// Unit is the unit label, e.g. "pcs" or "kg"
	Unit string `db:"unit" json:"unit"`

	// DefaultCapacity is the packaging size offered with the product
	DefaultCapacity string `db:"default_capacity" json:"default_capacity"`

	// SellingPrice per unit, 2-scale currency
	SellingPrice decimal.Decimal `db:"selling_price" json:"selling_price"`

	// StockQuantity currently on hand
	StockQuantity int `db:"stock_quantity" json:"stock_quantity"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasStock reports whether quantity units can be sold from the current stock level
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.StockQuantity
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return ierr.NewError("product id and name are required").
			WithHint("Product id and name are required").
			Mark(ierr.ErrValidation)
	}
	if p.SellingPrice.IsNegative() {
		return ierr.NewError("selling price must not be negative").
			WithHint("Selling price must not be negative").
			WithReportableDetails(map[string]any{
				"selling_price": p.SellingPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if p.StockQuantity < 0 {
		return ierr.NewError("stock quantity must not be negative").
			WithHint("Stock quantity must not be negative").
			WithReportableDetails(map[string]any{
				"stock_quantity": p.StockQuantity,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
