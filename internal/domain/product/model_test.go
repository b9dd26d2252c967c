package product

import (
	"testing"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHasStock(t *testing.T) {
	p := &Product{ID: "prod_oil", Name: "Coconut Oil", StockQuantity: 5}

	assert.True(t, p.HasStock(1))
	assert.True(t, p.HasStock(5))
	assert.False(t, p.HasStock(6))
}

func TestValidate(t *testing.T) {
	valid := Product{ID: "prod_oil", Name: "Coconut Oil", SellingPrice: decimal.RequireFromString("6.75"), StockQuantity: 2}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = " "
	assert.True(t, ierr.IsValidation(noName.Validate()))

	negativePrice := valid
	negativePrice.SellingPrice = decimal.RequireFromString("-1")
	assert.True(t, ierr.IsValidation(negativePrice.Validate()))

	negativeStock := valid
	negativeStock.StockQuantity = -1
	assert.True(t, ierr.IsValidation(negativeStock.Validate()))
}
