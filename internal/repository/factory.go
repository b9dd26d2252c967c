package repository

import (
	"github.com/inventorypos/salesdesk/internal/cache"
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/domain/product"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
	postgresRepo "github.com/inventorypos/salesdesk/internal/repository/postgres"
)

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

// NewCustomerRepository returns the postgres repository behind a read-through
// cache when caching is enabled
func NewCustomerRepository(db *postgres.DB, c cache.Cache, cfg *config.Configuration, logger *logger.Logger) customer.Repository {
	repo := postgresRepo.NewCustomerRepository(db, logger)
	if !cfg.Cache.Enabled {
		return repo
	}
	return cache.NewCustomerRepository(repo, c, cfg.Cache.CustomerTTL, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewInvoiceNumberGenerator(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) invoice.NumberGenerator {
	return postgresRepo.NewInvoiceSequenceRepository(db, cfg, logger)
}
