package service

import (
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/domain/product"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/publisher"
	"github.com/inventorypos/salesdesk/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	ProductRepo  product.Repository
	CustomerRepo customer.Repository
	InvoiceRepo  invoice.Repository

	// Invoice numbering
	NumberGenerator invoice.NumberGenerator

	// Publishers
	EventPublisher publisher.EventPublisher

	// Error reporting, may be nil
	Sentry *sentry.Service
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	productRepo product.Repository,
	customerRepo customer.Repository,
	invoiceRepo invoice.Repository,
	numberGenerator invoice.NumberGenerator,
	eventPublisher publisher.EventPublisher,
	sentryService *sentry.Service,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		ProductRepo:     productRepo,
		CustomerRepo:    customerRepo,
		InvoiceRepo:     invoiceRepo,
		NumberGenerator: numberGenerator,
		EventPublisher:  eventPublisher,
		Sentry:          sentryService,
	}
}
