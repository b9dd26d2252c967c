package testutil

import (
	"context"
	"time"

	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/domain/product"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/inventorypos/salesdesk/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory collaborators used by service tests
type Stores struct {
	ProductRepo     *InMemoryProductStore
	CustomerRepo    *InMemoryCustomerStore
	InvoiceRepo     *InMemoryInvoiceStore
	InvoiceSequence *InMemoryInvoiceSequence
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryEventPublisher
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		ProductRepo:     NewInMemoryProductStore(),
		CustomerRepo:    NewInMemoryCustomerStore(),
		InvoiceRepo:     NewInMemoryInvoiceStore(),
		InvoiceSequence: NewInMemoryInvoiceSequence(s.config.Sales.InvoicePrefix),
	}
	s.publisher = NewInMemoryEventPublisher()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.ProductRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.stores.InvoiceRepo.Clear()
	s.stores.InvoiceSequence.Clear()
	s.publisher.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the test event publisher
func (s *BaseServiceTestSuite) GetPublisher() *InMemoryEventPublisher {
	return s.publisher
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// CreateProduct stores a product with the given price and stock level
func (s *BaseServiceTestSuite) CreateProduct(id, name, price string, stock int) *product.Product {
	p := &product.Product{
		ID:            id,
		Name:          name,
		Barcode:       "BC-" + id,
		Unit:          "pcs",
		SellingPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
		CreatedAt:     s.now,
		UpdatedAt:     s.now,
	}
	s.Require().NoError(s.stores.ProductRepo.Create(s.ctx, p))
	return p
}

// CreateCustomer stores a customer with the given opening balance
func (s *BaseServiceTestSuite) CreateCustomer(id, name, city, openingBalance string) *customer.Customer {
	c := &customer.Customer{
		ID:             id,
		Name:           name,
		City:           city,
		OpeningBalance: decimal.RequireFromString(openingBalance),
		CreatedAt:      s.now,
		UpdatedAt:      s.now,
	}
	s.Require().NoError(s.stores.CustomerRepo.Create(s.ctx, c))
	return c
}
