package cache

import (
	"context"
	"time"

	"github.com/inventorypos/salesdesk/internal/domain/customer"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/shopspring/decimal"
)

// customerRepository caches customer lookups. Arrears always go to the
// underlying repository since every committed invoice can change them.
type customerRepository struct {
	customer.Repository
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

func NewCustomerRepository(repo customer.Repository, c Cache, ttl time.Duration, logger *logger.Logger) customer.Repository {
	return &customerRepository{
		Repository: repo,
		cache:      c,
		ttl:        ttl,
		logger:     logger,
	}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if err := r.Repository.Create(ctx, c); err != nil {
		return err
	}
	r.cache.Delete(ctx, GenerateKey(PrefixCustomer, c.ID))
	r.cache.Delete(ctx, GenerateKey(PrefixCustomerName, c.Name))
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	key := GenerateKey(PrefixCustomer, id)
	if c, ok := r.get(ctx, key); ok {
		return c, nil
	}

	c, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, c)
	return c, nil
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*customer.Customer, error) {
	key := GenerateKey(PrefixCustomerName, name)
	if c, ok := r.get(ctx, key); ok {
		return c, nil
	}

	c, err := r.Repository.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, c)
	return c, nil
}

func (r *customerRepository) GetArrears(ctx context.Context, customerID string) (decimal.Decimal, error) {
	return r.Repository.GetArrears(ctx, customerID)
}

func (r *customerRepository) get(ctx context.Context, key string) (*customer.Customer, bool) {
	v, ok := r.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	c, ok := v.(*customer.Customer)
	if !ok {
		return nil, false
	}
	r.logger.Debugw("customer cache hit", "key", key)
	cp := *c
	return &cp, true
}

func (r *customerRepository) set(ctx context.Context, key string, c *customer.Customer) {
	cp := *c
	r.cache.Set(ctx, key, &cp, r.ttl)
}
