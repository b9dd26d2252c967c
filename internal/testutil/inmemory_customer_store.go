package testutil

import (
	"context"
	"sync"

	"github.com/inventorypos/salesdesk/internal/domain/customer"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/shopspring/decimal"
)

// InMemoryCustomerStore implements customer.Repository. Arrears are the
// opening balance plus whatever was recorded with AddArrears.
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]

	mu         sync.RWMutex
	arrears    map[string]decimal.Decimal
	arrearsErr error
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
		arrears:       make(map[string]decimal.Decimal),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Customer %s not found!", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetByName(ctx context.Context, name string) (*customer.Customer, error) {
	c, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, c *customer.Customer) bool {
		return c.Name == name
	}, func(i, j *customer.Customer) bool {
		return i.ID < j.ID
	})
	if !ok {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer %s not found!", name).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetArrears(ctx context.Context, customerID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.arrearsErr != nil {
		return decimal.Zero, s.arrearsErr
	}

	c, err := s.InMemoryStore.Get(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.OpeningBalance.Add(s.arrears[customerID]), nil
}

// AddArrears records an unpaid amount from an earlier invoice
func (s *InMemoryCustomerStore) AddArrears(customerID string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrears[customerID] = s.arrears[customerID].Add(amount)
}

// FailArrears makes GetArrears return err until called again with nil
func (s *InMemoryCustomerStore) FailArrears(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrearsErr = err
}

func (s *InMemoryCustomerStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrears = make(map[string]decimal.Decimal)
	s.arrearsErr = nil
}
