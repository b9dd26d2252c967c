package cache

import (
	"context"
	"testing"
	"time"

	"github.com/inventorypos/salesdesk/internal/domain/customer"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// countingCustomerRepo counts lookups that reach the underlying store
type countingCustomerRepo struct {
	*testutil.InMemoryCustomerStore
	byID   int
	byName int
}

func (r *countingCustomerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.byID++
	return r.InMemoryCustomerStore.GetByID(ctx, id)
}

func (r *countingCustomerRepo) GetByName(ctx context.Context, name string) (*customer.Customer, error) {
	r.byName++
	return r.InMemoryCustomerStore.GetByName(ctx, name)
}

type CustomerCacheSuite struct {
	testutil.BaseServiceTestSuite
	store *countingCustomerRepo
	repo  customer.Repository
}

func TestCustomerCache(t *testing.T) {
	suite.Run(t, new(CustomerCacheSuite))
}

func (s *CustomerCacheSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.store = &countingCustomerRepo{InMemoryCustomerStore: s.GetStores().CustomerRepo}
	s.repo = NewCustomerRepository(s.store, NewInMemoryCache(s.GetConfig()), time.Minute, s.GetLogger())
	s.CreateCustomer("cust_nimal", "Nimal", "Kandy", "12.50")
}

func (s *CustomerCacheSuite) TestLookupsAreCached() {
	ctx := s.GetContext()

	for i := 0; i < 3; i++ {
		c, err := s.repo.GetByID(ctx, "cust_nimal")
		s.Require().NoError(err)
		s.Equal("Nimal", c.Name)
	}
	s.Equal(1, s.store.byID)

	for i := 0; i < 2; i++ {
		c, err := s.repo.GetByName(ctx, "Nimal")
		s.Require().NoError(err)
		s.Equal("cust_nimal", c.ID)
	}
	s.Equal(1, s.store.byName)
}

func (s *CustomerCacheSuite) TestCachedValueIsACopy() {
	ctx := s.GetContext()

	c, err := s.repo.GetByID(ctx, "cust_nimal")
	s.Require().NoError(err)
	c.City = "Galle"

	again, err := s.repo.GetByID(ctx, "cust_nimal")
	s.Require().NoError(err)
	s.Equal("Kandy", again.City)
}

func (s *CustomerCacheSuite) TestNotFoundIsNotCached() {
	ctx := s.GetContext()

	_, err := s.repo.GetByID(ctx, "cust_missing")
	s.True(ierr.IsNotFound(err))
	_, err = s.repo.GetByID(ctx, "cust_missing")
	s.True(ierr.IsNotFound(err))
	s.Equal(2, s.store.byID)
}

func (s *CustomerCacheSuite) TestArrearsBypassCache() {
	ctx := s.GetContext()

	arrears, err := s.repo.GetArrears(ctx, "cust_nimal")
	s.Require().NoError(err)
	s.True(arrears.Equal(decimal.RequireFromString("12.50")))

	s.store.AddArrears("cust_nimal", decimal.RequireFromString("7.25"))
	arrears, err = s.repo.GetArrears(ctx, "cust_nimal")
	s.Require().NoError(err)
	s.True(arrears.Equal(decimal.RequireFromString("19.75")))
}

func (s *CustomerCacheSuite) TestCreateInvalidatesKeys() {
	ctx := s.GetContext()

	_, err := s.repo.GetByName(ctx, "Sunil")
	s.True(ierr.IsNotFound(err))

	s.Require().NoError(s.repo.Create(ctx, &customer.Customer{
		ID:             "cust_sunil",
		Name:           "Sunil",
		OpeningBalance: decimal.Zero,
	}))

	c, err := s.repo.GetByName(ctx, "Sunil")
	s.Require().NoError(err)
	s.Equal("cust_sunil", c.ID)
}
