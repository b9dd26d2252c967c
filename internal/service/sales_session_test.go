package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/inventorypos/salesdesk/internal/api/dto"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/testutil"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/stretchr/testify/suite"
)

type SalesSessionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SalesSessionService
}

func TestSalesSessionService(t *testing.T) {
	suite.Run(t, new(SalesSessionServiceSuite))
}

func (s *SalesSessionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewSalesSessionService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		ProductRepo:     stores.ProductRepo,
		CustomerRepo:    stores.CustomerRepo,
		InvoiceRepo:     stores.InvoiceRepo,
		NumberGenerator: stores.InvoiceSequence,
		EventPublisher:  s.GetPublisher(),
	})

	s.CreateProduct("prod_rice", "Rice 5kg", "12.40", 20)
	s.CreateProduct("prod_salt", "Salt", "0.85", 3)
	s.CreateCustomer("cust_amara", "Amara", "Colombo", "15.00")
}

func (s *SalesSessionServiceSuite) TestDraftLifecycle() {
	ctx := s.GetContext()

	draft, err := s.service.GetDraft(ctx)
	s.Require().NoError(err)
	s.NotEmpty(draft.InvoiceNumber)
	s.Nil(draft.Customer)
	s.Equal("0.00", draft.Totals.GrandTotal)
	s.Equal(types.PaymentTypeCash, draft.PaymentType)

	draft, err = s.service.SelectCustomer(ctx, dto.SelectCustomerRequest{CustomerName: "Amara"})
	s.Require().NoError(err)
	s.Equal("cust_amara", draft.Customer.ID)
	s.Equal("Colombo", draft.Customer.City)
	s.Equal("15.00", draft.Arrears)

	draft, err = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_rice", Quantity: 2})
	s.Require().NoError(err)
	draft, err = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductName: "Salt", Quantity: 3})
	s.Require().NoError(err)
	s.Equal(2, draft.ItemCount)
	s.Equal(5, draft.TotalQuantity)
	s.Equal(1, draft.LineItems[0].Ordinal)
	s.Equal("24.80", draft.LineItems[0].Total)
	s.Equal("2.55", draft.LineItems[1].Total)
	s.Equal("27.35", draft.Totals.SubTotal)

	draft, err = s.service.UpdateAdjustments(ctx, dto.UpdateAdjustmentsRequest{
		Shipping:     "2",
		Tax:          "8",
		TaxMode:      "%",
		Discount:     "1.35",
		DiscountMode: "Fixed",
		Paid:         "30",
		PrintFormat:  "short_invoice",
	})
	s.Require().NoError(err)
	// 27.35 + 2 + 2.188 - 1.35
	s.Equal("2.19", draft.Totals.TaxValue)
	s.Equal("30.19", draft.Totals.GrandTotal)
	s.Equal("0.19", draft.Totals.Due)
	s.Equal(types.PrintFormatShort, draft.PrintFormat)

	totals, err := s.service.GetTotals(ctx)
	s.Require().NoError(err)
	s.Equal(draft.Totals, *totals)

	number := draft.InvoiceNumber
	inv, err := s.service.Commit(ctx)
	s.Require().NoError(err)
	s.Equal(number, inv.InvoiceNumber)
	s.Equal("30.19", inv.Totals.GrandTotal)
	s.Equal(types.PrintFormatShort, inv.PrintFormat)

	found, err := s.service.GetInvoice(ctx, number)
	s.Require().NoError(err)
	s.Equal(inv.ID, found.ID)

	draft, err = s.service.GetDraft(ctx)
	s.Require().NoError(err)
	s.NotEqual(number, draft.InvoiceNumber)
	s.Empty(draft.LineItems)
}

func (s *SalesSessionServiceSuite) TestRequestValidation() {
	ctx := s.GetContext()

	_, err := s.service.SelectCustomer(ctx, dto.SelectCustomerRequest{})
	s.True(ierr.IsValidation(err))

	_, err = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_rice"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateAdjustments(ctx, dto.UpdateAdjustmentsRequest{PrintFormat: "POSTCARD"})
	s.True(ierr.IsValidation(err))
}

func (s *SalesSessionServiceSuite) TestErrorsLeaveDraftUnchanged() {
	ctx := s.GetContext()
	before, err := s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_salt", Quantity: 1})
	s.Require().NoError(err)

	_, err = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_salt", Quantity: 4})
	s.True(ierr.IsInsufficientStock(err))

	_, err = s.service.RemoveLineItem(ctx, 3)
	s.True(ierr.IsIndexOutOfRange(err))

	_, err = s.service.UpdateAdjustments(ctx, dto.UpdateAdjustmentsRequest{Paid: "-1"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.Commit(ctx)
	s.True(ierr.IsValidation(err))

	after, err := s.service.GetDraft(ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *SalesSessionServiceSuite) TestRemoveClearAndReset() {
	ctx := s.GetContext()
	_, err := s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_rice", Quantity: 1})
	s.Require().NoError(err)
	_, err = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_salt", Quantity: 1})
	s.Require().NoError(err)

	draft, err := s.service.RemoveLineItem(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(draft.LineItems, 1)
	s.Equal("prod_salt", draft.LineItems[0].ProductID)
	s.Equal(0, draft.LineItems[0].Index)

	draft, err = s.service.ClearLineItems(ctx)
	s.Require().NoError(err)
	s.Empty(draft.LineItems)

	number := draft.InvoiceNumber
	draft, err = s.service.Reset(ctx)
	s.Require().NoError(err)
	s.NotEqual(number, draft.InvoiceNumber)
}

func (s *SalesSessionServiceSuite) TestCountersHaveSeparateDrafts() {
	first := s.GetContext()
	second := context.WithValue(first, types.CtxCounterID, "counter_2")

	_, err := s.service.AddLineItem(first, dto.AddLineItemRequest{ProductID: "prod_rice", Quantity: 1})
	s.Require().NoError(err)

	a, err := s.service.GetDraft(first)
	s.Require().NoError(err)
	b, err := s.service.GetDraft(second)
	s.Require().NoError(err)

	s.Len(a.LineItems, 1)
	s.Empty(b.LineItems)
	s.NotEqual(a.InvoiceNumber, b.InvoiceNumber)
}

func (s *SalesSessionServiceSuite) TestConcurrentAddsAreSerialised() {
	ctx := s.GetContext()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.service.AddLineItem(ctx, dto.AddLineItemRequest{ProductID: "prod_rice", Quantity: 1})
		}()
	}
	wg.Wait()

	draft, err := s.service.GetDraft(ctx)
	s.Require().NoError(err)
	s.Equal(10, draft.ItemCount)
	s.Equal("124.00", draft.Totals.SubTotal)
}

func (s *SalesSessionServiceSuite) TestCounterLimit() {
	cfg := *s.GetConfig()
	cfg.Sales.MaxCounters = 2
	stores := s.GetStores()
	svc := NewSalesSessionService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          &cfg,
		ProductRepo:     stores.ProductRepo,
		CustomerRepo:    stores.CustomerRepo,
		InvoiceRepo:     stores.InvoiceRepo,
		NumberGenerator: stores.InvoiceSequence,
		EventPublisher:  s.GetPublisher(),
	})

	base := s.GetContext()
	for _, counter := range []string{"counter_1", "counter_2"} {
		_, err := svc.GetDraft(context.WithValue(base, types.CtxCounterID, counter))
		s.Require().NoError(err)
	}

	_, err := svc.GetDraft(context.WithValue(base, types.CtxCounterID, "counter_x"))
	s.True(ierr.IsInvalidOperation(err))

	// counters 1 and 2 hold numbers 1 and 2; the rejected counter took none
	draft, err := svc.Reset(context.WithValue(base, types.CtxCounterID, "counter_1"))
	s.Require().NoError(err)
	s.True(strings.HasSuffix(draft.InvoiceNumber, "-00003"), draft.InvoiceNumber)
}

func (s *SalesSessionServiceSuite) TestOutOfRangeAmountIsIgnored() {
	draft, err := s.service.UpdateAdjustments(s.GetContext(), dto.UpdateAdjustmentsRequest{
		Shipping: "1e200000000",
		Paid:     "4",
	})
	s.Require().NoError(err)
	s.Equal("0.00", draft.Totals.Shipping)
	s.Equal("4.00", draft.Totals.Paid)
}

func (s *SalesSessionServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "INV-209901-00001")
	s.True(ierr.IsNotFound(err))
}
