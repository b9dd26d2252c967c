package service

import (
	"context"
	"strings"
	"sync"

	"github.com/inventorypos/salesdesk/internal/api/dto"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/types"
)

// SalesSessionService exposes the counter's invoice draft to the API. Each
// counter (see types.GetCounterID) has its own InvoiceBuilder.
type SalesSessionService interface {
	GetDraft(ctx context.Context) (*dto.DraftResponse, error)
	SelectCustomer(ctx context.Context, req dto.SelectCustomerRequest) (*dto.DraftResponse, error)
	AddLineItem(ctx context.Context, req dto.AddLineItemRequest) (*dto.DraftResponse, error)
	RemoveLineItem(ctx context.Context, index int) (*dto.DraftResponse, error)
	ClearLineItems(ctx context.Context) (*dto.DraftResponse, error)
	UpdateAdjustments(ctx context.Context, req dto.UpdateAdjustmentsRequest) (*dto.DraftResponse, error)
	GetTotals(ctx context.Context) (*dto.TotalsResponse, error)
	Commit(ctx context.Context) (*dto.InvoiceResponse, error)
	Reset(ctx context.Context) (*dto.DraftResponse, error)
	GetInvoice(ctx context.Context, invoiceNumber string) (*dto.InvoiceResponse, error)
}

type salesSessionService struct {
	ServiceParams

	mu       sync.Mutex
	builders map[string]*InvoiceBuilder
}

func NewSalesSessionService(params ServiceParams) SalesSessionService {
	return &salesSessionService{
		ServiceParams: params,
		builders:      make(map[string]*InvoiceBuilder),
	}
}

// builder returns the counter's builder, creating it on first use.
// The caller must hold s.mu.
func (s *salesSessionService) builder(ctx context.Context) (*InvoiceBuilder, error) {
	counterID := types.GetCounterID(ctx)
	if b, ok := s.builders[counterID]; ok {
		return b, nil
	}

	// every builder holds an issued invoice number, so unknown counters
	// must not be able to open drafts without limit
	if limit := s.Config.Sales.MaxCounters; limit > 0 && len(s.builders) >= limit {
		return nil, ierr.NewError("counter limit reached").
			WithHintf("No more than %d counters can be open at once", limit).
			WithReportableDetails(map[string]any{
				"counter_id":   counterID,
				"max_counters": limit,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	b, err := NewInvoiceBuilder(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}
	s.builders[counterID] = b
	s.Logger.Infow("opened sales session", "counter_id", counterID, "invoice_number", b.InvoiceNumber())
	return b, nil
}

// withBuilder runs fn against the counter's builder and returns the draft afterwards
func (s *salesSessionService) withBuilder(ctx context.Context, fn func(b *InvoiceBuilder) error) (*dto.DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.builder(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	return dto.NewDraftResponse(b.Draft()), nil
}

func (s *salesSessionService) GetDraft(ctx context.Context) (*dto.DraftResponse, error) {
	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		return nil
	})
}

func (s *salesSessionService) SelectCustomer(ctx context.Context, req dto.SelectCustomerRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		_, _, err := b.SelectCustomer(ctx, CustomerRef{
			ID:   req.CustomerID,
			Name: req.CustomerName,
		})
		return err
	})
}

func (s *salesSessionService) AddLineItem(ctx context.Context, req dto.AddLineItemRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		_, err := b.AddLineItem(ctx, ProductRef{
			ID:   req.ProductID,
			Name: req.ProductName,
		}, req.Quantity)
		return err
	})
}

func (s *salesSessionService) RemoveLineItem(ctx context.Context, index int) (*dto.DraftResponse, error) {
	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		return b.RemoveLineItem(index)
	})
}

func (s *salesSessionService) ClearLineItems(ctx context.Context) (*dto.DraftResponse, error) {
	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		b.ClearLineItems()
		return nil
	})
}

func (s *salesSessionService) UpdateAdjustments(ctx context.Context, req dto.UpdateAdjustmentsRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var printFormat types.PrintFormat
	if f := strings.TrimSpace(req.PrintFormat); f != "" {
		printFormat = types.PrintFormat(strings.ToUpper(f))
		if err := printFormat.Validate(); err != nil {
			return nil, err
		}
	}

	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		err := b.ApplyAdjustments(AdjustmentInput{
			Shipping:         req.Shipping,
			Tax:              req.Tax,
			TaxMode:          req.TaxMode,
			Discount:         req.Discount,
			DiscountMode:     req.DiscountMode,
			Paid:             req.Paid,
			PaymentType:      req.PaymentType,
			PaymentReference: req.PaymentReference,
			Notes:            req.Notes,
		})
		if err != nil {
			return err
		}
		if printFormat != "" {
			return b.SetPrintFormat(printFormat)
		}
		return nil
	})
}

func (s *salesSessionService) GetTotals(ctx context.Context) (*dto.TotalsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.builder(ctx)
	if err != nil {
		return nil, err
	}
	totals := dto.NewTotalsResponse(b.ComputeTotals())
	return &totals, nil
}

func (s *salesSessionService) Commit(ctx context.Context) (*dto.InvoiceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.builder(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := b.Commit(ctx)
	if inv == nil {
		return nil, err
	}
	if err != nil {
		// saved, but the next draft has no number yet; the next commit or
		// reset issues one
		s.Logger.Warnw("invoice saved without a follow-up number",
			"invoice_number", inv.InvoiceNumber,
			"error", err,
		)
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *salesSessionService) Reset(ctx context.Context) (*dto.DraftResponse, error) {
	return s.withBuilder(ctx, func(b *InvoiceBuilder) error {
		return b.Reset(ctx)
	})
}

func (s *salesSessionService) GetInvoice(ctx context.Context, invoiceNumber string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetByNumber(ctx, strings.TrimSpace(invoiceNumber))
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}
