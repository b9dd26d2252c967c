package testutil

import (
	"context"
	"sync"

	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository. FailSave makes Save
// fail so callers can exercise their persistence error paths.
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	mu      sync.RWMutex
	saveErr error
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.LineItems = lo.Map(inv.LineItems, func(item *invoice.InvoiceLineItem, _ int) *invoice.InvoiceLineItem {
		line := *item
		return &line
	})
	return &cp
}

func (s *InMemoryInvoiceStore) Save(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.RLock()
	saveErr := s.saveErr
	s.mu.RUnlock()
	if saveErr != nil {
		return saveErr
	}

	if _, ok := s.findByNumber(ctx, inv.InvoiceNumber); ok {
		return ierr.NewError("duplicate invoice number").
			WithHintf("Invoice %s already exists", inv.InvoiceNumber).
			Mark(ierr.ErrDatabase)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	inv, ok := s.findByNumber(ctx, invoiceNumber)
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s not found", invoiceNumber).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) findByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, bool) {
	return s.InMemoryStore.Find(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.InvoiceNumber == invoiceNumber
	}, nil)
}

// FailSave makes Save return err until called again with nil
func (s *InMemoryInvoiceStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

func (s *InMemoryInvoiceStore) Clear() {
	s.InMemoryStore.Clear()
	s.FailSave(nil)
}
