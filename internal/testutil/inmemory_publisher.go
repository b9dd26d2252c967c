package testutil

import (
	"context"
	"sync"

	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	"github.com/inventorypos/salesdesk/internal/publisher"
)

// InMemoryEventPublisher records the invoices it was asked to announce
type InMemoryEventPublisher struct {
	mu         sync.RWMutex
	invoices   []*invoice.Invoice
	publishErr error
}

var _ publisher.EventPublisher = (*InMemoryEventPublisher)(nil)

func NewInMemoryEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{}
}

func (p *InMemoryEventPublisher) PublishInvoiceCommitted(ctx context.Context, inv *invoice.Invoice) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.publishErr != nil {
		return p.publishErr
	}
	p.invoices = append(p.invoices, inv)
	return nil
}

// GetInvoices returns the invoices published so far
func (p *InMemoryEventPublisher) GetInvoices() []*invoice.Invoice {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*invoice.Invoice(nil), p.invoices...)
}

// FailPublish makes publishing return err until called again with nil
func (p *InMemoryEventPublisher) FailPublish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishErr = err
}

func (p *InMemoryEventPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invoices = nil
	p.publishErr = nil
}
