package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/inventorypos/salesdesk/internal/domain/invoice"
)

// InMemoryInvoiceSequence implements invoice.NumberGenerator with one counter per month
type InMemoryInvoiceSequence struct {
	mu      sync.Mutex
	prefix  string
	values  map[string]int64
	now     func() time.Time
	nextErr error
}

var _ invoice.NumberGenerator = (*InMemoryInvoiceSequence)(nil)

func NewInMemoryInvoiceSequence(prefix string) *InMemoryInvoiceSequence {
	return &InMemoryInvoiceSequence{
		prefix: prefix,
		values: make(map[string]int64),
		now:    time.Now,
	}
}

func (s *InMemoryInvoiceSequence) NextInvoiceNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextErr != nil {
		return "", s.nextErr
	}

	yearMonth := invoice.YearMonth(s.now())
	s.values[yearMonth]++
	return invoice.FormatInvoiceNumber(s.prefix, yearMonth, s.values[yearMonth]), nil
}

// SetClock replaces the time source used to pick the month
func (s *InMemoryInvoiceSequence) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailNext makes NextInvoiceNumber return err until called again with nil
func (s *InMemoryInvoiceSequence) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr = err
}

func (s *InMemoryInvoiceSequence) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]int64)
	s.nextErr = nil
	s.now = time.Now
}
