package testutil

import (
	"context"

	"github.com/inventorypos/salesdesk/internal/domain/product"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) GetByID(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Product %s not found!", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) GetByName(ctx context.Context, name string) (*product.Product, error) {
	p, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, p *product.Product) bool {
		return p.Name == name
	}, func(i, j *product.Product) bool {
		return i.ID < j.ID
	})
	if !ok {
		return nil, ierr.NewError("product not found").
			WithHintf("Product %s not found!", name).
			WithReportableDetails(map[string]any{
				"name": name,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

// SetStock changes the stock level of a stored product
func (s *InMemoryProductStore) SetStock(ctx context.Context, id string, quantity int) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	cp := copyProduct(p)
	cp.StockQuantity = quantity
	return s.InMemoryStore.Update(ctx, id, cp)
}
