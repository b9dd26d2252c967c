package product

import (
	"context"
)

// Repository is the catalog lookup used by the sales desk.
// Lookups return an error marked ierr.ErrNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
}
