package store

import (
	"context"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// ProductStore supplies the raw product collection. Implementations may
// fail; callers treat a failure as "no new data" and keep whatever they
// already have.
type ProductStore interface {
	FetchProducts(ctx context.Context) ([]types.Product, error)
}

// StaticStore serves a fixed collection, used in tests and offline runs.
type StaticStore struct {
	Products []types.Product
	Err      error
}

func (s *StaticStore) FetchProducts(_ context.Context) ([]types.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}
