package store

import "context"

// Service defines the interface for store-related business logic.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Store, error)
	Get(ctx context.Context, storeID string) (*Store, error)
	Update(ctx context.Context, storeID string, req UpdateRequest) (*Store, error)
	Delete(ctx context.Context, storeID string) (*Store, error)
}
