package sale

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores sales. Records are append-only.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	ListByStock(ctx context.Context, storeID, stockID uuid.UUID) ([]*Sale, error)
	// ListByStore returns the store's sales, newest first.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Sale, error)
}
