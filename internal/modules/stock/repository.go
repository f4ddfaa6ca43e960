package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no item matches the id within the store.
	ErrNotFound = errors.New("stock item not found")
	// ErrConditionFailed is returned by conditional updates whose precondition did not hold.
	// It deliberately does not say which part of the condition failed.
	ErrConditionFailed = errors.New("stock item condition not met")
)

// Repository defines stock item storage. Every lookup is scoped to a store.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Item, error)
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Item, error)
	Update(ctx context.Context, storeID, id uuid.UUID, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) (*Item, error)

	// SetDiscount moves price to original_price and stores discountedPrice, only while no
	// discount is active and price still equals expectedPrice.
	SetDiscount(ctx context.Context, storeID, id uuid.UUID, expectedPrice, discountedPrice float64) (*Item, error)
	// ClearDiscount restores original_price, only while a discount is active.
	ClearDiscount(ctx context.Context, storeID, id uuid.UUID) (*Item, error)
	// DecrementQuantity subtracts qty in one atomic step, only when quantity >= qty.
	DecrementQuantity(ctx context.Context, storeID, id uuid.UUID, qty int) (*Item, error)
}
