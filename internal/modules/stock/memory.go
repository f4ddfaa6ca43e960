package stock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo keeps items in process memory. Every method holds the lock for its
// whole check-and-mutate step, which gives the same atomicity as the conditional
// UPDATEs of the PostgreSQL repository.
type memoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Item
	now   func() time.Time
}

// NewMemoryRepository creates an in-memory stock repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[uuid.UUID]*Item), now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memoryRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*Item, 0)
	for _, it := range r.items {
		if it.StoreID == storeID {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *memoryRepo) GetByID(_ context.Context, storeID, id uuid.UUID) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, storeID, id uuid.UUID, req UpdateRequest) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.Price != nil {
		it.Price = *req.Price
		it.OriginalPrice = *req.Price
		it.IsDiscountActive = false
	}
	it.UpdatedAt = r.now()
	cp := *it
	return &cp, nil
}

func (r *memoryRepo) Delete(_ context.Context, storeID, id uuid.UUID) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.items, id)
	return it, nil
}

func (r *memoryRepo) SetDiscount(_ context.Context, storeID, id uuid.UUID, expectedPrice, discountedPrice float64) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok || it.IsDiscountActive || it.Price != expectedPrice {
		return nil, ErrConditionFailed
	}
	it.OriginalPrice = it.Price
	it.Price = discountedPrice
	it.IsDiscountActive = true
	it.UpdatedAt = r.now()
	cp := *it
	return &cp, nil
}

func (r *memoryRepo) ClearDiscount(_ context.Context, storeID, id uuid.UUID) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok || !it.IsDiscountActive {
		return nil, ErrConditionFailed
	}
	it.Price = it.OriginalPrice
	it.IsDiscountActive = false
	it.UpdatedAt = r.now()
	cp := *it
	return &cp, nil
}

func (r *memoryRepo) DecrementQuantity(_ context.Context, storeID, id uuid.UUID, qty int) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.lookup(storeID, id)
	if !ok || it.Quantity < qty {
		return nil, ErrConditionFailed
	}
	it.Quantity -= qty
	it.UpdatedAt = r.now()
	cp := *it
	return &cp, nil
}

func (r *memoryRepo) lookup(storeID, id uuid.UUID) (*Item, bool) {
	it, ok := r.items[id]
	if !ok || it.StoreID != storeID {
		return nil, false
	}
	return it, true
}
