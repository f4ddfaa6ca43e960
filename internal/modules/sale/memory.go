package sale

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.RWMutex
	sales []*Sale
	refs  map[string]struct{}
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepo{refs: make(map[string]struct{})}
}

func (r *memoryRepo) Create(_ context.Context, s *Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refs[s.Reference]; ok {
		return fmt.Errorf("insert sale: duplicate reference %s", s.Reference)
	}
	cp := *s
	r.sales = append(r.sales, &cp)
	r.refs[s.Reference] = struct{}{}
	return nil
}

func (r *memoryRepo) ListByStock(_ context.Context, storeID, stockID uuid.UUID) ([]*Sale, error) {
	return r.filter(func(s *Sale) bool { return s.StoreID == storeID && s.StockID == stockID }), nil
}

func (r *memoryRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]*Sale, error) {
	return r.filter(func(s *Sale) bool { return s.StoreID == storeID }), nil
}

// filter returns copies, newest first. Sales with equal timestamps keep reverse insertion order.
func (r *memoryRepo) filter(keep func(*Sale) bool) []*Sale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sale, 0)
	for i := len(r.sales) - 1; i >= 0; i-- {
		if keep(r.sales[i]) {
			cp := *r.sales[i]
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
