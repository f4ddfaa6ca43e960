package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Store
	byEmail map[string]uuid.UUID
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		byID:    make(map[uuid.UUID]*Store),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepo) Create(_ context.Context, s *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[s.Email]; ok {
		return ErrDuplicateEmail
	}
	cp := *s
	r.byID[s.ID] = &cp
	r.byEmail[s.Email] = s.ID
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (*Store, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryRepo) Update(_ context.Context, s *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[s.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.byEmail[s.Email]; taken && owner != s.ID {
		return ErrDuplicateEmail
	}
	delete(r.byEmail, current.Email)
	cp := *s
	r.byID[s.ID] = &cp
	r.byEmail[s.Email] = s.ID
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, s.Email)
	return s, nil
}
