package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("store not found")
	ErrDuplicateEmail = errors.New("store email already registered")
)

// Repository defines the interface for store data storage.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	GetByEmail(ctx context.Context, email string) (*Store, error)
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id uuid.UUID) (*Store, error)
}
