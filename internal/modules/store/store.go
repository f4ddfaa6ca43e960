package store

import (
	"time"

	"github.com/google/uuid"
)

// Store is a tenant: it owns its stock items and sales.
type Store struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PostalCode   string    `json:"postal_code"`
	TaxID        string    `json:"tax_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	PostalCode string `json:"postal_code"`
	TaxID      string `json:"tax_id"`
}

// UpdateRequest changes only the fields that are set. A new password is rehashed.
type UpdateRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	PostalCode *string `json:"postal_code"`
	TaxID      *string `json:"tax_id"`
}
