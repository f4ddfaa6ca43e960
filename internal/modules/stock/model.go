package stock

import (
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry owned by a single store.
// While IsDiscountActive is true, OriginalPrice holds the list price and Price the reduced one.
type Item struct {
	ID               uuid.UUID `json:"id"`
	StoreID          uuid.UUID `json:"store_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Quantity         int       `json:"quantity"`
	Price            float64   `json:"price"`
	OriginalPrice    float64   `json:"original_price"`
	IsDiscountActive bool      `json:"is_discount_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRequest holds data for adding an item to a store's catalog.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// UpdateRequest is a partial update; nil fields are left unchanged.
// Setting Price also resets OriginalPrice and cancels any active discount.
type UpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// DiscountRequest is the payload for applying a percentage discount. Percentage is required.
type DiscountRequest struct {
	Percentage *float64 `json:"percentage"`
}
