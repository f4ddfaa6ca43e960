package sale

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an immutable record of units sold. Name and UnitPrice are copies taken at
// the moment of sale; later edits to the stock item never change them.
type Sale struct {
	ID         uuid.UUID `json:"id"`
	Reference  string    `json:"reference"`
	StockID    uuid.UUID `json:"stock_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecordRequest struct {
	Quantity int `json:"quantity"`
}

// RecordedEvent is published after a sale commits.
type RecordedEvent struct {
	Type       string    `json:"type"`
	SaleID     string    `json:"sale_id"`
	Reference  string    `json:"reference"`
	StoreID    string    `json:"store_id"`
	StockID    string    `json:"stock_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	Remaining  int       `json:"remaining_quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventSaleRecorded = "sale.recorded"

func (e RecordedEvent) EventKey() string { return e.StoreID }
