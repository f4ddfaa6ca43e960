package stock

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	"github.com/georgemunganga/stockbook-backend/internal/platform/metrics"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/google/uuid"
)

// Service is the stock ledger: the only path that changes an item's quantity or price.
// Every operation is scoped to the store given as its first argument.
type Service interface {
	Create(ctx context.Context, storeID string, req CreateRequest) (*Item, error)
	Find(ctx context.Context, storeID string) ([]*Item, error)
	FindByID(ctx context.Context, storeID, stockID string) (*Item, error)
	Update(ctx context.Context, storeID, stockID string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, storeID, stockID string) (*Item, error)

	// ApplyDiscount reduces the price by percentage (0–100) and remembers the list price.
	ApplyDiscount(ctx context.Context, storeID, stockID string, percentage float64) (*Item, error)
	// RemoveDiscount restores the list price saved by ApplyDiscount.
	RemoveDiscount(ctx context.Context, storeID, stockID string) (*Item, error)

	// DecrementForSale atomically takes quantity units out of stock and returns the
	// post-decrement item. Missing item, foreign store and insufficient stock all
	// surface as the same Conflict.
	DecrementForSale(ctx context.Context, storeID, stockID string, quantity int) (*Item, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a new stock service. m may be nil.
func NewService(repo Repository, m *metrics.Metrics) Service {
	return &service{repo: repo, metrics: m, now: time.Now}
}

func (s *service) Create(ctx context.Context, storeID string, req CreateRequest) (*Item, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, errx.Validation("invalid store id")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errx.Validation("name is required")
	}
	if req.Quantity < 0 {
		return nil, errx.Validation("quantity cannot be negative")
	}
	if req.Quantity > MaxQuantity {
		return nil, errx.Validation("quantity is too large")
	}
	if req.Price < 0 || math.IsNaN(req.Price) {
		return nil, errx.Validation("price cannot be negative")
	}
	if math.IsInf(req.Price, 1) || roundPrice(req.Price) > MaxPrice {
		return nil, errx.Validation("price is too large")
	}
	price := roundPrice(req.Price)

	now := s.now().UTC()
	item := &Item{
		ID:            uuid.New(),
		StoreID:       sid,
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Quantity:      req.Quantity,
		Price:         price,
		OriginalPrice: price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Find(ctx context.Context, storeID string) ([]*Item, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, errx.NotFound("store not found")
	}
	return s.repo.ListByStore(ctx, sid)
}

func (s *service) FindByID(ctx context.Context, storeID, stockID string) (*Item, error) {
	sid, id, err := parseIDs(storeID, stockID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, sid, id)
	return item, translate(err)
}

func (s *service) Update(ctx context.Context, storeID, stockID string, req UpdateRequest) (*Item, error) {
	sid, id, err := parseIDs(storeID, stockID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errx.Validation("invalid name")
		}
		req.Name = &name
	}
	if req.Quantity != nil && (*req.Quantity < 0 || *req.Quantity > MaxQuantity) {
		return nil, errx.Validation("invalid quantity")
	}
	if req.Price != nil {
		if *req.Price < 0 || math.IsNaN(*req.Price) || math.IsInf(*req.Price, 1) {
			return nil, errx.Validation("invalid price")
		}
		price := roundPrice(*req.Price)
		if price > MaxPrice {
			return nil, errx.Validation("invalid price")
		}
		req.Price = &price
	}

	item, err := s.repo.Update(ctx, sid, id, req)
	if err != nil {
		return nil, translate(err)
	}
	if req.Price != nil {
		logx.Debug().Str("store_id", storeID).Str("stock_id", stockID).Float64("price", item.Price).
			Msg("price edited, discount cleared")
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, storeID, stockID string) (*Item, error) {
	sid, id, err := parseIDs(storeID, stockID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Delete(ctx, sid, id)
	if err != nil {
		return nil, translate(err)
	}
	s.metrics.StockDeleted()
	logx.Info().Str("store_id", storeID).Str("stock_id", stockID).Msg("stock item deleted")
	return item, nil
}

func (s *service) ApplyDiscount(ctx context.Context, storeID, stockID string, percentage float64) (*Item, error) {
	if math.IsNaN(percentage) || percentage < 0 || percentage > 100 {
		return nil, errx.Validation("percentage must be between 0 and 100")
	}
	sid, id, err := parseIDs(storeID, stockID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, sid, id)
	if err != nil {
		return nil, translate(err)
	}
	if current.IsDiscountActive {
		return nil, errx.Conflict("discount already applied")
	}

	// Compare-and-swap on the price we computed from; a concurrent edit makes it fail.
	item, err := s.repo.SetDiscount(ctx, sid, id, current.Price, discountedPrice(current.Price, percentage))
	if errors.Is(err, ErrConditionFailed) {
		latest, gerr := s.repo.GetByID(ctx, sid, id)
		if gerr != nil {
			return nil, translate(gerr)
		}
		if latest.IsDiscountActive {
			return nil, errx.Conflict("discount already applied")
		}
		return nil, errx.Conflict("stock price changed concurrently, retry")
	}
	if err != nil {
		return nil, err
	}

	s.metrics.DiscountChanged("applied")
	logx.Info().Str("store_id", storeID).Str("stock_id", stockID).
		Float64("percentage", percentage).Float64("price", item.Price).Msg("discount applied")
	return item, nil
}

func (s *service) RemoveDiscount(ctx context.Context, storeID, stockID string) (*Item, error) {
	sid, id, err := parseIDs(storeID, stockID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.ClearDiscount(ctx, sid, id)
	if errors.Is(err, ErrConditionFailed) {
		// The extra read only picks the error; the transition was already refused atomically.
		if _, gerr := s.repo.GetByID(ctx, sid, id); gerr != nil {
			return nil, translate(gerr)
		}
		return nil, errx.Conflict("no active discount for this stock")
	}
	if err != nil {
		return nil, err
	}

	s.metrics.DiscountChanged("removed")
	logx.Info().Str("store_id", storeID).Str("stock_id", stockID).Msg("discount removed")
	return item, nil
}

func (s *service) DecrementForSale(ctx context.Context, storeID, stockID string, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, errx.Validation("invalid quantity")
	}
	sid, sidErr := uuid.Parse(storeID)
	id, idErr := uuid.Parse(stockID)
	if sidErr != nil || idErr != nil {
		return nil, errx.Conflict("insufficient stock or stock not found")
	}

	item, err := s.repo.DecrementQuantity(ctx, sid, id, quantity)
	if errors.Is(err, ErrConditionFailed) {
		return nil, errx.Wrap(err, errx.KindConflict, "insufficient stock or stock not found")
	}
	return item, err
}

func parseIDs(storeID, stockID string) (uuid.UUID, uuid.UUID, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errx.NotFound("no stock found for this store")
	}
	id, err := uuid.Parse(stockID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errx.NotFound("no stock found for this store")
	}
	return sid, id, nil
}

func translate(err error) error {
	if errors.Is(err, ErrNotFound) {
		return errx.Wrap(err, errx.KindNotFound, "no stock found for this store")
	}
	return err
}
