package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/stockbook-backend/internal/platform/database"
	"github.com/google/uuid"
)

const itemColumns = `id, store_id, name, description, quantity, price, original_price, is_discount_active, created_at, updated_at`

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL stock repository. Calls made inside
// database.Transactor.WithinTransaction run on that transaction.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, item *Item) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO stock_items
		  (id, store_id, name, description, quantity, price, original_price, is_discount_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		item.ID, item.StoreID, item.Name, item.Description, item.Quantity,
		item.Price, item.OriginalPrice, item.IsDiscountActive, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Item, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM stock_items WHERE store_id=$1 ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM stock_items WHERE id=$1 AND store_id=$2`, id, storeID), ErrNotFound)
}

func (r *postgresRepo) Update(ctx context.Context, storeID, id uuid.UUID, req UpdateRequest) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE stock_items
		SET name               = COALESCE($3, name),
		    description        = COALESCE($4, description),
		    quantity           = COALESCE($5, quantity),
		    price              = COALESCE($6, price),
		    original_price     = COALESCE($6, original_price),
		    is_discount_active = CASE WHEN $6::numeric IS NULL THEN is_discount_active ELSE FALSE END,
		    updated_at         = NOW()
		WHERE id=$1 AND store_id=$2
		RETURNING `+itemColumns,
		id, storeID, nullString(req.Name), nullString(req.Description), nullInt(req.Quantity), nullFloat(req.Price)), ErrNotFound)
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id uuid.UUID) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		DELETE FROM stock_items WHERE id=$1 AND store_id=$2
		RETURNING `+itemColumns, id, storeID), ErrNotFound)
}

func (r *postgresRepo) SetDiscount(ctx context.Context, storeID, id uuid.UUID, expectedPrice, discountedPrice float64) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE stock_items
		SET original_price = price, price = $3, is_discount_active = TRUE, updated_at = NOW()
		WHERE id=$1 AND store_id=$2 AND is_discount_active = FALSE AND price = $4
		RETURNING `+itemColumns, id, storeID, discountedPrice, expectedPrice), ErrConditionFailed)
}

func (r *postgresRepo) ClearDiscount(ctx context.Context, storeID, id uuid.UUID) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE stock_items
		SET price = original_price, is_discount_active = FALSE, updated_at = NOW()
		WHERE id=$1 AND store_id=$2 AND is_discount_active = TRUE
		RETURNING `+itemColumns, id, storeID), ErrConditionFailed)
}

// DecrementQuantity is a single conditional UPDATE: the row lock and the re-checked
// WHERE clause make concurrent decrements serialize without a read-then-write window.
func (r *postgresRepo) DecrementQuantity(ctx context.Context, storeID, id uuid.UUID, qty int) (*Item, error) {
	return r.one(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE stock_items
		SET quantity = quantity - $3, updated_at = NOW()
		WHERE id=$1 AND store_id=$2 AND quantity >= $3
		RETURNING `+itemColumns, id, storeID, qty), ErrConditionFailed)
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) one(row rowScanner, noRows error) (*Item, error) {
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, noRows
	}
	return item, err
}

func scanItem(row rowScanner) (*Item, error) {
	item := &Item{}
	err := row.Scan(&item.ID, &item.StoreID, &item.Name, &item.Description, &item.Quantity,
		&item.Price, &item.OriginalPrice, &item.IsDiscountActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	return item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
