package sale

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/stockbook-backend/internal/platform/database"
	"github.com/google/uuid"
)

const saleColumns = `id, reference, stock_id, store_id, name, quantity, unit_price, total_price, created_at`

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL sale repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.Reference, s.StockID, s.StoreID, s.Name, s.Quantity, s.UnitPrice, s.TotalPrice, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByStock(ctx context.Context, storeID, stockID uuid.UUID) ([]*Sale, error) {
	return r.list(ctx, `
		SELECT `+saleColumns+`
		FROM sales WHERE store_id=$1 AND stock_id=$2 ORDER BY created_at DESC, seq DESC`, storeID, stockID)
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Sale, error) {
	return r.list(ctx, `
		SELECT `+saleColumns+`
		FROM sales WHERE store_id=$1 ORDER BY created_at DESC, seq DESC`, storeID)
}

func (r *postgresRepo) list(ctx context.Context, query string, args ...interface{}) ([]*Sale, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]*Sale, 0)
	for rows.Next() {
		s := &Sale{}
		if err := rows.Scan(&s.ID, &s.Reference, &s.StockID, &s.StoreID, &s.Name,
			&s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
