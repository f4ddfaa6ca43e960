package stock

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumnNames = []string{
	"id", "store_id", "name", "description", "quantity", "price",
	"original_price", "is_discount_active", "created_at", "updated_at",
}

func itemRow(id, storeID uuid.UUID, qty int, price, original float64, discount bool) *sqlmock.Rows {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(itemColumnNames).
		AddRow(id.String(), storeID.String(), "Notebook", "A5 ruled", qty, price, original, discount, now, now)
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresDecrementQuantity(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SET quantity = quantity - $3, updated_at = NOW() WHERE id=$1 AND store_id=$2 AND quantity >= $3")).
		WithArgs(id, storeID, 3).
		WillReturnRows(itemRow(id, storeID, 7, 50, 100, true))

	item, err := repo.DecrementQuantity(context.Background(), storeID, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
	assert.Equal(t, 50.0, item.Price)
	assert.Equal(t, id, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDecrementQuantityConditionFailed(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("quantity >= $3")).
		WithArgs(id, storeID, 5).
		WillReturnRows(sqlmock.NewRows(itemColumnNames))

	_, err := repo.DecrementQuantity(context.Background(), storeID, id, 5)
	assert.ErrorIs(t, err, ErrConditionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM stock_items WHERE id=$1 AND store_id=$2")).
		WithArgs(id, storeID).
		WillReturnRows(sqlmock.NewRows(itemColumnNames))

	_, err := repo.GetByID(context.Background(), storeID, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSetDiscountIsConditional(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SET original_price = price, price = $3, is_discount_active = TRUE, updated_at = NOW() WHERE id=$1 AND store_id=$2 AND is_discount_active = FALSE AND price = $4")).
		WithArgs(id, storeID, 80.0, 100.0).
		WillReturnRows(itemRow(id, storeID, 4, 80, 100, true))

	item, err := repo.SetDiscount(context.Background(), storeID, id, 100, 80)
	require.NoError(t, err)
	assert.True(t, item.IsDiscountActive)
	assert.Equal(t, 100.0, item.OriginalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClearDiscountConditionFailed(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("AND is_discount_active = TRUE")).
		WithArgs(id, storeID).
		WillReturnRows(sqlmock.NewRows(itemColumnNames))

	_, err := repo.ClearDiscount(context.Background(), storeID, id)
	assert.ErrorIs(t, err, ErrConditionFailed)
}

func TestPostgresUpdateWithPriceResetsDiscount(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()
	price := 42.0

	mock.ExpectQuery(regexp.QuoteMeta("original_price = COALESCE($6, original_price)")).
		WithArgs(id, storeID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(itemRow(id, storeID, 4, 42, 42, false))

	item, err := repo.Update(context.Background(), storeID, id, UpdateRequest{Price: &price})
	require.NoError(t, err)
	assert.False(t, item.IsDiscountActive)
	assert.Equal(t, 42.0, item.OriginalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteReturnsSnapshot(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM stock_items WHERE id=$1 AND store_id=$2 RETURNING")).
		WithArgs(id, storeID).
		WillReturnRows(itemRow(id, storeID, 4, 10, 10, false))

	item, err := repo.Delete(context.Background(), storeID, id)
	require.NoError(t, err)
	assert.Equal(t, "Notebook", item.Name)
}

func TestPostgresListByStoreEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	storeID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM stock_items WHERE store_id=$1 ORDER BY created_at DESC")).
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows(itemColumnNames))

	items, err := repo.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
