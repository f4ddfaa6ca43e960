package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/stockbook-backend/internal/platform/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockGormRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := database.OpenGorm(db)
	require.NoError(t, err)
	return NewGormRepository(gdb), mock
}

func TestGormCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockGormRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "stores"`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &Store{ID: uuid.New(), Email: "a@b.example", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGetByEmail(t *testing.T) {
	repo, mock := newMockGormRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stores" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "postal_code", "tax_id", "created_at", "updated_at"}).
			AddRow(id.String(), "Corner Shop", "a@b.example", "hash", "01001", "123", now, now))

	st, err := repo.GetByEmail(context.Background(), "a@b.example")
	require.NoError(t, err)
	assert.Equal(t, id, st.ID)
	assert.Equal(t, "hash", st.PasswordHash)
}

func TestGormGetByIDNotFound(t *testing.T) {
	repo, mock := newMockGormRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stores" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUpdateMissingRow(t *testing.T) {
	repo, mock := newMockGormRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "stores" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &Store{ID: uuid.New(), Email: "a@b.example", UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)
}
