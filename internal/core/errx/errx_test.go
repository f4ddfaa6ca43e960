package errx

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("quantity cannot be negative"), http.StatusBadRequest},
		{"not found", NotFound("stock not found"), http.StatusNotFound},
		{"conflict", Conflict("discount already applied"), http.StatusConflict},
		{"auth", Auth("token not provided"), http.StatusUnauthorized},
		{"forbidden", Forbidden("cross-store access"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("record sale: %w", Conflict("insufficient stock")), http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(sql.ErrNoRows, KindNotFound, "stock not found")

	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
	assert.Equal(t, "stock not found: sql: no rows in result set", err.Error())
}

func TestPublicMessageMasksInternal(t *testing.T) {
	assert.Equal(t, SystemErrorMessage, PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, SystemErrorMessage, PublicMessage(Wrap(errors.New("x"), KindInternal, "query failed")))
	assert.Equal(t, "invalid price", PublicMessage(Validation("invalid price")))
}
