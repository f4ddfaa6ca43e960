package auth

import (
	"context"
	"testing"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	"github.com/georgemunganga/stockbook-backend/internal/modules/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	st, err := store.NewService(repo, bcrypt.MinCost).Create(ctx, store.CreateRequest{
		Name: "Corner Shop", Email: "owner@corner.example", Password: "s3cret", PostalCode: "01001", TaxID: "123",
	})
	require.NoError(t, err)

	tokens := NewJWTProvider("test-secret", time.Hour)
	svc := NewService(repo, tokens)

	res, err := svc.Login(ctx, " OWNER@corner.example", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, st.ID.String(), res.StoreID)

	subject, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, st.ID.String(), subject)

	for _, tc := range []struct{ email, password string }{
		{"owner@corner.example", "wrong"},
		{"nobody@corner.example", "s3cret"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		assert.True(t, errx.Is(err, errx.KindAuth))
		assert.Equal(t, "invalid email or password", errx.PublicMessage(err))
	}
}
