package auth

import (
	"context"
	"errors"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	"github.com/georgemunganga/stockbook-backend/internal/modules/store"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid email or password"

// StoreFinder looks up a store by its normalized email.
type StoreFinder interface {
	GetByEmail(ctx context.Context, email string) (*store.Store, error)
}

type service struct {
	stores StoreFinder
	tokens TokenProvider
}

// NewService creates a new auth service.
func NewService(stores StoreFinder, tokens TokenProvider) Service {
	return &service{stores: stores, tokens: tokens}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	st, err := s.stores.GetByEmail(ctx, store.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, errx.Auth(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		logx.Debug().Str("store_id", st.ID.String()).Msg("login rejected")
		return nil, errx.Auth(invalidCredentials)
	}

	token, err := s.tokens.Issue(st.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, StoreID: st.ID.String()}, nil
}
