package auth

import "context"

// LoginResponse carries the bearer token and the store it authenticates.
type LoginResponse struct {
	Token   string `json:"token"`
	StoreID string `json:"store_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// TokenProvider issues and verifies bearer tokens. Verify returns the store id the token was issued for.
type TokenProvider interface {
	Issue(storeID string) (string, error)
	Verify(token string) (string, error)
}
