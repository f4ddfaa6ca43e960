package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid token")

type jwtProvider struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTProvider signs HS256 tokens whose subject is the store id.
func NewJWTProvider(secret string, ttl time.Duration) TokenProvider {
	return &jwtProvider{key: []byte(secret), ttl: ttl, now: time.Now}
}

func (p *jwtProvider) Issue(storeID string) (string, error) {
	now := p.now()
	claims := &jwt.StandardClaims{
		Subject:   storeID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(p.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (p *jwtProvider) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.key, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
