package guard

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	"github.com/georgemunganga/stockbook-backend/internal/core/web"
	"github.com/go-chi/chi/v5"
)

// Verifier resolves a bearer token to the store id it was issued for.
type Verifier interface {
	Verify(token string) (string, error)
}

// Guard admits a request only when its bearer token belongs to the store named in the path.
type Guard struct {
	verifier Verifier
	param    string
}

// New returns a guard reading the target store id from the chi URL parameter "storeId".
func New(verifier Verifier) *Guard {
	return &Guard{verifier: verifier, param: "storeId"}
}

// Authorize returns the authenticated store id, or an Auth error for a missing or
// invalid credential and a Forbidden error when it belongs to another store.
func (g *Guard) Authorize(authorization, storeID string) (string, error) {
	if strings.TrimSpace(authorization) == "" {
		return "", errx.Auth("token not provided")
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errx.Auth("invalid token")
	}

	authenticated, err := g.verifier.Verify(token)
	if err != nil {
		return "", errx.Wrap(err, errx.KindAuth, "invalid token")
	}
	if authenticated != storeID {
		return "", errx.Forbidden("you cannot access data from another store")
	}
	return authenticated, nil
}

type ctxKey struct{}

// Middleware rejects the request before the wrapped handler runs unless Authorize passes.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := g.Authorize(r.Header.Get("Authorization"), chi.URLParam(r, g.param))
		if err != nil {
			web.RespondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, storeID)))
	})
}

// StoreIDFrom returns the store id authenticated by Middleware.
func StoreIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
