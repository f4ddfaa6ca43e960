package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/store/{storeId}", NewHandler(svc).RegisterRoutes)
	return r
}

func TestApplyDiscountRequiresPercentage(t *testing.T) {
	svc := newTestService()
	storeID := uuid.NewString()
	item := mustCreate(t, svc, storeID, 5, 80)
	router := newTestRouter(svc)
	path := "/store/" + storeID + "/stock/" + item.ID.String() + "/discount"

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"no percentage", `{}`, http.StatusBadRequest},
		{"null percentage", `{"percentage": null}`, http.StatusBadRequest},
		{"out of range", `{"percentage": 120}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	current, err := svc.FindByID(context.Background(), storeID, item.ID.String())
	require.NoError(t, err)
	assert.False(t, current.IsDiscountActive)
	assert.Equal(t, 80.0, current.Price)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(`{"percentage": 25}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 60.0, body.Price)
	assert.True(t, body.IsDiscountActive)
}

func TestCreateStockOverHTTP(t *testing.T) {
	storeID := uuid.NewString()
	router := newTestRouter(newTestService())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/store/"+storeID+"/stock",
		strings.NewReader(`{"name": "Pen", "quantity": 3, "price": 1.25}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	assert.Equal(t, storeID, item.StoreID.String())
	assert.Equal(t, 1.25, item.OriginalPrice)
}
