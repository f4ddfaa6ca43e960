package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSale(3, 150)
		m.SaleRejected("insufficient_stock")
		m.DiscountChanged("applied")
		m.StockDeleted()
	})
}

func TestObserveSale(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSale(3, 150)
	m.ObserveSale(2, 20.5)
	m.SaleRejected("insufficient_stock")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SalesRecordedTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.UnitsSoldTotal))
	assert.Equal(t, 170.5, testutil.ToFloat64(m.RevenueTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SaleRejectedTotal.WithLabelValues("insufficient_stock")))
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/store/{storeId}/sales", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/abc/sales", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/store/{storeId}/sales", "418")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
