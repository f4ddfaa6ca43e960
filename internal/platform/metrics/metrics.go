package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the business and HTTP collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	// Sales
	SalesRecordedTotal prometheus.Counter
	UnitsSoldTotal     prometheus.Counter
	RevenueTotal       prometheus.Counter
	SaleRejectedTotal  *prometheus.CounterVec

	// Stock
	DiscountChangesTotal *prometheus.CounterVec
	StockItemsDeleted    prometheus.Counter

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,

		SalesRecordedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sales_recorded_total",
			Help: "Number of sales recorded",
		}),
		UnitsSoldTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sales_units_sold_total",
			Help: "Number of stock units sold",
		}),
		RevenueTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sales_revenue_total",
			Help: "Sum of total_price over recorded sales",
		}),
		SaleRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_rejected_total",
				Help: "Sale attempts rejected, by reason",
			},
			[]string{"reason"},
		),

		DiscountChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_discount_changes_total",
				Help: "Discounts applied or removed",
			},
			[]string{"action"},
		),
		StockItemsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "stock_items_deleted_total",
			Help: "Stock items deleted",
		}),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) ObserveSale(quantity int, total float64) {
	if m == nil {
		return
	}
	m.SalesRecordedTotal.Inc()
	m.UnitsSoldTotal.Add(float64(quantity))
	m.RevenueTotal.Add(total)
}

func (m *Metrics) SaleRejected(reason string) {
	if m == nil {
		return
	}
	m.SaleRejectedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) DiscountChanged(action string) {
	if m == nil {
		return
	}
	m.DiscountChangesTotal.WithLabelValues(action).Inc()
}

func (m *Metrics) StockDeleted() {
	if m == nil {
		return
	}
	m.StockItemsDeleted.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
