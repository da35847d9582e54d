package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos"

// Metrics holds the application's Prometheus collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	salesRecorded   prometheus.Counter
	salesReplayed   prometheus.Counter
	salesFailed     prometheus.Counter
	saleItems       prometheus.Counter
	lowStockItems   prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Number of sales committed.",
		}),
		salesReplayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_replayed_total",
			Help:      "Number of sale submissions answered from an earlier idempotency key.",
		}),
		salesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_failed_total",
			Help:      "Number of sale submissions that were rolled back or rejected.",
		}),
		saleItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sale_items_total",
			Help:      "Number of line items in committed sales.",
		}),
		lowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "menu_low_stock_items",
			Help:      "Menu items at or below their restock threshold at the last sweep.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.salesRecorded,
		m.salesReplayed,
		m.salesFailed,
		m.saleItems,
		m.lowStockItems,
		m.requestDuration,
	)

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SaleRecorded counts a committed sale with the given number of line items.
func (m *Metrics) SaleRecorded(items int) {
	m.salesRecorded.Inc()
	m.saleItems.Add(float64(items))
}

// SaleReplayed counts a submission resolved to an earlier sale.
func (m *Metrics) SaleReplayed() {
	m.salesReplayed.Inc()
}

// SaleFailed counts a submission that did not produce a sale.
func (m *Metrics) SaleFailed() {
	m.salesFailed.Inc()
}

// SetLowStockItems records the size of the latest low-stock sweep.
func (m *Metrics) SetLowStockItems(n int) {
	m.lowStockItems.Set(float64(n))
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
