package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one process on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	PurchasesCreated prometheus.Counter
	SalesCreated     prometheus.Counter
	UnitsSold        prometheus.Counter
	RuleRejections   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PurchasesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "inventory_purchases_total",
			Help: "Purchases recorded",
		}),
		SalesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "inventory_sales_total",
			Help: "Sales recorded",
		}),
		UnitsSold: f.NewCounter(prometheus.CounterOpts{
			Name: "inventory_units_sold_total",
			Help: "Units taken out of stock by sales",
		}),
		RuleRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_rule_rejections_total",
			Help: "Operations rejected by a business rule",
		}, []string{"reason"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is used by tests to gather values.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
