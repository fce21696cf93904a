// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Метрики работы с БД
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Метрики connection pool
	DBPoolOpenConnections prometheus.Gauge
	DBPoolInUse           prometheus.Gauge
	DBPoolIdle            prometheus.Gauge

	// Бизнес-метрики
	BookingsCreatedTotal   *prometheus.CounterVec
	OverlapConflictsTotal  prometheus.Counter
	CutoffViolationsTotal  prometheus.Counter
	RefundRequestsTotal    *prometheus.CounterVec
	SettlementsTotal       prometheus.Counter
	SettlementClampedTotal prometheus.Counter
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		DBPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),

		BookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		OverlapConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_overlap_conflicts_total",
			Help:        "Total number of booking requests rejected due to date overlap",
			ConstLabels: constLabels,
		}),

		CutoffViolationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cancellation_cutoff_violations_total",
			Help:        "Total number of cancellation requests rejected by the cutoff policy",
			ConstLabels: constLabels,
		}),

		RefundRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "refund_requests_total",
			Help:        "Total number of accepted refund requests",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		SettlementsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "checkout_settlements_total",
			Help:        "Total number of checkout settlements",
			ConstLabels: constLabels,
		}),

		SettlementClampedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "checkout_settlements_clamped_total",
			Help:        "Total number of settlements with a negative total clamped to zero",
			ConstLabels: constLabels,
		}),
	}
}
