package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts HTTP requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes HTTP request latency by method and route
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StockMutations counts committed stock changes by action type and origin
	StockMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_mutations_total",
			Help: "Total number of committed stock mutations",
		},
		[]string{"type", "source"},
	)

	// LowStockItems is the number of alerting items by severity at the last scan
	LowStockItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_low_stock_items",
			Help: "Number of items at or below their reorder threshold",
		},
		[]string{"severity"},
	)

	// AuditWrites counts audit log writes by outcome
	AuditWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_audit_writes_total",
			Help: "Total number of audit log writes",
		},
		[]string{"outcome"},
	)

	// GRPCRequests counts unary gRPC calls by method and status code
	GRPCRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "status_code"},
	)

	// GRPCDuration observes unary gRPC latency by method
	GRPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// RateLimited counts requests rejected by the rate limiter
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		StockMutations,
		LowStockItems,
		AuditWrites,
		RateLimited,
		GRPCRequests,
		GRPCDuration,
	)
}
