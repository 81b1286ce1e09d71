package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_docvault_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "collection", "status"},
	)

	// ChangeRequestsSubmitted tracks ledger submissions by routing path
	ChangeRequestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_change_requests_submitted_total",
			Help: "Number of change requests submitted, by classification and route",
		},
		[]string{"classification", "route"},
	)

	// ChangeRequestsDecided tracks admin decisions
	ChangeRequestsDecided = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_change_requests_decided_total",
			Help: "Number of change requests decided, by outcome",
		},
		[]string{"outcome"},
	)

	// SelfServiceEdits tracks directly applied minor edits
	SelfServiceEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_self_service_edits_total",
			Help: "Number of self-service edits applied without review",
		},
		[]string{"document_type"},
	)

	// FanOutUpdates tracks shared-field propagation results
	FanOutUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_docvault_fanout_updates_total",
			Help: "Number of shared-field fan-out document updates",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_docvault_active_connections",
			Help: "Number of active connections",
		},
	)
)
