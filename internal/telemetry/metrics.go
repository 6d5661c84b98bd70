/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry provides Prometheus metrics and OpenTelemetry tracing.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP requests by method, endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderboard_api_requests_total",
		Help: "Total HTTP API requests.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderboard_api_request_duration_seconds",
		Help:    "HTTP API request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections tracks in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orderboard_api_active_connections",
		Help: "Number of HTTP requests currently being served.",
	})

	// APIWebSocketConnections tracks open board-feed WebSocket connections.
	APIWebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orderboard_api_websocket_connections",
		Help: "Number of open WebSocket connections.",
	})

	// OrderMutationsTotal counts successful work order mutations by operation.
	OrderMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderboard_order_mutations_total",
		Help: "Successful work order create/update/delete operations.",
	}, []string{"operation"})

	// OverlapRejectionsTotal counts mutations rejected by the overlap invariant.
	OverlapRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderboard_overlap_rejections_total",
		Help: "Work order mutations rejected because of an interval overlap.",
	})

	// DatabaseQueryDuration observes database operation latency by table.
	DatabaseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderboard_db_query_duration_seconds",
		Help:    "Database operation duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrorsTotal counts database operation errors.
	DatabaseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderboard_db_errors_total",
		Help: "Database operation errors.",
	}, []string{"operation", "kind"})

	// DatabaseConnectionsActive tracks open database connections.
	DatabaseConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orderboard_db_connections_active",
		Help: "Open database connections.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
