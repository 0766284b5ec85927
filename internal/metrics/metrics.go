// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package metrics defines the Prometheus collectors exposed on
// /metrics. All collectors are registered with the default registry
// via promauto at package init.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts HTTP requests by method, route pattern
	// and status code.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sevasetu_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes request latency by route pattern.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sevasetu_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// APIActiveRequests tracks in-flight HTTP requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sevasetu_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// RecommendationRequestsTotal counts engine queries by mode
	// (identity or manual) and outcome (ok, not_found, invalid).
	RecommendationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sevasetu_recommendation_requests_total",
			Help: "Total recommendation queries by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// RecommendationsReturned observes how many services each strategy
	// contributed per query after filtering.
	RecommendationsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sevasetu_recommendations_returned",
			Help:    "Recommendations returned per query by strategy",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		},
		[]string{"strategy"},
	)

	// EngineCacheHits counts recommendation cache hits.
	EngineCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sevasetu_engine_cache_hits_total",
			Help: "Recommendation cache hits",
		},
	)

	// EngineCacheMisses counts recommendation cache misses.
	EngineCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sevasetu_engine_cache_misses_total",
			Help: "Recommendation cache misses",
		},
	)

	// ReferenceLoadWarnings counts integrity warnings raised while
	// loading reference tables (unresolved service ids, bad rows).
	ReferenceLoadWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sevasetu_reference_load_warnings_total",
			Help: "Integrity warnings per reference table during load",
		},
		[]string{"table"},
	)

	// ReferenceTableRows reports the row count of each loaded
	// reference table.
	ReferenceTableRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sevasetu_reference_table_rows",
			Help: "Rows loaded per reference table",
		},
		[]string{"table"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one engine query outcome plus the
// per-strategy result sizes.
func RecordRecommendation(mode, outcome string, districtN, demographicN, contentN int) {
	RecommendationRequestsTotal.WithLabelValues(mode, outcome).Inc()
	if outcome != "ok" {
		return
	}
	RecommendationsReturned.WithLabelValues("district").Observe(float64(districtN))
	RecommendationsReturned.WithLabelValues("demographic").Observe(float64(demographicN))
	RecommendationsReturned.WithLabelValues("content").Observe(float64(contentN))
}

// RecordLoadWarning records one integrity warning for a table.
func RecordLoadWarning(table string) {
	ReferenceLoadWarnings.WithLabelValues(table).Inc()
}

// SetTableRows reports the loaded row count for a table.
func SetTableRows(table string, rows int) {
	ReferenceTableRows.WithLabelValues(table).Set(float64(rows))
}
