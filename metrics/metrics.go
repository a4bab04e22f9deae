// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for the API server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Commitment outcome labels.
const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeCancelled = "cancelled"
)

var (
	// RequestsTotal counts handled HTTP requests by method and route.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftregistry_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "route"})

	// CommitmentsTotal counts commit/cancel outcomes.
	CommitmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftregistry_commitments_total",
		Help: "Commitment operations by outcome.",
	}, []string{"outcome"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
