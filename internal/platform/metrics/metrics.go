// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus collectors for the HTTP surface and the
outbound GitHub lookup.

Collectors register on the default registry at init and are scraped from
/metrics through [Handler].
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devhub"

// Outcomes recorded by [GitHubLookup].
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

var (
	// httpRequests counts finished requests.
	// Labels: method, route (chi pattern), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	// httpLatency measures handler latency.
	// Labels: method, route
	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	// githubLookups counts repository lookups served through the cache.
	// Labels: outcome (hit, miss, error)
	githubLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "github",
		Name:      "lookups_total",
		Help:      "GitHub repository lookups by cache outcome",
	}, []string{"outcome"})
)

// Instrument records the count and latency of every request under its chi
// route pattern. Unmatched paths share the "unmatched" label so raw URLs never
// become label values.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		started := time.Now()
		wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(wrapped, request)

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := routePattern(request)
		httpRequests.WithLabelValues(request.Method, route, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(request.Method, route).Observe(time.Since(started).Seconds())
	})
}

// GitHubLookup records one cached repository lookup.
func GitHubLookup(outcome string) {
	githubLookups.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func routePattern(request *http.Request) string {
	routeCtx := chi.RouteContext(request.Context())
	if routeCtx == nil {
		return "unmatched"
	}
	if pattern := routeCtx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}
