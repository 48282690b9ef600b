// Package metrics exposes Prometheus instruments for the alignment service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aria-lang/bioalign/internal/alignment"
)

var (
	// httpRequests counts requests by route pattern, method and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioalign_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bioalign_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16), // 0.5ms to ~16s
	}, []string{"route", "method"})

	// alignments counts finished operations by kind (pairwise, batch, msa)
	// and outcome
	alignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioalign_alignments_total",
		Help: "Alignment operations by kind and result",
	}, []string{"kind", "result"})

	alignDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bioalign_alignment_duration_seconds",
		Help:    "Alignment compute time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
	}, []string{"kind"})

	// alignCells tracks DP matrix size per operation
	alignCells = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bioalign_alignment_cells",
		Help:    "DP cells requested per alignment operation",
		Buckets: prometheus.ExponentialBuckets(100, 10, 8),
	}, []string{"kind"})

	computeInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bioalign_compute_in_flight",
		Help: "Alignment requests currently holding a compute slot",
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bioalign_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

// ObserveRequest records one HTTP request.
func ObserveRequest(route, method, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveAlignment records one alignment operation. cells is the DP size
// requested; err classifies the result.
func ObserveAlignment(kind string, cells int64, elapsed time.Duration, err error) {
	alignments.WithLabelValues(kind, Result(err)).Inc()
	alignDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if cells > 0 {
		alignCells.WithLabelValues(kind).Observe(float64(cells))
	}
}

// Result maps an error to a low-cardinality label.
func Result(err error) string {
	var (
		cfgErr *alignment.ConfigError
		inErr  *alignment.InputError
		resErr *alignment.ResourceError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &cfgErr):
		return "config_error"
	case errors.As(err, &inErr):
		return "input_error"
	case errors.As(err, &resErr):
		return "resource_error"
	default:
		return "error"
	}
}

// ComputeAcquired and ComputeReleased track compute slot usage.
func ComputeAcquired() { computeInFlight.Inc() }
func ComputeReleased() { computeInFlight.Dec() }

// RateLimited counts one rejected request.
func RateLimited() { rateLimited.Inc() }
