package storeapi

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
)

const (
	opCatalog = "catalog"
	opProduct = "product"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Store API calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Store API call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal, upstreamRequestDuration)
}

// observe records one upstream call.
func observe(operation string, start time.Time, err error) {
	upstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	upstreamRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
