package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to the currency API",
		},
		[]string{"endpoint", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of requests to the currency API",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_cache_lookups_total",
			Help: "Snapshot cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)

	dashboardComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_computations_total",
			Help: "Dashboard computations by outcome",
		},
		[]string{"status"},
	)
)

// ObserveUpstream records one call to the currency API. status is the HTTP
// status code, or 0 when the request never got a response.
func ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(endpoint, label).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func CacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(kind, result).Inc()
}

func DashboardComputed(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	dashboardComputations.WithLabelValues(status).Inc()
}
