// Package metrics exposes Prometheus instrumentation for the planner API.
package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the process-wide Prometheus registry and the metrics the
// planner records. A single Collector is created in main and shared.
type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec // labels: method, status
	HTTPDuration prometheus.Histogram

	DriveTimeLookups   prometheus.Counter
	DriveTimeLookupErr prometheus.Counter
	LegCacheHits       prometheus.Counter
}

// NewCollector builds a Collector with all metrics registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_http_requests_total",
			Help: "Total HTTP requests served.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "End-to-end HTTP request duration.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		DriveTimeLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_drive_time_lookups_total",
			Help: "Total drive-time lookups issued to the routing provider.",
		}),
		DriveTimeLookupErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_drive_time_lookup_errors_total",
			Help: "Total drive-time lookups that failed.",
		}),
		LegCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_leg_cache_hits_total",
			Help: "Total drive-time lookups answered by the persistent leg cache.",
		}),
	}

	reg.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.DriveTimeLookups, c.DriveTimeLookupErr, c.LegCacheHits,
	)
	return c
}

// Handler returns the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve runs a standalone metrics HTTP server on addr.
// It blocks; run it in a goroutine. An empty addr disables metrics serving.
func (c *Collector) Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("metrics server error", "error", err)
	}
}
