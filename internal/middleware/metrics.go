package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kfenner/roadtrip-planner/internal/metrics"
)

// NewMetrics returns a middleware that records every request in the
// Prometheus collector: a counter per (method, status) pair and an
// end-to-end duration histogram.
func NewMetrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			c.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
			c.HTTPDuration.Observe(time.Since(start).Seconds())
		})
	}
}
