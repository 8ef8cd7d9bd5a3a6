package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/metrics"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics observes request latency per route and counts 4xx and 5xx responses.
// A nil manager disables it.
func Metrics(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.Method + " " + routePattern(r)
			m.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
			if status := ww.Status(); status >= http.StatusBadRequest {
				m.APIErrorsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			}
		})
	}
}
