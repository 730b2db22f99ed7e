package middleware

import (
	"net/http"
	"strconv"

	"github.com/bilalfuldacs/grammar-check-api/internal/metrics"
)

// Metrics records request count by method, route, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

// routeLabel collapses unknown paths so scanners cannot inflate label cardinality.
func routeLabel(path string) string {
	switch path {
	case "/", "/check", "/health", "/health/model", "/metrics":
		return path
	}
	return "other"
}
