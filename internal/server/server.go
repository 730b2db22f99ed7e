package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bilalfuldacs/grammar-check-api/internal/adapter"
	"github.com/bilalfuldacs/grammar-check-api/internal/handler"
	"github.com/bilalfuldacs/grammar-check-api/internal/middleware"
)

// Options configures the middleware around the routes.
type Options struct {
	APIKey      string
	CORSOrigins []string
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(gw adapter.Gateway, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.Root())
	mux.HandleFunc("/check", handler.Check(gw))
	mux.HandleFunc("/health", handler.Health(gw))
	mux.HandleFunc("/health/model", handler.ModelHealth(gw))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, opts.APIKey, opts.CORSOrigins)
}
