package handler

import (
	"net/http"

	"github.com/bilalfuldacs/grammar-check-api/internal/adapter"
	"github.com/bilalfuldacs/grammar-check-api/internal/metrics"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

type healthResponse struct {
	Status             string `json:"status"`
	InferenceConnected bool   `json:"inference_connected"`
}

type modelHealthResponse struct {
	Model     string `json:"model"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Health reports inference-service reachability. It always answers 200;
// an unreachable backend only degrades the status.
func Health(gw adapter.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected := gw.Available(r.Context())

		resp := healthResponse{Status: statusDegraded, InferenceConnected: connected}
		if connected {
			resp.Status = statusHealthy
			metrics.InferenceAvailable.Set(1)
		} else {
			metrics.InferenceAvailable.Set(0)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ModelHealth runs the stricter probe that also checks the configured
// model is present.
func ModelHealth(gw adapter.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := modelHealthResponse{Model: gw.Name(), Available: true}
		if err := gw.ModelAvailable(r.Context()); err != nil {
			resp.Available = false
			resp.Reason = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
