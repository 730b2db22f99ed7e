package middleware

import (
	"net/http"
	"time"
)

// requestTimeout sits above the 120s inference bound so the gateway's own
// timeout error reaches the caller first.
const requestTimeout = 125 * time.Second

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → APIKey → MaxBytes → Timeout → mux
func Chain(handler http.Handler, apiKey string, origins []string) http.Handler {
	h := handler
	h = http.TimeoutHandler(h, requestTimeout, `{"error":"request timeout"}`)
	h = MaxBytes(64 * 1024)(h)
	h = APIKey(apiKey)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(origins)(h)
	return h
}
