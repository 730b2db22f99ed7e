package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
	"github.com/bilalfuldacs/grammar-check-api/internal/metrics"
	"github.com/bilalfuldacs/grammar-check-api/internal/middleware"
)

const internalErrorMessage = "Internal server error. Please check the server logs for more details."

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Issues []grammar.Issue `json:"issues"`
}

// Check handles POST /check. It is the only place grammar errors are
// translated into HTTP status codes.
func Check(q grammar.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req checkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		reqID := middleware.RequestIDFromContext(r.Context())

		if err := validateText(req.Text); err != nil {
			respondError(w, reqID, err)
			return
		}

		slog.Info("checking grammar", "request_id", reqID, "text", grammar.Preview(req.Text, 50))
		metrics.InputChars.Observe(float64(grammar.TextLength(req.Text)))

		start := time.Now()
		issues, err := grammar.Check(r.Context(), q, req.Text)
		elapsed := time.Since(start)
		if err != nil {
			kind, _ := grammar.KindOf(err)
			metrics.CheckDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
			respondError(w, reqID, err)
			return
		}
		metrics.CheckDuration.WithLabelValues("ok").Observe(elapsed.Seconds())
		metrics.IssuesFound.Observe(float64(len(issues)))

		slog.Info("found grammar issues", "request_id", reqID, "count", len(issues), "duration_ms", elapsed.Milliseconds())
		writeJSON(w, http.StatusOK, checkResponse{Issues: issues})
	}
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return grammar.Errorf(grammar.KindInvalidInput, "Text cannot be empty")
	}
	if grammar.TextLength(text) > grammar.MaxTextLength {
		return grammar.Errorf(grammar.KindTextTooLong, "Text too long (max %d characters)", grammar.MaxTextLength)
	}
	return nil
}

func respondError(w http.ResponseWriter, reqID string, err error) {
	kind, classified := grammar.KindOf(err)
	if classified {
		metrics.CheckErrors.WithLabelValues(kind.String()).Inc()
	} else {
		metrics.CheckErrors.WithLabelValues("unclassified").Inc()
	}
	slog.Error("grammar check failed", "request_id", reqID, "kind", kind.String(), "error", err)

	code, msg := errorStatus(err)
	writeError(w, code, msg)
}

// errorStatus maps an error onto the caller-facing status and message.
func errorStatus(err error) (int, string) {
	var ge *grammar.Error
	if !errors.As(err, &ge) {
		return http.StatusInternalServerError, internalErrorMessage
	}

	switch ge.Kind {
	case grammar.KindInvalidInput, grammar.KindTextTooLong:
		return http.StatusBadRequest, ge.Error()
	case grammar.KindConnection:
		return http.StatusServiceUnavailable,
			"Grammar service unavailable - Ollama not connected. Please ensure Ollama is running."
	case grammar.KindTimeout:
		return http.StatusGatewayTimeout,
			"Grammar service timeout. The model is taking longer than expected. Please try again."
	case grammar.KindResponse:
		return http.StatusBadGateway, "Ollama service error: " + ge.Error()
	case grammar.KindInvalidResponse:
		return http.StatusBadGateway, "Invalid response from grammar service"
	case grammar.KindModelNotAvailable:
		return http.StatusInternalServerError, "Grammar check failed: " + ge.Error()
	default:
		// KindUnknown carries raw transport or decode text; it stays in the log.
		return http.StatusInternalServerError, internalErrorMessage
	}
}
