package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

const (
	// QueryTimeout bounds a single /api/generate call.
	QueryTimeout = 120 * time.Second
	// ProbeTimeout bounds the /api/tags reachability checks.
	ProbeTimeout = 5 * time.Second
)

// OllamaAdapter connects to a local Ollama instance via /api/generate.
type OllamaAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewOllamaAdapter returns an adapter whose client enforces QueryTimeout.
func NewOllamaAdapter(baseURL, model string) *OllamaAdapter {
	return &OllamaAdapter{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: QueryTimeout},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

type ollamaModel struct {
	Name string `json:"name"`
}

type ollamaTagsResponse struct {
	Models []ollamaModel `json:"models"`
}

func (o *OllamaAdapter) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.Model)
}

// Query asks the model for grammar issues in text. Text longer than
// grammar.MaxTextLength characters is truncated rather than rejected.
func (o *OllamaAdapter) Query(ctx context.Context, text string) ([]grammar.Issue, error) {
	if strings.TrimSpace(text) == "" {
		slog.Error("empty or invalid text provided")
		return []grammar.Issue{}, nil
	}

	if n := grammar.TextLength(text); n > grammar.MaxTextLength {
		slog.Warn("text too long, truncating", "chars", n, "max", grammar.MaxTextLength)
		text = grammar.Truncate(text, grammar.MaxTextLength)
	}

	reqBody := ollamaGenerateRequest{
		Model:  o.Model,
		Prompt: grammar.BuildPrompt(text),
		Stream: false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, o.unexpected(fmt.Errorf("ollama: marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url("/api/generate"), bytes.NewReader(body))
	if err != nil {
		return nil, o.unexpected(fmt.Errorf("ollama: create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Info("sending request to Ollama", "model", o.Model)
	resp, err := o.client().Do(req)
	if err != nil {
		return nil, o.classify(err, o.timeout())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("ollama request failed", "status", resp.StatusCode)
		return nil, &grammar.Error{
			Kind:       grammar.KindResponse,
			StatusCode: resp.StatusCode,
			Msg:        fmt.Sprintf("Ollama request failed with status %d", resp.StatusCode),
		}
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, o.classify(fmt.Errorf("ollama: decode response: %w", err), o.timeout())
	}

	slog.Info("got response from Ollama", "response_chars", grammar.TextLength(genResp.Response))
	return grammar.Extract(genResp.Response)
}

// Available reports whether /api/tags answers 200 within ProbeTimeout.
func (o *OllamaAdapter) Available(ctx context.Context) bool {
	status, _, err := o.tags(ctx)
	return err == nil && status == http.StatusOK
}

// ModelAvailable checks that o.Model appears in the /api/tags listing.
func (o *OllamaAdapter) ModelAvailable(ctx context.Context) error {
	status, body, err := o.tags(ctx)
	if err != nil {
		return o.classify(err, ProbeTimeout)
	}
	if status != http.StatusOK {
		return &grammar.Error{
			Kind:       grammar.KindResponse,
			StatusCode: status,
			Msg:        fmt.Sprintf("Ollama tags request failed with status %d", status),
		}
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return grammar.Errorf(grammar.KindInvalidResponse, "ollama: decode tags: %w", err)
	}

	found := slices.ContainsFunc(tags.Models, func(m ollamaModel) bool { return m.Name == o.Model })
	if !found {
		return grammar.Errorf(grammar.KindModelNotAvailable, "model %s is not available in Ollama", o.Model)
	}
	return nil
}

func (o *OllamaAdapter) tags(ctx context.Context) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url("/api/tags"), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("ollama: create request: %w", err)
	}
	resp, err := o.client().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("ollama: read tags: %w", err)
	}
	return resp.StatusCode, body, nil
}

// classify maps transport failures onto the grammar error taxonomy.
func (o *OllamaAdapter) classify(err error, bound time.Duration) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return o.unexpected(err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		slog.Error("request to Ollama timed out")
		return grammar.Errorf(grammar.KindTimeout, "Request to Ollama timed out after %s: %w", bound, err)
	case isConnectError(err):
		slog.Error("cannot connect to Ollama, make sure it's running", "url", o.BaseURL)
		return grammar.Errorf(grammar.KindConnection, "Cannot connect to Ollama. Make sure it's running on %s: %w", o.BaseURL, err)
	default:
		return o.unexpected(err)
	}
}

func (o *OllamaAdapter) unexpected(err error) error {
	slog.Error("unexpected error", "error", err)
	return grammar.Errorf(grammar.KindUnknown, "Unexpected error during grammar check: %w", err)
}

func isConnectError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

func (o *OllamaAdapter) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: QueryTimeout}
}

func (o *OllamaAdapter) timeout() time.Duration {
	if t := o.client().Timeout; t > 0 {
		return t
	}
	return QueryTimeout
}

func (o *OllamaAdapter) url(path string) string {
	return strings.TrimRight(o.BaseURL, "/") + path
}
