// Package eval measures a running grammar check API: detection accuracy,
// response times, and input-validation behaviour.
package eval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

// DefaultTimeout sits above the server's 125s request bound so a slow
// check comes back as the server's 504 body rather than a client timeout.
const DefaultTimeout = 130 * time.Second

// Client talks to the grammar check API over HTTP.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient returns a client with DefaultTimeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// CheckResult is one POST /check round trip.
type CheckResult struct {
	Status  int
	Issues  []grammar.Issue
	Message string
	Elapsed time.Duration
}

// OK reports whether the API answered 200.
func (r CheckResult) OK() bool { return r.Status == http.StatusOK }

// HealthStatus mirrors the /health payload.
type HealthStatus struct {
	Status             string `json:"status"`
	InferenceConnected bool   `json:"inference_connected"`
}

// Check posts text to /check. Non-200 answers are returned in the result,
// not as an error; err is only set for transport or decode failures.
func (c *Client) Check(ctx context.Context, text string) (CheckResult, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return CheckResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/check", bytes.NewReader(payload))
	if err != nil {
		return CheckResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	start := time.Now()
	resp, err := c.client().Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return CheckResult{Elapsed: elapsed}, err
	}
	defer resp.Body.Close()

	result := CheckResult{Status: resp.StatusCode, Elapsed: elapsed}
	if resp.StatusCode != http.StatusOK {
		result.Message = errorMessage(resp.Body)
		return result, nil
	}

	var body struct {
		Issues []grammar.Issue `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	result.Issues = body.Issues
	if result.Issues == nil {
		result.Issues = []grammar.Issue{}
	}
	return result, nil
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client().Do(req)
	if err != nil {
		return HealthStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("health returned %d: %s", resp.StatusCode, errorMessage(resp.Body))
	}

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health: %w", err)
	}
	return hs, nil
}

// Status issues a GET and returns only the status code.
func (c *Client) Status(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(r)
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
