package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

const testModel = "gemma3:1b"

func newTestAdapter(url string, timeout time.Duration) *OllamaAdapter {
	return &OllamaAdapter{
		BaseURL: url,
		Model:   testModel,
		Client:  &http.Client{Timeout: timeout},
	}
}

func generateHandler(t *testing.T, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: reply})
	}
}

func TestOllamaAdapterQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate, got %s", r.URL.Path)
		}

		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != testModel {
			t.Errorf("model: got %q, want %q", req.Model, testModel)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}
		if !strings.Contains(req.Prompt, "Text: I goes to the store yesterday.") {
			t.Errorf("prompt does not embed text: %q", req.Prompt)
		}

		reply := `Here you go: [{"wrong":"I goes","corrected":"I went","error_type":"verb tense"},` +
			`{"wrong":"incorrect text","corrected":"x","error_type":"y"}]`
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: reply})
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	got, err := a.Query(context.Background(), "I goes to the store yesterday.")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := []grammar.Issue{{Wrong: "I goes", Corrected: "I went", ErrorType: "verb tense"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOllamaAdapterQueryTruncatesLongText(t *testing.T) {
	long := strings.Repeat("é", grammar.MaxTextLength+100)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		embedded := strings.Count(req.Prompt, "é")
		if embedded != grammar.MaxTextLength {
			t.Errorf("embedded chars: got %d, want %d", embedded, grammar.MaxTextLength)
		}
		if !utf8.ValidString(req.Prompt) {
			t.Error("prompt is not valid UTF-8 after truncation")
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "[]"})
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	if _, err := a.Query(context.Background(), long); err != nil {
		t.Fatalf("Query: %v", err)
	}
}

func TestOllamaAdapterQueryBlankTextSkipsCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	got, err := a.Query(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
	if called {
		t.Error("blank text should not reach Ollama")
	}
}

func TestOllamaAdapterQueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind grammar.Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model crashed", http.StatusInternalServerError)
			},
			wantKind: grammar.KindResponse,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
			},
			wantKind: grammar.KindResponse,
		},
		{
			name: "body is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>proxy error</html>"))
			},
			wantKind: grammar.KindUnknown,
		},
		{
			name:     "model reply has broken array",
			handler:  generateHandler(t, `[{"wrong": "I goes", ]`),
			wantKind: grammar.KindInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := newTestAdapter(srv.URL, 5*time.Second)
			_, err := a.Query(context.Background(), "hello")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			kind, ok := grammar.KindOf(err)
			if !ok {
				t.Fatalf("error is not a grammar error: %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("kind: got %v, want %v (%v)", kind, tt.wantKind, err)
			}
		})
	}
}

func TestOllamaAdapterQueryResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	_, err := a.Query(context.Background(), "hello")

	ge, ok := err.(*grammar.Error)
	if !ok {
		t.Fatalf("expected *grammar.Error, got %T", err)
	}
	if ge.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status code: got %d, want %d", ge.StatusCode, http.StatusServiceUnavailable)
	}
	if !strings.Contains(ge.Error(), "503") {
		t.Errorf("message should carry status: %q", ge.Error())
	}
}

func TestOllamaAdapterQueryConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(url, 2*time.Second)
	_, err := a.Query(context.Background(), "hello")
	if !grammar.IsKind(err, grammar.KindConnection) {
		t.Fatalf("kind: got %v, want connection", err)
	}
	if !strings.Contains(err.Error(), "Make sure it's running") {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestOllamaAdapterQueryTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 50*time.Millisecond)
	_, err := a.Query(context.Background(), "hello")
	if !grammar.IsKind(err, grammar.KindTimeout) {
		t.Fatalf("kind: got %v, want timeout", err)
	}
}

func TestOllamaAdapterQueryContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Query(ctx, "hello")
	if err == nil {
		t.Fatal("expected error on cancelled context, got nil")
	}
	if !grammar.IsKind(err, grammar.KindUnknown) {
		t.Errorf("kind: got %v, want unknown", err)
	}
}

func tagsServer(t *testing.T, status int, models ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.WriteHeader(status)
		var resp ollamaTagsResponse
		for _, m := range models {
			resp.Models = append(resp.Models, ollamaModel{Name: m})
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOllamaAdapterAvailable(t *testing.T) {
	srv := tagsServer(t, http.StatusOK)
	defer srv.Close()

	a := newTestAdapter(srv.URL, time.Second)
	if !a.Available(context.Background()) {
		t.Error("expected available when server is up")
	}
}

func TestOllamaAdapterAvailableBadStatus(t *testing.T) {
	srv := tagsServer(t, http.StatusInternalServerError)
	defer srv.Close()

	a := newTestAdapter(srv.URL, time.Second)
	if a.Available(context.Background()) {
		t.Error("expected unavailable on 500")
	}
}

func TestOllamaAdapterNotAvailable(t *testing.T) {
	a := newTestAdapter("http://localhost:99999", time.Second)
	if a.Available(context.Background()) {
		t.Error("expected not available when server is unreachable")
	}
}

func TestOllamaAdapterModelAvailable(t *testing.T) {
	t.Run("model present", func(t *testing.T) {
		srv := tagsServer(t, http.StatusOK, "llama3:8b", testModel)
		defer srv.Close()

		a := newTestAdapter(srv.URL, time.Second)
		if err := a.ModelAvailable(context.Background()); err != nil {
			t.Errorf("ModelAvailable: %v", err)
		}
	})

	t.Run("model missing", func(t *testing.T) {
		srv := tagsServer(t, http.StatusOK, "llama3:8b")
		defer srv.Close()

		a := newTestAdapter(srv.URL, time.Second)
		err := a.ModelAvailable(context.Background())
		if !grammar.IsKind(err, grammar.KindModelNotAvailable) {
			t.Errorf("kind: got %v, want model_not_available", err)
		}
	})

	t.Run("bad status", func(t *testing.T) {
		srv := tagsServer(t, http.StatusBadGateway)
		defer srv.Close()

		a := newTestAdapter(srv.URL, time.Second)
		err := a.ModelAvailable(context.Background())
		if !grammar.IsKind(err, grammar.KindResponse) {
			t.Errorf("kind: got %v, want response", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := tagsServer(t, http.StatusOK)
		url := srv.URL
		srv.Close()

		a := newTestAdapter(url, time.Second)
		err := a.ModelAvailable(context.Background())
		if !grammar.IsKind(err, grammar.KindConnection) {
			t.Errorf("kind: got %v, want connection", err)
		}
	})
}

func TestOllamaAdapterName(t *testing.T) {
	a := NewOllamaAdapter("http://localhost:11434", testModel)
	if a.Name() != "Ollama (gemma3:1b)" {
		t.Errorf("got %q, want %q", a.Name(), "Ollama (gemma3:1b)")
	}
	if a.Client.Timeout != QueryTimeout {
		t.Errorf("client timeout: got %v, want %v", a.Client.Timeout, QueryTimeout)
	}
}
