package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bilalfuldacs/grammar-check-api/internal/adapter"
	"github.com/bilalfuldacs/grammar-check-api/internal/server"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	subcommands := map[string]bool{"health": false, "check": false, "eval": false}
	for _, sub := range cmd.Commands() {
		if _, ok := subcommands[sub.Name()]; ok {
			subcommands[sub.Name()] = true
		}
	}
	for name, found := range subcommands {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"url", "api-key", "timeout", "json"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}

	if got := cmd.PersistentFlags().Lookup("timeout").DefValue; got != "2m10s" {
		t.Errorf("--timeout default: got %s, want 2m10s", got)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mockAPI(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.SetupMux(&adapter.MockAdapter{}, server.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			json.NewEncoder(w).Encode(map[string]string{
				"response": `[{"wrong":"a apple","corrected":"an apple","error_type":"article usage"}]`,
			})
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]any{"models": []map[string]string{{"name": "gemma3:1b"}}})
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckCmd_API(t *testing.T) {
	ts := mockAPI(t)

	out, err := run(t, "check", "--url", ts.URL, "She have a apple.")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "Found 2 issue(s)") || !strings.Contains(out, `"She have" -> "She has"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCheckCmd_APIError(t *testing.T) {
	ts := mockAPI(t)

	_, err := run(t, "check", "--url", ts.URL, strings.Repeat("a", 5001))
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("want 400 error, got %v", err)
	}
}

func TestCheckCmd_Direct(t *testing.T) {
	ollama := fakeOllama(t)

	out, err := run(t, "check", "--direct", "--ollama-url", ollama.URL, "--json", "I ate a apple.")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var body struct {
		Issues []struct {
			Wrong string `json:"wrong"`
		} `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(body.Issues) != 1 || body.Issues[0].Wrong != "a apple" {
		t.Errorf("got %+v", body.Issues)
	}
}

func TestHealthCmd(t *testing.T) {
	ts := mockAPI(t)

	out, err := run(t, "health", "--url", ts.URL)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "status: healthy") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHealthCmd_Strict(t *testing.T) {
	ollama := fakeOllama(t)

	if _, err := run(t, "health", "--strict", "--ollama-url", ollama.URL, "--model", "gemma3:1b"); err != nil {
		t.Errorf("installed model: %v", err)
	}

	_, err := run(t, "health", "--strict", "--ollama-url", ollama.URL, "--model", "llama3:8b")
	if err == nil || !strings.Contains(err.Error(), "llama3:8b") {
		t.Errorf("missing model: got %v", err)
	}
}

func TestEvalCmd(t *testing.T) {
	ts := mockAPI(t)

	out, err := run(t, "eval", "reliability", "--url", ts.URL)
	if err != nil {
		t.Fatalf("eval: %v\n%s", err, out)
	}
	if !strings.Contains(out, "RELIABILITY") || strings.Contains(out, "ACCURACY") {
		t.Errorf("unexpected sections:\n%s", out)
	}
}

func TestEvalCmd_InvalidSection(t *testing.T) {
	if _, err := run(t, "eval", "speed"); err == nil {
		t.Error("want error for unknown section")
	}
}

func TestEvalCmd_JSON(t *testing.T) {
	ts := mockAPI(t)

	out, err := run(t, "eval", "accuracy", "--url", ts.URL, "--json")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	var report struct {
		Accuracy struct {
			F1 float64 `json:"f1"`
		} `json:"accuracy"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Accuracy.F1 != 1 {
		t.Errorf("f1: got %.3f, want 1", report.Accuracy.F1)
	}
}
