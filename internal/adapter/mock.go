package adapter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

type mockRule struct {
	wrong, corrected, errorType string
}

var mockRules = []mockRule{
	{"I goes", "I went", "verb tense"},
	{"She have", "She has", "subject-verb agreement"},
	{"a apple", "an apple", "article usage"},
	{"The cat are", "The cat is", "subject-verb agreement"},
	{"They was", "They were", "subject-verb agreement"},
	{"He don't", "He doesn't", "subject-verb agreement"},
	{"We was", "We were", "subject-verb agreement"},
}

// MockAdapter simulates a model reply with a configurable delay.
// Used for development and testing without a running Ollama.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "Mock" }

// Query recognises a fixed set of common mistakes, wraps them in chatty
// model-style prose and runs the result through grammar.Extract.
func (m *MockAdapter) Query(ctx context.Context, text string) ([]grammar.Issue, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	type hit struct {
		pos  int
		rule mockRule
	}
	var hits []hit
	for _, r := range mockRules {
		if i := strings.Index(text, r.wrong); i >= 0 {
			hits = append(hits, hit{pos: i, rule: r})
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(a.pos, b.pos) })

	issues := make([]grammar.Issue, 0, len(hits))
	for _, h := range hits {
		issues = append(issues, grammar.Issue{Wrong: h.rule.wrong, Corrected: h.rule.corrected, ErrorType: h.rule.errorType})
	}
	payload, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("mock: marshal: %w", err)
	}

	return grammar.Extract("Here are the grammar errors I found:\n" + string(payload) + "\nHope this helps!")
}

func (m *MockAdapter) Available(ctx context.Context) bool { return true }

func (m *MockAdapter) ModelAvailable(ctx context.Context) error { return nil }
