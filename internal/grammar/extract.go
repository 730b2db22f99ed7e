package grammar

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// issueSchema describes one element of the model's array. Fields may be
// missing or null; anything else that is not a string makes the element
// unusable.
const issueSchema = `{
  "type": "object",
  "properties": {
    "wrong":      {"type": ["string", "null"]},
    "corrected":  {"type": ["string", "null"]},
    "error_type": {"type": ["string", "null"]}
  }
}`

var compiledIssueSchema = jsonschema.MustCompileString("issue.json", issueSchema)

// Extract locates the JSON array embedded in raw model output and converts
// its elements into issues.
//
// The span runs from the first '[' to the last ']'. Output without such a
// span yields an empty result; a span that is not a valid JSON array yields
// a KindInvalidResponse error. Multiple separate arrays in one reply are
// not supported and usually end up as invalid JSON.
func Extract(raw string) ([]Issue, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 {
		slog.Warn("no JSON array found in model response", "response_chars", TextLength(raw))
		return []Issue{}, nil
	}

	var span string
	if end > start {
		span = raw[start : end+1]
	}

	var parsed any
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		slog.Error("failed to parse JSON from model response", "error", err)
		return nil, Errorf(KindInvalidResponse, "failed to parse JSON from Ollama response: %w", err)
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, Errorf(KindInvalidResponse, "error parsing Ollama response: expected JSON array, got %T", parsed)
	}

	issues := make([]Issue, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if err := compiledIssueSchema.Validate(obj); err != nil {
			slog.Warn("skipping invalid issue", "index", i, "error", err)
			continue
		}

		issue := Issue{
			Wrong:     stringField(obj, "wrong"),
			Corrected: stringField(obj, "corrected"),
			ErrorType: stringField(obj, "error_type"),
		}
		if issue.ErrorType == "" {
			issue.ErrorType = DefaultErrorType
		}
		if issue.Wrong == "" || issue.Wrong == SentinelWrong {
			continue
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
