package grammar

import (
	"context"
	"errors"
	"strings"
)

// Querier sends text to an inference backend and returns the issues it found.
type Querier interface {
	Query(ctx context.Context, text string) ([]Issue, error)
}

// Check runs a grammar check through q.
//
// Blank text is nothing to check: it returns an empty result without calling
// q. Errors of type *Error pass through unchanged; anything else is wrapped
// as KindUnknown.
func Check(ctx context.Context, q Querier, text string) ([]Issue, error) {
	if strings.TrimSpace(text) == "" {
		return []Issue{}, nil
	}

	issues, err := q.Query(ctx, text)
	if err != nil {
		var ge *Error
		if errors.As(err, &ge) {
			return nil, err
		}
		return nil, Errorf(KindUnknown, "Grammar check failed: %w", err)
	}
	if issues == nil {
		issues = []Issue{}
	}
	return issues, nil
}
