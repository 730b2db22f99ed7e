package adapter

import (
	"context"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

// Gateway defines the contract for inference backends.
type Gateway interface {
	Name() string
	Query(ctx context.Context, text string) ([]grammar.Issue, error)
	// Available reports basic reachability of the backend.
	Available(ctx context.Context) bool
	// ModelAvailable additionally confirms the configured model is loaded.
	ModelAvailable(ctx context.Context) error
}
