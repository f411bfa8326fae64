package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the interface all LLM providers implement.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Name() string
}

// ErrNotConfigured is returned before any network call when a provider has
// no API key.
var ErrNotConfigured = errors.New("LLM API not configured: set an API key")

// APIError is a non-2xx answer from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}
