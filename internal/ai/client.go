package ai

import (
	"context"
	"errors"
)

// ErrNoAPIKey reports a provider invoked without credentials.
var ErrNoAPIKey = errors.New("api key not configured")

// CompletionRequest is a single prompt for a hosted model.
type CompletionRequest struct {
	System    string
	User      string
	MaxTokens int
}

// Client is a hosted language model behind a single-reply completion
// call. Failure modes (missing credentials, transport errors) surface
// as errors; callers convert them into fallback analyses rather than
// propagating.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
