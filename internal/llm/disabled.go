package llm

import (
	"context"
	"errors"
)

// DisabledProvider stands in when no API key is configured. Every call
// fails, which pushes each caller onto its deterministic fallback, so the
// engine runs end to end without the generative service.
type DisabledProvider struct{}

func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

func (*DisabledProvider) Complete(context.Context, string, string) (string, error) {
	return "", errors.New("generative service is not configured")
}
