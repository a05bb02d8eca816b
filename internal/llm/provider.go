package llm

import "context"

// Provider abstracts the generative text service. Implementations must treat
// the service as unreliable: callers only ever see raw text or an error, and
// every caller has its own deterministic fallback.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
