package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted reply for MockProvider.
type MockResponse struct {
	Content string
	Err     error
}

// MockProvider replays scripted responses in order. Once the script is
// exhausted it keeps returning the last entry, so tests can model both
// "always fails" and "fails once then recovers" services.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     int
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Complete(_ context.Context, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if len(m.responses) == 0 {
		return "", nil
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	return r.Content, r.Err
}

// Calls reports how many completions were requested.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
