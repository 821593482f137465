package mock

import (
	"context"
	"sync"
)

// MockTranslator is a test double for ai.Translator.
type MockTranslator struct {
	// TranslateFunc is called by Translate if set.
	// If nil, the text is returned wrapped as "译(<text>)".
	TranslateFunc func(ctx context.Context, text string) (string, error)

	mu    sync.Mutex
	calls []string
}

// NewMockTranslator creates a mock translator with default behavior.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate records the call and returns the injected or default translation.
func (m *MockTranslator) Translate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text)
	}
	return "译(" + text + ")", nil
}

// CallCount returns the number of times Translate was called.
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the texts passed to Translate, in call order.
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
