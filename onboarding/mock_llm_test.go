package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/EidolonLabs/persona-launchpad/ai"
)

// mockLLM is a deterministic stand-in for the OpenAI adapter.
type mockLLM struct {
	mu           sync.Mutex
	calls        int
	failMatch    string // questions containing this substring always fail
	failErr      error
	block        chan struct{} // when set, Ask blocks until closed or ctx done
	tokensPerAsk int
}

func (m *mockLLM) Ask(ctx context.Context, question string) (ai.Answer, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ai.Answer{}, ctx.Err()
		}
	}

	if m.failMatch != "" && strings.Contains(question, m.failMatch) {
		return ai.Answer{}, m.failErr
	}

	tokens := m.tokensPerAsk
	if tokens == 0 {
		tokens = 10
	}
	return ai.Answer{
		Text:   fmt.Sprintf("I value what this asks of me. (%s)", question),
		Tokens: tokens,
	}, nil
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
