package questions

import (
	"sync"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Bank serves the onboarding catalog in fixed catalog order, tracking a
// cursor per agent so no question is ever issued twice to the same agent.
type Bank struct {
	mu      sync.Mutex
	catalog []core.Question
	cursors map[string]int
}

// NewBank creates a bank over the given catalog. The catalog is deduplicated
// by ID, first occurrence wins, preserving order.
func NewBank(catalog []core.Question) *Bank {
	seen := make(map[int]bool, len(catalog))
	deduped := make([]core.Question, 0, len(catalog))
	for _, q := range catalog {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		deduped = append(deduped, q)
	}
	return &Bank{
		catalog: deduped,
		cursors: make(map[string]int),
	}
}

// NewDefaultBank creates a bank over the built-in catalog.
func NewDefaultBank() *Bank {
	return NewBank(DefaultCatalog())
}

// SampleBatch returns the next count unseen questions for the agent and
// advances its cursor. If fewer than count remain it returns all remaining
// without failing; exhaustion yields an empty slice.
func (b *Bank) SampleBatch(agentID string, count int) []core.Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	cursor := b.cursors[agentID]
	if cursor >= len(b.catalog) || count <= 0 {
		return nil
	}

	end := cursor + count
	if end > len(b.catalog) {
		end = len(b.catalog)
	}

	batch := make([]core.Question, end-cursor)
	copy(batch, b.catalog[cursor:end])
	b.cursors[agentID] = end
	return batch
}

// RemainingCount returns how many unseen questions remain for the agent.
func (b *Bank) RemainingCount(agentID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.catalog) - b.cursors[agentID]
}

// Size returns the catalog size.
func (b *Bank) Size() int {
	return len(b.catalog)
}

// Reset rewinds the agent's cursor. Called when a fresh onboarding session
// starts for an agent whose prior session reached a terminal state.
func (b *Bank) Reset(agentID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.cursors, agentID)
}
