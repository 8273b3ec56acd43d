package beliefs

import (
	"fmt"
	"sync"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/storage"
)

// KeyPersonaSummary is the belief key the orchestrator writes after every
// scoring pass.
const KeyPersonaSummary = "persona_summary"

// Store is the durable per-agent knowledge base. Last write wins per key;
// every write is also appended to an audit trail so the history of belief
// changes stays recoverable.
type Store struct {
	mu    sync.Mutex
	store storage.Storage
}

// NewStore creates a belief store over the given storage.
func NewStore(store storage.Storage) *Store {
	return &Store{store: store}
}

// Write replaces the value under (agentID, key) and appends the write to
// the audit trail.
func (s *Store) Write(agentID, key, value string) (core.Belief, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := core.Belief{
		AgentID:   agentID,
		Key:       key,
		Value:     value,
		WrittenAt: time.Now().UTC(),
	}
	if err := s.store.SaveBelief(b); err != nil {
		return core.Belief{}, fmt.Errorf("belief write failed: %w", err)
	}
	if err := s.store.AppendBeliefAudit(b); err != nil {
		return core.Belief{}, fmt.Errorf("belief audit append failed: %w", err)
	}
	return b, nil
}

// Read returns the current value for a key, or found=false when absent.
func (s *Store) Read(agentID, key string) (core.Belief, bool, error) {
	return s.store.GetBelief(agentID, key)
}

// Audit returns the full write history for an agent in write order.
func (s *Store) Audit(agentID string) ([]core.Belief, error) {
	return s.store.GetBeliefAudit(agentID)
}
