package onboarding

import (
	"context"
	"sync"
	"time"
)

type SessionState int

const (
	Idle SessionState = iota
	Batching
	Scoring
	AutoCompleting
	Done
	Failed
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Batching:
		return "BATCHING"
	case Scoring:
		return "SCORING"
	case AutoCompleting:
		return "AUTO_COMPLETING"
	case Done:
		return "DONE"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions are possible.
func (s SessionState) Terminal() bool {
	return s == Done || s == Failed
}

// Error kinds carried by a FAILED session.
const (
	KindProviderError = "ProviderError"
	KindTimeout       = "Timeout"
	KindCancelled     = "Cancelled"
)

// Session is one onboarding run for one agent. Mutated only by the
// orchestrator; answered count is non-decreasing and never exceeds the
// total target.
type Session struct {
	mu            sync.RWMutex
	agentID       string
	state         SessionState
	answeredCount int
	batchSize     int
	totalTarget   int
	startedAt     time.Time
	completedAt   *time.Time
	errorKind     string
	cancel        context.CancelFunc
}

// Snapshot is the externally visible view of a session.
type Snapshot struct {
	AgentID       string     `json:"agent_id"`
	State         string     `json:"state"`
	AnsweredCount int        `json:"answered_count"`
	BatchSize     int        `json:"batch_size"`
	TotalTarget   int        `json:"total_target"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ErrorKind     string     `json:"error_kind,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		AgentID:       s.agentID,
		State:         s.state.String(),
		AnsweredCount: s.answeredCount,
		BatchSize:     s.batchSize,
		TotalTarget:   s.totalTarget,
		StartedAt:     s.startedAt,
		CompletedAt:   s.completedAt,
		ErrorKind:     s.errorKind,
	}
}

// State returns the current state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AnsweredCount returns how many answers have been logged this session.
func (s *Session) AnsweredCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answeredCount
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) incrementAnswered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answeredCount < s.totalTarget {
		s.answeredCount++
	}
	return s.answeredCount
}

func (s *Session) markDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.state = Done
	s.completedAt = &now
}

func (s *Session) markFailed(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return
	}
	s.state = Failed
	s.errorKind = kind
}
