package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/storage"
)

// Log is the append-only, per-agent record of every question/answer pair.
// It is the system of record for onboarding progress and replay. Sequence
// numbers are assigned under a single-writer discipline per agent, enforced
// by the orchestrator's single-flight guard; the mutex here only protects
// the sequence cache across agents.
type Log struct {
	mu    sync.Mutex
	store storage.Storage
	seqs  map[string]uint64
}

// NewLog creates an event log over the given storage.
func NewLog(store storage.Storage) *Log {
	return &Log{
		store: store,
		seqs:  make(map[string]uint64),
	}
}

// Append records one answer and returns the stored event with its assigned
// sequence number.
func (l *Log) Append(agentID string, questionID int, answer string, tokens int, envelope []byte) (core.AnswerEvent, error) {
	seq, err := l.nextSequence(agentID)
	if err != nil {
		return core.AnswerEvent{}, err
	}

	ev := core.AnswerEvent{
		AgentID:    agentID,
		QuestionID: questionID,
		Answer:     answer,
		Sequence:   seq,
		Timestamp:  time.Now().Unix(),
		TokenCount: tokens,
		Envelope:   envelope,
	}
	if err := l.store.SaveAnswerEvent(ev); err != nil {
		return core.AnswerEvent{}, fmt.Errorf("failed to append answer event: %w", err)
	}
	return ev, nil
}

// List returns the agent's events in replay order.
func (l *Log) List(agentID string) ([]core.AnswerEvent, error) {
	return l.store.GetAnswerEvents(agentID)
}

// Count returns the number of events recorded for the agent.
func (l *Log) Count(agentID string) (int, error) {
	events, err := l.store.GetAnswerEvents(agentID)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// nextSequence hands out the next monotonic sequence number for an agent,
// recovering from storage on first use after a restart.
func (l *Log) nextSequence(agentID string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq, ok := l.seqs[agentID]
	if !ok {
		last, err := l.store.LastSequence(agentID)
		if err != nil {
			return 0, err
		}
		seq = last
	}
	seq++
	l.seqs[agentID] = seq
	return seq, nil
}
