package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Key layout. Sequence numbers are zero padded so lexicographic prefix
// iteration yields replay order.
func answerKey(agentID string, seq uint64) string {
	return fmt.Sprintf("answer:%s:%012d", agentID, seq)
}

func answerPrefix(agentID string) string {
	return fmt.Sprintf("answer:%s:", agentID)
}

func beliefKey(agentID, key string) string {
	return fmt.Sprintf("belief:%s:%s", agentID, key)
}

func beliefAuditKey(agentID string, seq uint64) string {
	return fmt.Sprintf("belief_audit:%s:%012d", agentID, seq)
}

func beliefAuditPrefix(agentID string) string {
	return fmt.Sprintf("belief_audit:%s:", agentID)
}

// SaveAnswerEvent persists a single answer event.
func (s *DBStorage) SaveAnswerEvent(ev core.AnswerEvent) error {
	return s.PutObject(answerKey(ev.AgentID, ev.Sequence), ev)
}

// GetAnswerEvents returns all answer events for an agent in sequence order.
func (s *DBStorage) GetAnswerEvents(agentID string) ([]core.AnswerEvent, error) {
	raw, err := s.GetByPrefix(answerPrefix(agentID))
	if err != nil {
		return nil, err
	}

	events := make([]core.AnswerEvent, 0, len(raw))
	for key, data := range raw {
		var ev core.AnswerEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("corrupt answer event at %s: %v", key, err)
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Sequence < events[j].Sequence
	})
	return events, nil
}

// LastSequence returns the highest sequence number recorded for an agent,
// or zero when no events exist.
func (s *DBStorage) LastSequence(agentID string) (uint64, error) {
	events, err := s.GetAnswerEvents(agentID)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	return events[len(events)-1].Sequence, nil
}

// SaveBelief stores the authoritative value for a belief key.
func (s *DBStorage) SaveBelief(b core.Belief) error {
	return s.PutObject(beliefKey(b.AgentID, b.Key), b)
}

// GetBelief returns the current value for a belief key. A missing key is
// reported through the bool, not as an error.
func (s *DBStorage) GetBelief(agentID, key string) (core.Belief, bool, error) {
	data, err := s.Get(beliefKey(agentID, key))
	if err != nil {
		return core.Belief{}, false, err
	}
	if data == nil {
		return core.Belief{}, false, nil
	}
	var b core.Belief
	if err := json.Unmarshal(data, &b); err != nil {
		return core.Belief{}, false, fmt.Errorf("corrupt belief at %s/%s: %v", agentID, key, err)
	}
	return b, true, nil
}

// AppendBeliefAudit records a belief write in the per-agent audit trail.
func (s *DBStorage) AppendBeliefAudit(b core.Belief) error {
	audit, err := s.GetBeliefAudit(b.AgentID)
	if err != nil {
		return err
	}
	return s.PutObject(beliefAuditKey(b.AgentID, uint64(len(audit))+1), b)
}

// GetBeliefAudit returns the full history of belief writes for an agent in
// write order.
func (s *DBStorage) GetBeliefAudit(agentID string) ([]core.Belief, error) {
	raw, err := s.GetByPrefix(beliefAuditPrefix(agentID))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	audit := make([]core.Belief, 0, len(keys))
	for _, key := range keys {
		var b core.Belief
		if err := json.Unmarshal(raw[key], &b); err != nil {
			return nil, fmt.Errorf("corrupt belief audit entry at %s: %v", key, err)
		}
		audit = append(audit, b)
	}
	return audit, nil
}
