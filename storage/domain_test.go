package storage

import (
	"testing"

	"github.com/EidolonLabs/persona-launchpad/core"
)

func newMemStore(t *testing.T) *DBStorage {
	t.Helper()
	store, err := NewMemoryStorage()
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAnswerEventsReturnInSequenceOrder(t *testing.T) {
	store := newMemStore(t)

	// Write out of order; sequences cross the 3-digit boundary to exercise
	// the zero padding in the key layout.
	for _, seq := range []uint64{1001, 2, 115, 1} {
		ev := core.AnswerEvent{AgentID: "agent-1", QuestionID: int(seq), Sequence: seq}
		if err := store.SaveAnswerEvent(ev); err != nil {
			t.Fatalf("SaveAnswerEvent failed: %v", err)
		}
	}

	events, err := store.GetAnswerEvents("agent-1")
	if err != nil {
		t.Fatalf("GetAnswerEvents failed: %v", err)
	}
	want := []uint64{1, 2, 115, 1001}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i, ev := range events {
		if ev.Sequence != want[i] {
			t.Errorf("Position %d: expected sequence %d, got %d", i, want[i], ev.Sequence)
		}
	}
}

func TestLastSequence(t *testing.T) {
	store := newMemStore(t)

	if seq, err := store.LastSequence("agent-1"); err != nil || seq != 0 {
		t.Fatalf("Expected 0 for empty log, got %d (%v)", seq, err)
	}

	store.SaveAnswerEvent(core.AnswerEvent{AgentID: "agent-1", Sequence: 42})
	if seq, _ := store.LastSequence("agent-1"); seq != 42 {
		t.Errorf("Expected 42, got %d", seq)
	}
}

func TestEventsIsolatedByAgentPrefix(t *testing.T) {
	store := newMemStore(t)

	store.SaveAnswerEvent(core.AnswerEvent{AgentID: "agent-1", Sequence: 1})
	store.SaveAnswerEvent(core.AnswerEvent{AgentID: "agent-10", Sequence: 1})

	events, err := store.GetAnswerEvents("agent-1")
	if err != nil {
		t.Fatalf("GetAnswerEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Prefix leak: expected 1 event for agent-1, got %d", len(events))
	}
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	store := newMemStore(t)

	data, err := store.Get("no-such-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil for missing key, got %q", data)
	}
}
