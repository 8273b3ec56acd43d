package core

import "time"

// Question is a single entry from the onboarding catalog. Questions are
// loaded once at process start and never mutated.
type Question struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

// AnswerEvent records one question/answer exchange for an agent. Events are
// append-only; Sequence is monotonic per agent and defines replay order.
type AnswerEvent struct {
	AgentID    string `json:"agent_id"`
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
	Sequence   uint64 `json:"sequence"`
	Timestamp  int64  `json:"timestamp"`
	TokenCount int    `json:"token_count"`
	// Envelope holds the encoded ACL envelope the answer travelled in.
	// Empty for synthesized answers.
	Envelope []byte `json:"envelope,omitempty"`
}

// PersonaVector is the fixed-dimension reduction of an agent's accumulated
// answers. The most recent instance is authoritative.
type PersonaVector struct {
	AgentID     string    `json:"agent_id"`
	Dimensions  []float64 `json:"dimensions"`
	Summary     string    `json:"summary"`
	ComputedAt  time.Time `json:"computed_at"`
	SourceCount int       `json:"source_event_count"`
}

// Belief is a named, durable piece of knowledge attached to an agent.
// Last write wins per key.
type Belief struct {
	AgentID   string    `json:"agent_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	WrittenAt time.Time `json:"written_at"`
}
