package metrics

import "sync"

// Totals holds the accumulated counters for one onboarding session.
type Totals struct {
	Tokens   int64 `json:"tokens"`
	Requests int64 `json:"requests"`
}

// Tracker accumulates token and request counters per agent. Counters are
// purely additive and reset only when a new session starts for that agent.
type Tracker struct {
	mu     sync.Mutex
	totals map[string]*Totals
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{totals: make(map[string]*Totals)}
}

// Record adds one adapter call's token count to the agent's totals.
func (t *Tracker) Record(agentID string, tokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tt, ok := t.totals[agentID]
	if !ok {
		tt = &Totals{}
		t.totals[agentID] = tt
	}
	tt.Tokens += int64(tokens)
	tt.Requests++
}

// TotalsFor returns a snapshot of the agent's counters.
func (t *Tracker) TotalsFor(agentID string) Totals {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tt, ok := t.totals[agentID]; ok {
		return *tt
	}
	return Totals{}
}

// Reset zeroes the counters for an agent. Called when a new session starts.
func (t *Tracker) Reset(agentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.totals, agentID)
}
