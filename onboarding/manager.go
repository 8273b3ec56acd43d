package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/EidolonLabs/persona-launchpad/acl"
	"github.com/EidolonLabs/persona-launchpad/ai"
	"github.com/EidolonLabs/persona-launchpad/beliefs"
	"github.com/EidolonLabs/persona-launchpad/communication"
	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/events"
	"github.com/EidolonLabs/persona-launchpad/metrics"
	"github.com/EidolonLabs/persona-launchpad/persona"
	"github.com/EidolonLabs/persona-launchpad/questions"
	"github.com/EidolonLabs/persona-launchpad/storage"
)

// OrchestratorSender is the sender identity on question envelopes.
const OrchestratorSender = "orchestrator"

// ErrAlreadyRunning rejects a start request for an agent whose session is
// still in a non-terminal state. The request is not queued or restarted.
var ErrAlreadyRunning = errors.New("onboarding already running for agent")

// ErrUnknownSession is returned when no session exists for an agent.
var ErrUnknownSession = errors.New("no onboarding session for agent")

// Options configure a manager's defaults.
type Options struct {
	BatchSize     int
	TotalTarget   int
	RetryAttempts int
	RetryBackoff  time.Duration
}

// DefaultOptions returns the standard onboarding configuration.
func DefaultOptions() Options {
	return Options{
		BatchSize:     120,
		TotalTarget:   1000,
		RetryAttempts: 3,
		RetryBackoff:  2 * time.Second,
	}
}

// StartOptions override manager defaults for a single session.
type StartOptions struct {
	BatchSize   int
	TotalTarget int
}

// AskerFactory builds the LLM adapter used for one agent's session.
type AskerFactory func(agent core.Agent) ai.Asker

// Manager drives onboarding sessions: one state machine per agent, at most
// one active run per agent at any time.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	bank        *questions.Bank
	catalog     []core.Question
	log         *events.Log
	scorer      *persona.Scorer
	beliefs     *beliefs.Store
	tracker     *metrics.Tracker
	broadcaster *communication.Broadcaster
	store       storage.Storage
	newAsker    AskerFactory
	opts        Options
}

// NewManager wires an orchestrator over its collaborators.
func NewManager(
	catalog []core.Question,
	bank *questions.Bank,
	eventLog *events.Log,
	scorer *persona.Scorer,
	beliefStore *beliefs.Store,
	tracker *metrics.Tracker,
	broadcaster *communication.Broadcaster,
	store storage.Storage,
	newAsker AskerFactory,
	opts Options,
) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		bank:        bank,
		catalog:     catalog,
		log:         eventLog,
		scorer:      scorer,
		beliefs:     beliefStore,
		tracker:     tracker,
		broadcaster: broadcaster,
		store:       store,
		newAsker:    newAsker,
		opts:        opts,
	}
}

// Start creates a session for the agent and begins onboarding. Returns
// ErrAlreadyRunning when the agent's current session is non-terminal.
func (m *Manager) Start(agent core.Agent, startOpts StartOptions) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[agent.ID]; ok && !existing.State().Terminal() {
		return Snapshot{}, ErrAlreadyRunning
	}

	batchSize := m.opts.BatchSize
	if startOpts.BatchSize > 0 {
		batchSize = startOpts.BatchSize
	}
	totalTarget := m.opts.TotalTarget
	if startOpts.TotalTarget > 0 {
		totalTarget = startOpts.TotalTarget
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &Session{
		agentID:     agent.ID,
		state:       Idle,
		batchSize:   batchSize,
		totalTarget: totalTarget,
		startedAt:   time.Now().UTC(),
		cancel:      cancel,
	}
	m.sessions[agent.ID] = session

	// Fresh session: counters and cursor start over.
	m.tracker.Reset(agent.ID)
	m.bank.Reset(agent.ID)

	go m.run(ctx, agent, session)

	return session.Snapshot(), nil
}

// Cancel transitions a non-terminal session directly to FAILED with kind
// Cancelled. Any in-flight adapter call is abandoned, not awaited.
func (m *Manager) Cancel(agentID string) error {
	m.mu.Lock()
	session, ok := m.sessions[agentID]
	m.mu.Unlock()

	if !ok {
		return ErrUnknownSession
	}
	if session.State().Terminal() {
		return nil
	}
	session.cancel()
	return nil
}

// Status returns the session snapshot for an agent, consulting persisted
// terminal snapshots when no in-memory session exists.
func (m *Manager) Status(agentID string) (Snapshot, error) {
	m.mu.Lock()
	session, ok := m.sessions[agentID]
	m.mu.Unlock()

	if ok {
		return session.Snapshot(), nil
	}

	var snap Snapshot
	if err := m.store.GetObject(sessionKey(agentID), &snap); err != nil {
		return Snapshot{}, ErrUnknownSession
	}
	return snap, nil
}

func sessionKey(agentID string) string {
	return "session:" + agentID
}

// run is the per-agent state machine. Within a session, steps are strictly
// sequential: each batch's auto-completion decision depends on the prior
// batch's scored state.
func (m *Manager) run(ctx context.Context, agent core.Agent, s *Session) {
	asker := m.newAsker(agent)
	s.setState(Batching)
	log.Printf("Onboarding started for agent %s (batch=%d target=%d)", agent.ID, s.batchSize, s.totalTarget)

	for {
		if err := ctx.Err(); err != nil {
			m.fail(s, KindCancelled)
			return
		}

		remaining := s.totalTarget - s.AnsweredCount()
		count := s.batchSize
		if count > remaining {
			count = remaining
		}

		batch := m.bank.SampleBatch(agent.ID, count)
		if len(batch) > 0 {
			if kind, err := m.runBatch(ctx, agent, s, asker, batch); err != nil {
				m.fail(s, kind)
				return
			}
		}

		// Score the full event log to date, then decide where to go next.
		next, err := m.score(ctx, s)
		if err != nil {
			m.fail(s, classify(err))
			return
		}

		switch next {
		case Done:
			m.finish(s)
			return
		case AutoCompleting:
			if err := m.autoComplete(ctx, s); err != nil {
				m.fail(s, classify(err))
				return
			}
			if _, err := m.score(ctx, s); err != nil {
				m.fail(s, classify(err))
				return
			}
			m.finish(s)
			return
		case Batching:
			s.setState(Batching)
		}
	}
}

// runBatch answers every question of one batch through the adapter. A
// question that exhausts its retries fails the whole batch; questions are
// never silently skipped.
func (m *Manager) runBatch(ctx context.Context, agent core.Agent, s *Session, asker ai.Asker, batch []core.Question) (string, error) {
	for _, q := range batch {
		if err := ctx.Err(); err != nil {
			return KindCancelled, err
		}

		var answer ai.Answer
		err := retry(ctx, m.opts.RetryAttempts, m.opts.RetryBackoff, func() error {
			var askErr error
			answer, askErr = asker.Ask(ctx, q.Text)
			return askErr
		})
		if err != nil {
			log.Printf("Question %d failed for agent %s after %d attempts: %v", q.ID, agent.ID, m.opts.RetryAttempts, err)
			return classify(err), err
		}

		encoded, err := m.wrapAnswer(agent.ID, q, answer.Text)
		if err != nil {
			return KindProviderError, err
		}

		if _, err := m.log.Append(agent.ID, q.ID, answer.Text, answer.Tokens, encoded); err != nil {
			return KindProviderError, err
		}
		m.tracker.Record(agent.ID, answer.Tokens)
		s.incrementAnswered()
	}
	return "", nil
}

// wrapAnswer validates the exchange through the envelope codec and returns
// the encoded answer envelope for the event log.
func (m *Manager) wrapAnswer(agentID string, q core.Question, answerText string) ([]byte, error) {
	question := acl.NewEnvelope(OrchestratorSender, agentID, q.Text, 0, 1)
	if _, err := acl.Encode(question); err != nil {
		return nil, fmt.Errorf("question envelope rejected: %w", err)
	}

	reply := acl.NewEnvelope(agentID, OrchestratorSender, answerText,
		persona.EstimateValence(answerText), persona.EstimateConfidence(answerText))
	reply.KPIAnchor = acl.AnchorEngagement
	encoded, err := acl.Encode(reply)
	if err != nil {
		return nil, fmt.Errorf("answer envelope rejected: %w", err)
	}
	return encoded, nil
}

// score runs a scoring pass over the full event log, writes the summary
// belief, emits a progress event, and picks the next state.
func (m *Manager) score(ctx context.Context, s *Session) (SessionState, error) {
	s.setState(Scoring)

	if err := ctx.Err(); err != nil {
		return Failed, err
	}

	evs, err := m.log.List(s.agentID)
	if err != nil {
		return Failed, err
	}

	vec := m.scorer.Score(s.agentID, evs)
	if _, err := m.beliefs.Write(s.agentID, beliefs.KeyPersonaSummary, vec.Summary); err != nil {
		return Failed, err
	}

	answered := s.AnsweredCount()
	m.broadcaster.Publish(s.agentID, communication.ProgressEvent{
		Type:     communication.EventProgress,
		Fraction: float64(answered) / float64(s.totalTarget),
	})

	switch {
	case answered >= s.totalTarget:
		return Done, nil
	case m.bank.RemainingCount(s.agentID) > 0:
		return Batching, nil
	default:
		return AutoCompleting, nil
	}
}

// autoComplete synthesizes the remaining required answers without further
// external calls. Synthesized answers are appended as genuine events so
// replay and source counts stay consistent.
func (m *Manager) autoComplete(ctx context.Context, s *Session) error {
	s.setState(AutoCompleting)

	evs, err := m.log.List(s.agentID)
	if err != nil {
		return err
	}
	vec := m.scorer.Score(s.agentID, evs)

	residual := s.totalTarget - s.AnsweredCount()
	log.Printf("Auto-completing %d answers for agent %s", residual, s.agentID)

	for i := 0; i < residual; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		q := m.catalog[i%len(m.catalog)]
		text := m.scorer.Synthesize(vec, q)
		if _, err := m.log.Append(s.agentID, q.ID, text, 0, nil); err != nil {
			return err
		}
		s.incrementAnswered()
	}
	return nil
}

func (m *Manager) finish(s *Session) {
	s.markDone()
	m.persist(s)

	summary := ""
	if b, found, err := m.beliefs.Read(s.agentID, beliefs.KeyPersonaSummary); err == nil && found {
		summary = b.Value
	}
	m.broadcaster.Publish(s.agentID, communication.ProgressEvent{
		Type:    communication.EventDone,
		Summary: summary,
	})
	log.Printf("Onboarding complete for agent %s (%d answers)", s.agentID, s.AnsweredCount())
}

func (m *Manager) fail(s *Session, kind string) {
	s.markFailed(kind)
	m.persist(s)

	m.broadcaster.Publish(s.agentID, communication.ProgressEvent{
		Type:      communication.EventFailed,
		ErrorKind: kind,
	})
	log.Printf("Onboarding failed for agent %s: %s", s.agentID, kind)
}

func (m *Manager) persist(s *Session) {
	if err := m.store.PutObject(sessionKey(s.agentID), s.Snapshot()); err != nil {
		log.Printf("Failed to persist session for agent %s: %v", s.agentID, err)
	}
}

// classify maps an error to the session failure kind.
func classify(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ai.ErrTimeout):
		return KindTimeout
	default:
		return KindProviderError
	}
}
