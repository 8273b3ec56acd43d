package communication

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Progress event kinds.
const (
	EventProgress = "progress"
	EventDone     = "done"
	EventFailed   = "failed"
)

// GlobalSubject carries terminal onboarding events for any agent.
const GlobalSubject = "onboarding.events"

// ProgressEvent is one notification on an agent's onboarding stream.
type ProgressEvent struct {
	Type      string  `json:"type"`
	AgentID   string  `json:"agent_id"`
	Fraction  float64 `json:"fraction,omitempty"`
	Summary   string  `json:"summary,omitempty"`
	ErrorKind string  `json:"error_kind,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// Broadcaster fans progress events out to per-agent subscribers. Delivery
// is best-effort: a subscriber that cannot keep up loses events rather than
// blocking the publisher, and a late subscriber only sees the stream from
// the point of subscription onward. When a NATS broker is attached, every
// event is also republished on the agent's subject for external consumers.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string][]chan ProgressEvent
	broker *core.NATSBroker
}

const subscriberBuffer = 16

// NewBroadcaster creates a broadcaster. broker may be nil.
func NewBroadcaster(broker *core.NATSBroker) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[string][]chan ProgressEvent),
		broker: broker,
	}
}

// Subscribe returns a channel of events for one agent plus an unsubscribe
// function. The channel is closed on unsubscribe.
func (b *Broadcaster) Subscribe(agentID string) (<-chan ProgressEvent, func()) {
	ch := make(chan ProgressEvent, subscriberBuffer)

	b.mu.Lock()
	b.subs[agentID] = append(b.subs[agentID], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[agentID]
		for i, c := range subs {
			if c == ch {
				b.subs[agentID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, unsubscribe
}

// Publish delivers an event to every current subscriber for the agent.
func (b *Broadcaster) Publish(agentID string, event ProgressEvent) {
	event.AgentID = agentID
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	b.mu.RLock()
	for _, ch := range b.subs[agentID] {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than stall the orchestrator.
		}
	}
	b.mu.RUnlock()

	if b.broker != nil {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal progress event: %v", err)
			return
		}
		if err := b.broker.PublishAgent(agentID, data); err != nil {
			log.Printf("Failed to publish progress event to NATS: %v", err)
		}
		if event.Type == EventDone || event.Type == EventFailed {
			if err := b.broker.Publish(GlobalSubject, data); err != nil {
				log.Printf("Failed to publish terminal event to NATS: %v", err)
			}
		}
	}
}
