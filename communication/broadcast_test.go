package communication

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

func TestSubscribeReceivesPublishedEvents(t *testing.T) {
	b := NewBroadcaster(nil)

	stream, unsubscribe := b.Subscribe("agent-1")
	defer unsubscribe()

	b.Publish("agent-1", ProgressEvent{Type: EventProgress, Fraction: 0.5})

	select {
	case ev := <-stream:
		if ev.Type != EventProgress || ev.Fraction != 0.5 {
			t.Errorf("Unexpected event %+v", ev)
		}
		if ev.AgentID != "agent-1" {
			t.Errorf("Publish should stamp the agent ID, got %q", ev.AgentID)
		}
		if ev.Timestamp == 0 {
			t.Error("Publish should stamp a timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestSubscribersAreIsolatedPerAgent(t *testing.T) {
	b := NewBroadcaster(nil)

	other, unsubscribe := b.Subscribe("agent-2")
	defer unsubscribe()

	b.Publish("agent-1", ProgressEvent{Type: EventDone})

	select {
	case ev := <-other:
		t.Errorf("agent-2 subscriber received agent-1 event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLateSubscriberSeesNothingRetroactively(t *testing.T) {
	b := NewBroadcaster(nil)

	b.Publish("agent-1", ProgressEvent{Type: EventProgress, Fraction: 0.25})

	stream, unsubscribe := b.Subscribe("agent-1")
	defer unsubscribe()

	select {
	case ev := <-stream:
		t.Errorf("Late subscriber should not replay, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	b := NewBroadcaster(nil)

	stream, unsubscribe := b.Subscribe("agent-1")
	unsubscribe()

	if _, ok := <-stream; ok {
		t.Error("Stream should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	b.Publish("agent-1", ProgressEvent{Type: EventDone})
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	b := NewBroadcaster(nil)

	_, unsubscribe := b.Subscribe("agent-1")
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*3; i++ {
			b.Publish("agent-1", ProgressEvent{Type: EventProgress, Fraction: float64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publisher blocked on a slow subscriber")
	}
}

func TestNATSBridgeRepublishesEvents(t *testing.T) {
	ns, err := server.NewServer(&server.Options{Port: -1})
	if err != nil {
		t.Fatalf("Failed to create NATS server: %v", err)
	}
	go ns.Start()
	defer ns.Shutdown()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("Embedded NATS server not ready")
	}

	broker, err := core.NewNATSBroker(ns.ClientURL())
	if err != nil {
		t.Fatalf("Failed to connect broker: %v", err)
	}
	defer broker.Close()

	agentMsgs := make(chan *nats.Msg, 4)
	if _, err := broker.Subscribe(core.AgentSubject("agent-1"), func(m *nats.Msg) {
		agentMsgs <- m
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	globalMsgs := make(chan *nats.Msg, 4)
	if _, err := broker.Subscribe(GlobalSubject, func(m *nats.Msg) {
		globalMsgs <- m
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	b := NewBroadcaster(broker)

	t.Run("Progress events reach the agent subject", func(t *testing.T) {
		b.Publish("agent-1", ProgressEvent{Type: EventProgress, Fraction: 0.5})

		select {
		case m := <-agentMsgs:
			var ev ProgressEvent
			if err := json.Unmarshal(m.Data, &ev); err != nil {
				t.Fatalf("Bad event payload: %v", err)
			}
			if ev.Type != EventProgress || ev.Fraction != 0.5 {
				t.Errorf("Unexpected event %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for NATS event")
		}
	})

	t.Run("Terminal events also reach the global subject", func(t *testing.T) {
		b.Publish("agent-1", ProgressEvent{Type: EventDone, Summary: "done"})

		select {
		case m := <-globalMsgs:
			var ev ProgressEvent
			if err := json.Unmarshal(m.Data, &ev); err != nil {
				t.Fatalf("Bad event payload: %v", err)
			}
			if ev.Type != EventDone {
				t.Errorf("Unexpected event %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for global NATS event")
		}
	})
}
