package core

import (
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBroker encapsulates a NATS connection.
type NATSBroker struct {
	Conn *nats.Conn
}

// NewNATSBroker creates a new NATSBroker connected to the provided URL.
func NewNATSBroker(url string) (*NATSBroker, error) {
	nc, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSBroker{Conn: nc}, nil
}

// Publish sends data on the provided subject.
func (b *NATSBroker) Publish(subject string, data []byte) error {
	return b.Conn.Publish(subject, data)
}

// AgentSubject returns the per-agent onboarding subject.
func AgentSubject(agentID string) string {
	return fmt.Sprintf("agent.%s.onboarding", agentID)
}

// PublishAgent sends data on the per-agent onboarding subject.
func (b *NATSBroker) PublishAgent(agentID string, data []byte) error {
	return b.Conn.Publish(AgentSubject(agentID), data)
}

// Subscribe registers a callback for a specific subject.
func (b *NATSBroker) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	return b.Conn.Subscribe(subject, cb)
}

// Close gracefully closes the connection.
func (b *NATSBroker) Close() {
	b.Conn.Close()
}

// Global instance of the NATS broker.
var NatsBrokerInstance *NATSBroker

// SetupNATS initializes the global NATS broker. Call this function at startup.
func SetupNATS(url string) {
	broker, err := NewNATSBroker(url)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	NatsBrokerInstance = broker
	log.Printf("Connected to NATS at %s", url)
}
