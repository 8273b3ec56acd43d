package acl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Known KPI anchors. Any other value fails validation.
const (
	AnchorEngagement = "engagement"
	AnchorCoherence  = "coherence"
)

// BroadcastMarker is the wire value carried instead of a receiver when an
// envelope addresses every agent.
const BroadcastMarker = "*"

// Envelope is the structured unit wrapping every inter-agent or
// agent-orchestrator message. Exactly one of Receiver or Broadcast must be
// set. Transient: constructed per exchange, persisted only for logging.
type Envelope struct {
	MessageID string `json:"message_id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver,omitempty"`
	Broadcast bool   `json:"broadcast,omitempty"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
	// Valence is the affective weight of the message, in [-1, 1].
	Valence *float64 `json:"valence_tag"`
	// Confidence is the sender's epistemic confidence, in [0, 1].
	Confidence *float64 `json:"confidence"`
	// KPIAnchor, if present, must be one of the known anchors.
	KPIAnchor string `json:"kpi_anchor,omitempty"`
	// SelfPatch is an opaque self-modification proposal. The codec checks
	// only that it is a JSON object; semantic legality is out of scope.
	SelfPatch json.RawMessage `json:"self_patch,omitempty"`
}

// ValidationError reports a malformed envelope. Failures are always
// surfaced, never auto-corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid envelope: %s: %s", e.Field, e.Reason)
}

// ErrUnknownAnchor is returned when kpi_anchor is present but not a member
// of the known anchor set.
var ErrUnknownAnchor = &ValidationError{Field: "kpi_anchor", Reason: "unknown anchor"}

// NewEnvelope creates an envelope addressed to a single receiver with a
// unique MessageID and the current timestamp.
func NewEnvelope(sender, receiver, content string, valence, confidence float64) *Envelope {
	return &Envelope{
		MessageID:  uuid.New().String(),
		Sender:     sender,
		Receiver:   receiver,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Content:    content,
		Valence:    &valence,
		Confidence: &confidence,
	}
}

// Validate checks every schema rule. It is applied on both encode and decode.
func (e *Envelope) Validate() error {
	if e.Sender == "" {
		return &ValidationError{Field: "sender", Reason: "required"}
	}
	hasReceiver := e.Receiver != "" && e.Receiver != BroadcastMarker
	isBroadcast := e.Broadcast || e.Receiver == BroadcastMarker
	if hasReceiver == isBroadcast {
		// Either both set or both absent.
		return &ValidationError{Field: "receiver", Reason: "exactly one of receiver or broadcast required"}
	}
	if e.Content == "" {
		return &ValidationError{Field: "content", Reason: "required"}
	}
	if e.Timestamp == "" {
		return &ValidationError{Field: "timestamp", Reason: "required"}
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		return &ValidationError{Field: "timestamp", Reason: "not a valid RFC3339 time"}
	}
	if e.Valence == nil {
		return &ValidationError{Field: "valence_tag", Reason: "required"}
	}
	if *e.Valence < -1.0 || *e.Valence > 1.0 {
		return &ValidationError{Field: "valence_tag", Reason: "out of range [-1, 1]"}
	}
	if e.Confidence == nil {
		return &ValidationError{Field: "confidence", Reason: "required"}
	}
	if *e.Confidence < 0.0 || *e.Confidence > 1.0 {
		return &ValidationError{Field: "confidence", Reason: "out of range [0, 1]"}
	}
	if e.KPIAnchor != "" && e.KPIAnchor != AnchorEngagement && e.KPIAnchor != AnchorCoherence {
		return ErrUnknownAnchor
	}
	if len(e.SelfPatch) > 0 {
		var patch map[string]interface{}
		if err := json.Unmarshal(e.SelfPatch, &patch); err != nil {
			return &ValidationError{Field: "self_patch", Reason: "not a JSON object"}
		}
	}
	return nil
}

// Encode validates the envelope and serializes it to JSON.
func Encode(e *Envelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// Decode deserializes and validates an envelope. Unknown fields are ignored
// for forward compatibility; all required fields must still validate.
func Decode(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, &ValidationError{Field: "envelope", Reason: err.Error()}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
