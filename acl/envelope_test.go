package acl

import (
	"encoding/json"
	"reflect"
	"testing"
)

func validEnvelope() *Envelope {
	return NewEnvelope("orchestrator", "agent-1", "What drives you?", 0.25, 0.9)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	e := validEnvelope()
	e.KPIAnchor = AnchorEngagement
	e.SelfPatch = json.RawMessage(`{"param":"temperature","value":0.5}`)

	data, err := Encode(e)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !reflect.DeepEqual(e, decoded) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", decoded, e)
	}
}

func TestEnvelopeAddressing(t *testing.T) {
	t.Run("Broadcast", func(t *testing.T) {
		e := validEnvelope()
		e.Receiver = ""
		e.Broadcast = true
		if _, err := Encode(e); err != nil {
			t.Errorf("Broadcast envelope should encode: %v", err)
		}
	})

	t.Run("Neither receiver nor broadcast", func(t *testing.T) {
		e := validEnvelope()
		e.Receiver = ""
		if _, err := Encode(e); err == nil {
			t.Error("Expected validation failure with no addressee")
		}
	})

	t.Run("Both receiver and broadcast", func(t *testing.T) {
		e := validEnvelope()
		e.Broadcast = true
		if _, err := Encode(e); err == nil {
			t.Error("Expected validation failure with both addressing modes")
		}
	})

	t.Run("Broadcast marker as receiver", func(t *testing.T) {
		e := validEnvelope()
		e.Receiver = BroadcastMarker
		if _, err := Encode(e); err != nil {
			t.Errorf("Broadcast marker should be accepted: %v", err)
		}
	})
}

func TestEnvelopeBounds(t *testing.T) {
	encodeWith := func(valence, confidence float64) error {
		e := NewEnvelope("orchestrator", "agent-1", "content", valence, confidence)
		_, err := Encode(e)
		return err
	}

	if err := encodeWith(1.0, 0.5); err != nil {
		t.Errorf("valence 1.0 should be valid: %v", err)
	}
	if err := encodeWith(-1.0, 0.5); err != nil {
		t.Errorf("valence -1.0 should be valid: %v", err)
	}
	if err := encodeWith(1.5, 0.5); err == nil {
		t.Error("valence 1.5 should fail validation")
	}
	if err := encodeWith(0, 1.1); err == nil {
		t.Error("confidence 1.1 should fail validation")
	}
	if err := encodeWith(0, -0.1); err == nil {
		t.Error("confidence -0.1 should fail validation")
	}
}

func TestEnvelopeDecodeValidation(t *testing.T) {
	t.Run("Out of range valence rejected on decode", func(t *testing.T) {
		data := []byte(`{"message_id":"m1","sender":"a","receiver":"b","timestamp":"2025-01-01T00:00:00Z","content":"hi","valence_tag":1.5,"confidence":0.5}`)
		if _, err := Decode(data); err == nil {
			t.Error("Expected ValidationError for valence 1.5")
		}
	})

	t.Run("Boundary valence accepted on decode", func(t *testing.T) {
		data := []byte(`{"message_id":"m1","sender":"a","receiver":"b","timestamp":"2025-01-01T00:00:00Z","content":"hi","valence_tag":1.0,"confidence":0.5}`)
		if _, err := Decode(data); err != nil {
			t.Errorf("valence 1.0 should decode: %v", err)
		}
	})

	t.Run("Missing confidence rejected", func(t *testing.T) {
		data := []byte(`{"message_id":"m1","sender":"a","receiver":"b","timestamp":"2025-01-01T00:00:00Z","content":"hi","valence_tag":0}`)
		if _, err := Decode(data); err == nil {
			t.Error("Expected ValidationError for missing confidence")
		}
	})

	t.Run("Unknown fields ignored", func(t *testing.T) {
		data := []byte(`{"message_id":"m1","sender":"a","receiver":"b","timestamp":"2025-01-01T00:00:00Z","content":"hi","valence_tag":0,"confidence":0.5,"future_field":42}`)
		if _, err := Decode(data); err != nil {
			t.Errorf("Unknown fields should not reject decode: %v", err)
		}
	})

	t.Run("Bad timestamp rejected", func(t *testing.T) {
		data := []byte(`{"message_id":"m1","sender":"a","receiver":"b","timestamp":"yesterday","content":"hi","valence_tag":0,"confidence":0.5}`)
		if _, err := Decode(data); err == nil {
			t.Error("Expected ValidationError for unparseable timestamp")
		}
	})
}

func TestEnvelopeAnchors(t *testing.T) {
	e := validEnvelope()
	e.KPIAnchor = "velocity"
	_, err := Encode(e)
	if err == nil {
		t.Fatal("Expected UnknownAnchor failure")
	}
	if err != ErrUnknownAnchor {
		t.Errorf("Expected ErrUnknownAnchor, got %v", err)
	}

	for _, anchor := range []string{AnchorEngagement, AnchorCoherence, ""} {
		e := validEnvelope()
		e.KPIAnchor = anchor
		if _, err := Encode(e); err != nil {
			t.Errorf("Anchor %q should be valid: %v", anchor, err)
		}
	}
}

func TestEnvelopeSelfPatch(t *testing.T) {
	e := validEnvelope()
	e.SelfPatch = json.RawMessage(`"not an object"`)
	if _, err := Encode(e); err == nil {
		t.Error("Non-object self_patch should fail validation")
	}

	e = validEnvelope()
	e.SelfPatch = json.RawMessage(`{"anything":{"nested":true}}`)
	if _, err := Encode(e); err != nil {
		t.Errorf("Object self_patch should validate: %v", err)
	}
}

func TestEnvelopeContentRequired(t *testing.T) {
	e := validEnvelope()
	e.Content = ""
	if _, err := Encode(e); err == nil {
		t.Error("Empty content should fail validation")
	}
}
