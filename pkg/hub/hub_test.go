package hub

import (
	"encoding/json"
	"testing"
)

func TestNewEvent_Encode(t *testing.T) {
	ev := NewEvent(KindDispatch, "wrist-left", map[string]any{"pattern": "pulse"})
	frame, err := ev.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded struct {
		Kind    string          `json:"kind"`
		Device  string          `json:"device"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(frame, &decoded); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	if decoded.Kind != "dispatch" || decoded.Device != "wrist-left" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Payload) == 0 {
		t.Error("payload missing")
	}
}

func TestNewEvent_UnmarshalablePayloadDropped(t *testing.T) {
	ev := NewEvent(KindTouch, "", map[string]any{"bad": func() {}})
	if ev.Payload != nil {
		t.Error("unmarshalable payload should be dropped, not kept")
	}
	if _, err := ev.Encode(); err != nil {
		t.Errorf("event should still encode: %v", err)
	}
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := New("test")
	// No Run loop draining: the buffered channel fills, then events drop.
	for i := 0; i < 300; i++ {
		h.Publish(NewEvent(KindSensor, "dev", map[string]int{"value": i}))
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
}
