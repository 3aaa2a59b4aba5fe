// Package hub provides a thread-safe websocket broadcast hub for haptic
// events, using the channel-based fan-out pattern. The dashboard subscribes
// here to watch touches, dispatches, and sensor triggers live.
package hub

import (
	"encoding/json"
	"time"
)

// Kind classifies a haptic event.
type Kind string

const (
	// KindTouch is a touch input entering the pipeline.
	KindTouch Kind = "touch"
	// KindDispatch is a pattern dispatched to a device.
	KindDispatch Kind = "dispatch"
	// KindSensor is an on-device vibration-sensor trigger.
	KindSensor Kind = "sensor"
	// KindAlert is an operator-pushed alert pattern.
	KindAlert Kind = "alert"
)

// Event is one pipeline event as broadcast to dashboard clients.
type Event struct {
	Kind      Kind            `json:"kind"`
	Device    string          `json:"device,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an Event, marshaling the payload. A payload that fails
// to marshal is dropped rather than blocking the pipeline.
func NewEvent(kind Kind, deviceName string, payload any) Event {
	ev := Event{
		Kind:      kind,
		Device:    deviceName,
		Timestamp: time.Now(),
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			ev.Payload = data
		}
	}
	return ev
}

// Encode renders the event as a JSON websocket frame.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}
