// Package device talks to network-addressable haptic actuators over their
// HTTP API. The interfaces here are small and composable; consumers should
// depend only on the capabilities they actually use (a pattern dispatcher
// does not need sensor access).
//
// Every operation reports outcome instead of raising: booleans for commands,
// nil for missing data. A dead device degrades to "no haptic feedback", it
// never takes the caller down.
package device

import (
	"context"

	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// Connector manages the connection lifecycle. Connect probes the device and
// succeeds only when it reports itself online; reachable-but-not-ready is a
// failed attempt.
type Connector interface {
	Connect(ctx context.Context) bool
	Disconnect(ctx context.Context)
	Connected() bool
}

// PatternSender dispatches vibration patterns. A true return acknowledges
// transmission only, not playback; the hardware offers no completion signal.
type PatternSender interface {
	SendPattern(ctx context.Context, p pattern.Pattern) bool
	Stop(ctx context.Context) bool
}

// StatusReader queries device state.
type StatusReader interface {
	Status(ctx context.Context) *Status
}

// SensorReader reads and tunes the on-device vibration sensor.
type SensorReader interface {
	ReadSensor(ctx context.Context) (int, bool)
	Calibrate(ctx context.Context) bool
	SetThreshold(ctx context.Context, value int) bool
}

// Controller is the composite interface for full device control.
type Controller interface {
	Connector
	PatternSender
	StatusReader
	SensorReader
}

// Status is the device's self-reported state (GET /status).
type Status struct {
	// Status is "online" when the device is ready for patterns.
	Status      string `json:"status"`
	SensorValue int    `json:"sensor_value"`
	Threshold   int    `json:"threshold"`
	UptimeMS    int64  `json:"uptime_ms"`
}

// Online reports whether the device declared itself ready.
func (s *Status) Online() bool {
	return s != nil && s.Status == "online"
}
