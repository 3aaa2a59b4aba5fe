// Package pattern turns emotion state into timed vibration patterns for a
// haptic actuator. A Pattern is an ordered sequence of intensity/duration
// steps plus a repeat count; generation is pure and deterministic, and all
// intensities are clamped to [0,1] before anything reaches the wire.
package pattern

// Step is a single segment of a vibration pattern. Immutable value.
type Step struct {
	// Intensity is the motor drive level in [0,1].
	Intensity float64
	// Duration is the segment length in milliseconds.
	Duration int
}

// Pattern is a complete vibration pattern: the step sequence, the gap
// between repeats, and how many times the sequence plays.
type Pattern struct {
	Steps []Step
	// Interval is the gap between repeats in milliseconds.
	Interval int
	// Repeat is the number of times the step sequence plays.
	Repeat int
}

// IsZero reports whether the pattern is a no-op: no steps or no repeats
// both mean "stop".
func (p Pattern) IsZero() bool {
	return len(p.Steps) == 0 || p.Repeat == 0
}

// Zero returns the no-op pattern.
func Zero() Pattern {
	return Pattern{}
}

// Scale selects the integer intensity encoding the target firmware expects.
// Some firmware revisions drive the motor with 0-100 percentages, others
// with raw 0-255 PWM values; the same Pattern encodes to either.
type Scale int

const (
	Scale100 Scale = 100
	Scale255 Scale = 255
)

// WireStep is a Step in the device's JSON wire format.
type WireStep struct {
	Intensity int `json:"intensity"`
	Duration  int `json:"duration"`
}

// WirePattern is a Pattern in the device's JSON wire format
// (POST /pattern body).
type WirePattern struct {
	Steps       []WireStep `json:"steps"`
	Interval    int        `json:"interval"`
	RepeatCount int        `json:"repeat_count"`
}

// Encode converts the pattern to the wire format, rescaling each step
// intensity onto the target integer range.
func (p Pattern) Encode(scale Scale) WirePattern {
	steps := make([]WireStep, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, WireStep{
			Intensity: int(clampIntensity(s.Intensity) * float64(scale)),
			Duration:  s.Duration,
		})
	}
	return WirePattern{
		Steps:       steps,
		Interval:    p.Interval,
		RepeatCount: p.Repeat,
	}
}

// clampIntensity restricts an intensity to [0,1].
func clampIntensity(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
