package pattern

import "github.com/FujiiNoritsugu/go-haptic/pkg/emotion"

// Type names a base waveform shape.
type Type string

const (
	Pulse Type = "pulse"
	Wave  Type = "wave"
	Burst Type = "burst"
	Fade  Type = "fade"
	None  Type = "none"
)

// Preset is the base waveform for one emotion channel before emotion-value
// scaling is applied.
type Preset struct {
	Type Type
	// Intensity is the base drive level in [0,1].
	Intensity float64
	// Frequency is the base repetition rate in Hz.
	Frequency float64
	// Duration is the base length of one cycle in seconds.
	Duration float64
	// Description is a short human-readable summary for agent output.
	Description string
}

// presets maps each emotion channel to its base waveform.
var presets = map[emotion.Channel]Preset{
	emotion.Joy:   {Pulse, 0.6, 2.0, 0.5, "light rhythmic pulses"},
	emotion.Fun:   {Wave, 0.7, 3.0, 0.3, "quick playful waves"},
	emotion.Anger: {Burst, 0.9, 5.0, 0.2, "sharp intense bursts"},
	emotion.Sad:   {Fade, 0.4, 1.0, 1.0, "slow fading hum"},
}

// PresetFor returns the base waveform for a channel. Unknown channels get
// the joy preset so a bad argument still produces something felt.
func PresetFor(c emotion.Channel) Preset {
	if p, ok := presets[c]; ok {
		return p
	}
	return presets[emotion.Joy]
}

// levelPatterns maps each sensor-derived level to a fixed feedback pattern.
// These fire when the vibration sensor crosses a threshold, so they favor
// recognizability over nuance.
var levelPatterns = map[emotion.Level]Pattern{
	emotion.LevelLow: {
		Steps:    []Step{{0.3, 100}, {0, 200}},
		Interval: 50,
		Repeat:   2,
	},
	emotion.LevelMedium: {
		Steps:    []Step{{0.6, 150}, {0, 100}, {0.4, 100}},
		Interval: 50,
		Repeat:   3,
	},
	emotion.LevelHigh: {
		Steps:    []Step{{0.9, 200}, {0, 50}, {0.7, 150}},
		Interval: 30,
		Repeat:   4,
	},
	emotion.LevelExtreme: {
		Steps:    []Step{{1.0, 300}, {0, 50}, {1.0, 300}},
		Interval: 20,
		Repeat:   5,
	},
}

// ForLevel returns the feedback pattern for a sensor level.
// LevelNone yields the zero pattern.
func ForLevel(l emotion.Level) Pattern {
	return levelPatterns[l]
}

// Alert patterns are long, unmistakable sequences for out-of-band warnings
// pushed by an operator rather than derived from conversation.
var alertPatterns = map[string]Pattern{
	"earthquake": {
		Steps:    []Step{{1.0, 500}, {0, 100}, {1.0, 500}},
		Interval: 10,
		Repeat:   10,
	},
	"machine_fault": {
		Steps:    []Step{{0.8, 100}, {0, 100}},
		Interval: 50,
		Repeat:   20,
	},
	"proximity_warning": {
		Steps:    []Step{{0.5, 200}, {0.7, 200}, {1.0, 200}},
		Interval: 100,
		Repeat:   3,
	},
}

// Alert returns the named alert pattern. Unknown names fall back to the
// proximity warning, the mildest of the set.
func Alert(kind string) Pattern {
	if p, ok := alertPatterns[kind]; ok {
		return p
	}
	return alertPatterns["proximity_warning"]
}

// AlertKinds lists the recognized alert names.
func AlertKinds() []string {
	return []string{"earthquake", "machine_fault", "proximity_warning"}
}
