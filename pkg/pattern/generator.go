package pattern

import (
	"math"
	"strings"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

// Scaling constants for emotion-driven generation.
const (
	// MinMultiplier is the floor of the emotion multiplier. A nonzero
	// emotion is never fully silent.
	MinMultiplier = 0.2

	// MixedIntensityBoost and MixedFrequencyBoost apply when secondary
	// emotions cross the mixed threshold.
	MixedIntensityBoost = 1.1
	MixedFrequencyBoost = 1.2

	// mixedSuffix marks the pattern name of a blended result.
	mixedSuffix = "_mixed"

	// minRepeat keeps emotion-driven patterns long enough to be felt.
	minRepeat = 3
)

// Multiplier maps an emotion value 1..5 linearly onto 0.2..1.0.
// A value of 0 maps to the floor but callers short-circuit that case.
func Multiplier(value int) float64 {
	return MinMultiplier + (float64(value)/float64(emotion.MaxValue))*(1-MinMultiplier)
}

// Settings describes the vibration a Vector calls for, in the shape agent
// tools return to the model: human-readable fields plus the numbers needed
// to build the timed pattern.
type Settings struct {
	Enabled         bool              `json:"vibration_enabled"`
	Pattern         string            `json:"pattern"`
	Intensity       float64           `json:"intensity"`
	Frequency       float64           `json:"frequency"`
	Duration        float64           `json:"duration"`
	DominantEmotion emotion.Channel   `json:"dominant_emotion,omitempty"`
	MixedEmotions   []emotion.Channel `json:"mixed_emotions,omitempty"`
	Description     string            `json:"description"`
	EmotionLevel    int               `json:"emotion_level"`
}

// Generate derives vibration settings from an emotion Vector.
//
// The dominant channel picks the base preset, the channel value scales
// intensity, frequency and duration through Multiplier, and secondary
// channels at or above the mixed threshold apply the blend boosts and tag
// the pattern name.
// Intensity is hard-clamped to 1.0 after all boosts. A zero vector disables
// vibration entirely.
func Generate(v emotion.Vector) Settings {
	dominant, value := v.Dominant()
	if value == 0 {
		return Settings{
			Pattern:     string(None),
			Description: "no emotion detected, vibration off",
		}
	}

	p := PresetFor(dominant)
	mult := Multiplier(value)

	intensity := p.Intensity * mult
	frequency := p.Frequency * mult
	name := string(p.Type)

	mixed := v.Mixed()
	if len(mixed) > 0 {
		intensity *= MixedIntensityBoost
		frequency *= MixedFrequencyBoost
		name += mixedSuffix
	}

	return Settings{
		Enabled:         true,
		Pattern:         name,
		Intensity:       clampIntensity(intensity),
		Frequency:       frequency,
		Duration:        p.Duration * mult,
		DominantEmotion: dominant,
		MixedEmotions:   mixed,
		Description:     p.Description,
		EmotionLevel:    value,
	}
}

// BaseType returns the waveform type with any mixed tag stripped.
func (s Settings) BaseType() Type {
	return Type(strings.TrimSuffix(s.Pattern, mixedSuffix))
}

// Build turns the settings into a timed Pattern ready to encode. The repeat
// count comes from the adjusted frequency with a floor of minRepeat so even
// low-frequency emotions produce a perceptible sequence.
func (s Settings) Build() Pattern {
	if !s.Enabled {
		return Zero()
	}
	repeat := int(math.Round(s.Frequency))
	if repeat < minRepeat {
		repeat = minRepeat
	}
	return Custom(s.BaseType(), s.Intensity, int(s.Duration*1000), repeat)
}

// Custom builds a Pattern directly from a waveform type and explicit
// parameters, bypassing emotion reasoning. Used for direct hardware tests.
// Intensity is clamped to [0,1]; an unknown type yields a single flat step.
func Custom(t Type, intensity float64, durationMS, repeat int) Pattern {
	i := clampIntensity(intensity)
	if durationMS < 0 {
		durationMS = 0
	}
	if repeat < 1 {
		repeat = 1
	}

	switch t {
	case Pulse:
		return Pattern{
			Steps:    []Step{{i, durationMS / 2}, {0, durationMS / 2}},
			Interval: 50,
			Repeat:   repeat,
		}
	case Wave:
		third := durationMS / 3
		return Pattern{
			Steps:    []Step{{i * 0.3, third}, {i * 0.7, third}, {i, third}},
			Interval: 50,
			Repeat:   repeat,
		}
	case Burst:
		return Pattern{
			Steps:    []Step{{i, 100}, {0, 50}},
			Interval: 30,
			Repeat:   repeat * 3,
		}
	case Fade:
		return Pattern{
			Steps:    []Step{{i, durationMS / 2}, {i * 0.5, durationMS / 4}, {i * 0.2, durationMS / 4}},
			Interval: 50,
			Repeat:   repeat,
		}
	default:
		return Pattern{
			Steps:  []Step{{i, durationMS}},
			Repeat: repeat,
		}
	}
}

// vectorPatterns are the hand-tuned step sequences used by the direct
// vector-to-pattern path. Intensities here are the value-5 shapes; lower
// values scale them down through Multiplier.
var vectorPatterns = map[emotion.Channel]Pattern{
	emotion.Joy: {
		Steps:    []Step{{0.6, 100}, {0, 50}, {0.8, 150}, {0, 50}, {0.6, 100}},
		Interval: 50,
		Repeat:   2,
	},
	emotion.Fun: {
		Steps:    []Step{{0.6, 300}, {0.8, 400}, {0.7, 300}, {0.5, 200}},
		Interval: 50,
		Repeat:   1,
	},
	emotion.Anger: {
		Steps:    []Step{{0.9, 200}, {0, 30}, {1.0, 150}, {0, 30}, {0.8, 200}},
		Interval: 20,
		Repeat:   3,
	},
	emotion.Sad: {
		Steps:    []Step{{0.8, 500}, {0.6, 300}, {0.4, 200}},
		Interval: 100,
		Repeat:   2,
	},
}

// FromVector converts an emotion Vector straight into a timed Pattern using
// the hand-tuned per-channel sequences. Step intensities scale with the
// dominant value; the repeat count grows with it as well. A zero vector
// yields the zero pattern.
func FromVector(v emotion.Vector) Pattern {
	dominant, value := v.Dominant()
	if value == 0 {
		return Zero()
	}

	base := vectorPatterns[dominant]
	mult := Multiplier(value)

	steps := make([]Step, len(base.Steps))
	for i, s := range base.Steps {
		steps[i] = Step{Intensity: clampIntensity(s.Intensity * mult), Duration: s.Duration}
	}

	return Pattern{
		Steps:    steps,
		Interval: base.Interval,
		Repeat:   base.Repeat * (1 + (value-1)/2),
	}
}
