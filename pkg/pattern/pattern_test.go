package pattern

import (
	"testing"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

func TestPattern_IsZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Error("Zero() should report IsZero")
	}
	if !(Pattern{Steps: []Step{{0.5, 100}}}).IsZero() {
		t.Error("zero repeats means stop")
	}
	if (Pattern{Steps: []Step{{0.5, 100}}, Repeat: 1}).IsZero() {
		t.Error("a playable pattern should not report IsZero")
	}
}

func TestEncode_Scales(t *testing.T) {
	p := Pattern{
		Steps:    []Step{{1.0, 300}, {0.5, 100}, {0, 50}},
		Interval: 40,
		Repeat:   2,
	}

	w := p.Encode(Scale100)
	if w.Steps[0].Intensity != 100 || w.Steps[1].Intensity != 50 || w.Steps[2].Intensity != 0 {
		t.Errorf("Scale100 intensities = %+v", w.Steps)
	}
	if w.Interval != 40 || w.RepeatCount != 2 {
		t.Errorf("timing fields lost: %+v", w)
	}

	w = p.Encode(Scale255)
	if w.Steps[0].Intensity != 255 {
		t.Errorf("Scale255 full intensity = %d, want 255", w.Steps[0].Intensity)
	}

	// Out-of-range intensities clamp before scaling.
	w = (Pattern{Steps: []Step{{1.5, 10}, {-0.2, 10}}, Repeat: 1}).Encode(Scale100)
	if w.Steps[0].Intensity != 100 || w.Steps[1].Intensity != 0 {
		t.Errorf("clamping failed: %+v", w.Steps)
	}
}

func TestForLevel(t *testing.T) {
	if !ForLevel(emotion.LevelNone).IsZero() {
		t.Error("LevelNone should yield the zero pattern")
	}

	// Higher levels never repeat less or gap longer.
	order := []emotion.Level{emotion.LevelLow, emotion.LevelMedium, emotion.LevelHigh, emotion.LevelExtreme}
	prev := ForLevel(order[0])
	for _, l := range order[1:] {
		cur := ForLevel(l)
		if cur.Repeat < prev.Repeat {
			t.Errorf("%s repeats less than the level below it", l)
		}
		if cur.Interval > prev.Interval {
			t.Errorf("%s gaps longer than the level below it", l)
		}
		prev = cur
	}
}

func TestAlert(t *testing.T) {
	for _, kind := range AlertKinds() {
		if Alert(kind).IsZero() {
			t.Errorf("Alert(%q) should be playable", kind)
		}
	}

	// Unknown kinds fall back to the mildest alert.
	got := Alert("volcano")
	want := Alert("proximity_warning")
	if got.Repeat != want.Repeat || len(got.Steps) != len(want.Steps) {
		t.Errorf("unknown alert should fall back to proximity_warning")
	}
}

func TestPresetFor_UnknownChannel(t *testing.T) {
	if PresetFor(emotion.Channel("envy")) != PresetFor(emotion.Joy) {
		t.Error("unknown channel should fall back to the joy preset")
	}
}
