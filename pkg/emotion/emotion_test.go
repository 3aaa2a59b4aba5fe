package emotion

import "testing"

func TestVector_Dominant(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector
		want    Channel
		wantVal int
	}{
		{"joy wins", Vector{Joy: 5, Fun: 2}, Joy, 5},
		{"anger wins", Vector{Anger: 5}, Anger, 5},
		{"all zero picks joy", Vector{}, Joy, 0},
		{"tie breaks to joy", Vector{Joy: 3, Fun: 3}, Joy, 3},
		{"tie breaks to fun over sad", Vector{Fun: 4, Sad: 4}, Fun, 4},
		{"tie breaks to anger over sad", Vector{Anger: 2, Sad: 2}, Anger, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotVal := tt.v.Dominant()
			if got != tt.want || gotVal != tt.wantVal {
				t.Errorf("Dominant() = (%s, %d), want (%s, %d)", got, gotVal, tt.want, tt.wantVal)
			}
		})
	}
}

func TestVector_Mixed(t *testing.T) {
	v := Vector{Joy: 5, Fun: 3, Anger: 2, Sad: 0}
	mixed := v.Mixed()
	if len(mixed) != 1 || mixed[0] != Fun {
		t.Errorf("Mixed() = %v, want [fun]", mixed)
	}

	// Below threshold: nothing counts as mixed.
	v = Vector{Joy: 5, Fun: 2, Anger: 2, Sad: 2}
	if mixed := v.Mixed(); len(mixed) != 0 {
		t.Errorf("Mixed() = %v, want empty", mixed)
	}

	// The dominant channel never counts as mixed.
	v = Vector{Anger: 5, Sad: 5}
	mixed = v.Mixed()
	if len(mixed) != 1 || mixed[0] != Sad {
		t.Errorf("Mixed() = %v, want [sad] (anger is dominant by tie-break)", mixed)
	}
}

func TestNew_Clamps(t *testing.T) {
	v := New(9, -1, 5, 0)
	if v.Joy != 5 {
		t.Errorf("Joy: got %d, want 5 (clamped)", v.Joy)
	}
	if v.Fun != 0 {
		t.Errorf("Fun: got %d, want 0 (clamped)", v.Fun)
	}
}

func TestVector_IsZero(t *testing.T) {
	if !(Vector{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if (Vector{Sad: 1}).IsZero() {
		t.Error("nonzero vector should not report IsZero")
	}
}

func TestFromTouch_Bands(t *testing.T) {
	// No touch: nothing felt.
	if v := FromTouch(0); !v.IsZero() {
		t.Errorf("FromTouch(0) = %+v, want zero", v)
	}

	// Most pleasant point: joy peaks and dominates.
	v := FromTouch(0.5)
	if dom, _ := v.Dominant(); dom != Joy {
		t.Errorf("FromTouch(0.5) dominant = %s, want joy", dom)
	}
	if v.Joy != 5 {
		t.Errorf("FromTouch(0.5).Joy = %d, want 5", v.Joy)
	}
	if v.Anger != 0 || v.Sad != 0 {
		t.Errorf("pleasant touch should not raise anger/sad: %+v", v)
	}

	// Painful touch: anger dominates.
	v = FromTouch(1.0)
	if dom, _ := v.Dominant(); dom != Anger {
		t.Errorf("FromTouch(1.0) dominant = %s, want anger", dom)
	}
	if v.Anger != 5 {
		t.Errorf("FromTouch(1.0).Anger = %d, want 5", v.Anger)
	}

	// Barely-there touch registers as faint sadness.
	v = FromTouch(0.1)
	if v.Sad != 1 || v.Joy != 0 {
		t.Errorf("FromTouch(0.1) = %+v, want {Sad:1}", v)
	}

	// Out-of-range input clamps instead of erroring.
	if v := FromTouch(2.0); v.Anger != 5 {
		t.Errorf("FromTouch(2.0).Anger = %d, want 5 (clamped to 1.0)", v.Anger)
	}
	if v := FromTouch(-0.5); !v.IsZero() {
		t.Errorf("FromTouch(-0.5) = %+v, want zero (clamped to 0)", v)
	}
}

func TestLevelFromSensor(t *testing.T) {
	tests := []struct {
		value int
		want  Level
	}{
		{0, LevelNone},
		{49, LevelNone},
		{50, LevelLow},
		{199, LevelLow},
		{200, LevelMedium},
		{499, LevelMedium},
		{500, LevelHigh},
		{799, LevelHigh},
		{800, LevelExtreme},
		{1023, LevelExtreme},
	}
	for _, tt := range tests {
		if got := LevelFromSensor(tt.value); got != tt.want {
			t.Errorf("LevelFromSensor(%d) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestLevelFromValue(t *testing.T) {
	tests := []struct {
		value int
		want  Level
	}{
		{0, LevelNone},
		{1, LevelLow},
		{2, LevelMedium},
		{3, LevelMedium},
		{4, LevelHigh},
		{5, LevelExtreme},
	}
	for _, tt := range tests {
		if got := LevelFromValue(tt.value); got != tt.want {
			t.Errorf("LevelFromValue(%d) = %s, want %s", tt.value, got, tt.want)
		}
	}
}
