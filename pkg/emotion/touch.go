package emotion

import "math"

// Touch-intensity bands. The scalar encodes how a touch feels: 0 is nothing,
// 0.5 is most pleasant, 1.0 is painful.
const (
	touchLowBand  = 0.3
	touchHighBand = 0.7
)

// TouchInput is a single touch event as reported by the sensing layer.
type TouchInput struct {
	// Intensity is the touch strength in [0,1].
	Intensity float64 `json:"data"`
	// Area is the touched body part, free-form (e.g. "head").
	Area string `json:"touched_area"`
}

// FromTouch maps a touch-intensity scalar onto an emotion Vector.
//
// Intensities in the middle band feel pleasant and raise joy and fun,
// peaking at 0.5. Intensities above the high band feel painful and raise
// anger and sad, growing toward 1.0. A barely-there touch registers as
// faint sadness. Input is clamped to [0,1]; 0 yields the zero vector.
func FromTouch(intensity float64) Vector {
	i := clampUnit(intensity)

	switch {
	case i == 0:
		return Vector{}
	case i < touchLowBand:
		return Vector{Sad: 1}
	case i <= touchHighBand:
		pleasure := 1 - math.Abs(i-0.5)*2
		return New(1+int(math.Round(pleasure*4)), 1+int(math.Round(pleasure*2)), 0, 0)
	default:
		pain := (i - touchHighBand) / (1 - touchHighBand)
		return New(0, 0, 1+int(math.Round(pain*4)), 1+int(math.Round(pain*2)))
	}
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
