// Package emotion models the four-channel emotion state that drives haptic
// feedback. A Vector is built either from agent tool arguments or from a raw
// touch-intensity reading, and the dominant channel selects which vibration
// preset the pattern generator uses.
package emotion

// Channel identifies one of the four emotion channels.
type Channel string

const (
	Joy   Channel = "joy"
	Fun   Channel = "fun"
	Anger Channel = "anger"
	Sad   Channel = "sad"
)

// channelOrder fixes the tie-break for Dominant: when several channels share
// the maximum value, the first one in this order wins. The original behavior
// depended on dict insertion order; here it is an explicit rule.
var channelOrder = [4]Channel{Joy, Fun, Anger, Sad}

// Channels returns the four channels in dominance order.
func Channels() [4]Channel {
	return channelOrder
}

// MaxValue is the upper bound of a channel value.
const MaxValue = 5

// MixedThreshold is the minimum value at which a non-dominant channel counts
// as a mixed emotion and triggers the blended pattern adjustment.
const MixedThreshold = 3

// Vector holds the four emotion channel values, each in 0..MaxValue.
// The channels are independent: they need not sum to anything.
type Vector struct {
	Joy   int `json:"joy"`
	Fun   int `json:"fun"`
	Anger int `json:"anger"`
	Sad   int `json:"sad"`
}

// New returns a Vector with each value clamped to 0..MaxValue.
func New(joy, fun, anger, sad int) Vector {
	return Vector{
		Joy:   clampValue(joy),
		Fun:   clampValue(fun),
		Anger: clampValue(anger),
		Sad:   clampValue(sad),
	}
}

// Value returns the level of a single channel. Unknown channels read as 0.
func (v Vector) Value(c Channel) int {
	switch c {
	case Joy:
		return v.Joy
	case Fun:
		return v.Fun
	case Anger:
		return v.Anger
	case Sad:
		return v.Sad
	}
	return 0
}

// IsZero reports whether every channel is 0.
func (v Vector) IsZero() bool {
	return v.Joy == 0 && v.Fun == 0 && v.Anger == 0 && v.Sad == 0
}

// Dominant returns the channel with the highest value and that value.
// Ties break by the fixed order joy, fun, anger, sad (first max wins).
func (v Vector) Dominant() (Channel, int) {
	best := channelOrder[0]
	bestVal := v.Value(best)
	for _, c := range channelOrder[1:] {
		if val := v.Value(c); val > bestVal {
			best = c
			bestVal = val
		}
	}
	return best, bestVal
}

// Mixed returns the non-dominant channels whose value is at least
// MixedThreshold, in dominance order.
func (v Vector) Mixed() []Channel {
	dominant, _ := v.Dominant()
	var mixed []Channel
	for _, c := range channelOrder {
		if c != dominant && v.Value(c) >= MixedThreshold {
			mixed = append(mixed, c)
		}
	}
	return mixed
}

func clampValue(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxValue {
		return MaxValue
	}
	return n
}
