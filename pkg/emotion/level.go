package emotion

// Level grades a raw vibration-sensor reading into a coarse intensity bucket.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelExtreme
)

// Raw sensor thresholds for each level boundary.
const (
	sensorLow     = 50
	sensorMedium  = 200
	sensorHigh    = 500
	sensorExtreme = 800
)

// LevelFromSensor converts a raw sensor value into a Level.
func LevelFromSensor(value int) Level {
	switch {
	case value < sensorLow:
		return LevelNone
	case value < sensorMedium:
		return LevelLow
	case value < sensorHigh:
		return LevelMedium
	case value < sensorExtreme:
		return LevelHigh
	default:
		return LevelExtreme
	}
}

// LevelFromValue grades an emotion channel value (0..MaxValue) into a Level.
func LevelFromValue(value int) Level {
	switch {
	case value <= 0:
		return LevelNone
	case value <= 1:
		return LevelLow
	case value <= 3:
		return LevelMedium
	case value <= 4:
		return LevelHigh
	default:
		return LevelExtreme
	}
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	case LevelExtreme:
		return "extreme"
	default:
		return "none"
	}
}
