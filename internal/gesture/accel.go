package gesture

import "math"

// AccelCurve maps per-axis speed in px/s to a motion multiplier.
type AccelCurve struct {
	LowSpeed  float64 `yaml:"low_speed"`
	HighSpeed float64 `yaml:"high_speed"`
	MaxMult   float64 `yaml:"max_mult"`
}

// DefaultAccel is the curve used when no tuning file overrides it.
var DefaultAccel = AccelCurve{LowSpeed: 200, HighSpeed: 1600, MaxMult: 3}

// Mult returns 1 at or below LowSpeed, MaxMult at or above HighSpeed, and a smoothstep between.
func (c AccelCurve) Mult(speed float64) float64 {
	if math.IsNaN(speed) || speed <= c.LowSpeed {
		return 1
	}
	if speed >= c.HighSpeed {
		return c.MaxMult
	}
	t := (speed - c.LowSpeed) / (c.HighSpeed - c.LowSpeed)
	return 1 + (c.MaxMult-1)*t*t*(3-2*t)
}

// Accel evaluates DefaultAccel.
func Accel(speed float64) float64 {
	return DefaultAccel.Mult(speed)
}
