package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAccel_BaselineAtLowSpeed verifies slow motion is not amplified.
func TestAccel_BaselineAtLowSpeed(t *testing.T) {
	for _, v := range []float64{0, 50, DefaultAccel.LowSpeed, math.NaN()} {
		assert.Equal(t, 1.0, Accel(v), "speed %v", v)
	}
}

// TestAccel_SaturatesAtHighSpeed verifies fast flicks are bounded.
func TestAccel_SaturatesAtHighSpeed(t *testing.T) {
	for _, v := range []float64{DefaultAccel.HighSpeed, 1e6, math.Inf(1)} {
		assert.Equal(t, DefaultAccel.MaxMult, Accel(v), "speed %v", v)
	}
}

// TestAccel_Monotonic verifies the multiplier never decreases with speed.
func TestAccel_Monotonic(t *testing.T) {
	prev := Accel(0)
	for v := 0.0; v <= 3000; v += 5 {
		cur := Accel(v)
		if cur < prev {
			t.Fatalf("multiplier decreased at %v: %v < %v", v, cur, prev)
		}
		if cur < 1 || cur > DefaultAccel.MaxMult {
			t.Fatalf("multiplier out of range at %v: %v", v, cur)
		}
		prev = cur
	}
}

// TestAccelCurve_Midpoint verifies the smoothstep midpoint.
func TestAccelCurve_Midpoint(t *testing.T) {
	c := AccelCurve{LowSpeed: 0, HighSpeed: 100, MaxMult: 5}
	assert.InDelta(t, 3, c.Mult(50), 1e-9)
}
