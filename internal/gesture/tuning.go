package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds the recognition constants.
type Tuning struct {
	// MoveThresholds is indexed by active touch count minus one and clamped to the last entry.
	MoveThresholds []float64     `yaml:"move_thresholds"`
	TapTimeout     time.Duration `yaml:"tap_timeout"`
	PinchThreshold float64       `yaml:"pinch_threshold"`
	Accel          AccelCurve    `yaml:"accel"`
}

// DefaultTuning returns the built-in recognition constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveThresholds: []float64{10, 15, 20},
		TapTimeout:     250 * time.Millisecond,
		PinchThreshold: 10,
		Accel:          DefaultAccel,
	}
}

// Validate reports the first inconsistent value.
func (t Tuning) Validate() error {
	if len(t.MoveThresholds) == 0 {
		return errors.New("move_thresholds must not be empty")
	}
	for i, v := range t.MoveThresholds {
		if !(v >= 0) || math.IsInf(v, 0) {
			return fmt.Errorf("move_thresholds[%d] must be a finite value >= 0", i)
		}
	}
	if t.TapTimeout <= 0 {
		return errors.New("tap_timeout must be > 0")
	}
	if !(t.PinchThreshold >= 0) || math.IsInf(t.PinchThreshold, 0) {
		return errors.New("pinch_threshold must be a finite value >= 0")
	}
	if !(t.Accel.MaxMult >= 1) || math.IsInf(t.Accel.MaxMult, 0) {
		return errors.New("accel.max_mult must be a finite value >= 1")
	}
	if !(t.Accel.LowSpeed >= 0) || !(t.Accel.HighSpeed > t.Accel.LowSpeed) {
		return errors.New("accel speeds must satisfy 0 <= low_speed < high_speed")
	}
	return nil
}

// threshold returns the motion threshold for count active touches.
func (t Tuning) threshold(count int) float64 {
	if count < 1 {
		count = 1
	}
	if count > len(t.MoveThresholds) {
		count = len(t.MoveThresholds)
	}
	return t.MoveThresholds[count-1]
}

// LoadTuning reads a YAML tuning file over the defaults. Missing files return the defaults.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTuning(), nil
		}
		return Tuning{}, err
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTuning decodes YAML over the defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
