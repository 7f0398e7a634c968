// Package control handles the touch surface protocol and command application.
package control

import (
	"math"
	"time"

	"github.com/frudas24/deskpad/internal/gesture"
)

// Message is a control websocket payload.
type Message struct {
	T       string           `json:"t"`
	TS      float64          `json:"ts,omitempty"`
	Touches []gesture.Sample `json:"touches,omitempty"`
	Enabled *bool            `json:"enabled,omitempty"`
	Value   float64          `json:"value,omitempty"`
	Button  string           `json:"button,omitempty"`
	Key     string           `json:"key,omitempty"`
}

// Batch converts a touch message into an engine batch, dropping non-finite samples.
func (m Message) Batch() gesture.Batch {
	samples := make([]gesture.Sample, 0, len(m.Touches))
	for _, s := range m.Touches {
		if !finite(s.X) || !finite(s.Y) {
			continue
		}
		samples = append(samples, s)
	}
	return gesture.Batch{At: msToDuration(m.TS), Samples: samples}
}

// msToDuration converts a DOM event timestamp in milliseconds.
func msToDuration(ms float64) time.Duration {
	if !finite(ms) {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
