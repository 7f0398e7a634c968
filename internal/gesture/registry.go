// Package gesture turns raw multi-touch batches into pointer commands.
package gesture

import (
	"math"
	"time"
)

// Point is a position on the touch surface in CSS pixels.
type Point struct {
	X float64
	Y float64
}

// Sample is one contact reported in a touch batch.
type Sample struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Batch is a set of samples reported at the same instant.
type Batch struct {
	At      time.Duration
	Samples []Sample
}

// TrackedTouch is an active contact and its last processed sample.
type TrackedTouch struct {
	ID    int
	Pos   Point
	Start Point
	At    time.Duration
}

// Motion is the raw displacement of one touch within a move batch.
type Motion struct {
	ID      int
	DX      float64
	DY      float64
	Elapsed time.Duration
	Travel  float64
}

// Registry holds the currently active touches in arrival order.
type Registry struct {
	touches []*TrackedTouch
}

// Start adds or replaces touches, capturing their start position.
func (r *Registry) Start(at time.Duration, samples []Sample) {
	for _, s := range samples {
		pos := Point{X: s.X, Y: s.Y}
		t := &TrackedTouch{ID: s.ID, Pos: pos, Start: pos, At: at}
		if i := r.index(s.ID); i >= 0 {
			r.touches[i] = t
			continue
		}
		r.touches = append(r.touches, t)
	}
}

// Update moves known touches forward and returns their motion. Unknown IDs are skipped.
func (r *Registry) Update(at time.Duration, samples []Sample) []Motion {
	motions := make([]Motion, 0, len(samples))
	for _, s := range samples {
		i := r.index(s.ID)
		if i < 0 {
			continue
		}
		t := r.touches[i]
		m := Motion{
			ID:      s.ID,
			DX:      s.X - t.Pos.X,
			DY:      s.Y - t.Pos.Y,
			Elapsed: at - t.At,
		}
		t.Pos = Point{X: s.X, Y: s.Y}
		t.At = at
		m.Travel = distance(t.Start, t.Pos)
		motions = append(motions, m)
	}
	return motions
}

// End removes the touches with the given IDs and reports how many were removed.
func (r *Registry) End(ids []int) int {
	removed := 0
	for _, id := range ids {
		i := r.index(id)
		if i < 0 {
			continue
		}
		r.touches = append(r.touches[:i], r.touches[i+1:]...)
		removed++
	}
	return removed
}

// Len returns the number of active touches.
func (r *Registry) Len() int {
	return len(r.touches)
}

// Touches returns a copy of the active touches.
func (r *Registry) Touches() []TrackedTouch {
	out := make([]TrackedTouch, len(r.touches))
	for i, t := range r.touches {
		out[i] = *t
	}
	return out
}

// PairDistance returns the distance between the two active touches when exactly two are active.
func (r *Registry) PairDistance() (float64, bool) {
	if len(r.touches) != 2 {
		return 0, false
	}
	return distance(r.touches[0].Pos, r.touches[1].Pos), true
}

// Reset drops every active touch.
func (r *Registry) Reset() {
	r.touches = nil
}

// index returns the slice index of id, or -1.
func (r *Registry) index(id int) int {
	for i, t := range r.touches {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// distance returns the straight-line distance between two points.
func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
