// Package robot injects pointer input through robotgo on desktops without SendInput.
package robot

import (
	"fmt"
	"sync"

	"github.com/frudas24/deskpad/internal/wininput"
	"github.com/go-vgo/robotgo"
)

// Injector drives the local desktop with robotgo. robotgo scrolls whole
// notches, so wheel units below one notch are carried per axis.
type Injector struct {
	mu             sync.Mutex
	wheelX, wheelY int
	zoom           int
}

// Ensure Injector implements the interface.
var _ wininput.Injector = (*Injector)(nil)

// New returns a robotgo-backed injector.
func New() *Injector {
	return &Injector{}
}

// MoveRel moves the cursor by a relative offset.
func (r *Injector) MoveRel(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}

// Button presses or releases a mouse button.
func (r *Injector) Button(button string, press bool) error {
	switch button {
	case "left", "right", "middle":
	default:
		return fmt.Errorf("%w: button %q", wininput.ErrUnsupported, button)
	}
	state := "up"
	if press {
		state = "down"
	}
	return robotgo.Toggle(button, state)
}

// Wheel scrolls vertically; positive deltas scroll up.
func (r *Injector) Wheel(delta int) error {
	if n := r.notches(&r.wheelY, delta); n != 0 {
		robotgo.Scroll(0, n)
	}
	return nil
}

// HWheel scrolls horizontally; positive deltas scroll right.
func (r *Injector) HWheel(delta int) error {
	if n := r.notches(&r.wheelX, delta); n != 0 {
		robotgo.Scroll(n, 0)
	}
	return nil
}

// Zoom scrolls with ctrl held; positive deltas zoom in.
func (r *Injector) Zoom(delta int) error {
	n := r.notches(&r.zoom, delta)
	if n == 0 {
		return nil
	}
	if err := robotgo.KeyToggle("ctrl", "down"); err != nil {
		return err
	}
	robotgo.Scroll(0, n)
	return robotgo.KeyToggle("ctrl", "up")
}

// notches adds delta wheel units to acc and returns the whole notches to scroll.
func (r *Injector) notches(acc *int, delta int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return carryNotches(acc, delta)
}

// carryNotches moves whole notches out of acc after adding delta.
func carryNotches(acc *int, delta int) int {
	*acc += delta
	n := *acc / wininput.WheelDelta
	*acc -= n * wininput.WheelDelta
	return n
}
