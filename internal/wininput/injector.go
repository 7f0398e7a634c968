// Package wininput injects pointer input into the local desktop.
package wininput

import "errors"

// ErrUnsupported indicates the requested input cannot be injected on this platform.
var ErrUnsupported = errors.New("wininput: unsupported input")

// WheelDelta is one wheel notch. Wheel, HWheel and Zoom deltas are in these units
// so that high-resolution scrolling survives on hosts that support it.
const WheelDelta = 120

// Injector defines the pointer operations the command applier uses.
type Injector interface {
	MoveRel(dx, dy int) error
	Button(button string, press bool) error
	Wheel(delta int) error
	HWheel(delta int) error
	Zoom(delta int) error
}
