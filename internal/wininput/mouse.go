//go:build windows

// Package wininput injects pointer input into the local desktop.
package wininput

import (
	"fmt"

	"github.com/lxn/win"
)

// MoveRel moves the cursor by a relative offset.
func (w *WinInjector) MoveRel(dx, dy int) error {
	return sendMouseInput(win.MOUSEEVENTF_MOVE, int32(dx), int32(dy), 0)
}

// Button presses or releases a mouse button.
func (w *WinInjector) Button(button string, press bool) error {
	flags, ok := buttonFlags(button, press)
	if !ok {
		return fmt.Errorf("%w: button %q", ErrUnsupported, button)
	}
	return sendMouseInput(flags, 0, 0, 0)
}

// Wheel scrolls vertically; positive deltas scroll up.
func (w *WinInjector) Wheel(delta int) error {
	return sendMouseInput(win.MOUSEEVENTF_WHEEL, 0, 0, uint32(int32(delta)))
}

// HWheel scrolls horizontally; positive deltas scroll right.
func (w *WinInjector) HWheel(delta int) error {
	return sendMouseInput(win.MOUSEEVENTF_HWHEEL, 0, 0, uint32(int32(delta)))
}

// buttonFlags maps a button name to its down/up event flag.
func buttonFlags(button string, press bool) (uint32, bool) {
	switch button {
	case "left":
		if press {
			return win.MOUSEEVENTF_LEFTDOWN, true
		}
		return win.MOUSEEVENTF_LEFTUP, true
	case "right":
		if press {
			return win.MOUSEEVENTF_RIGHTDOWN, true
		}
		return win.MOUSEEVENTF_RIGHTUP, true
	case "middle":
		if press {
			return win.MOUSEEVENTF_MIDDLEDOWN, true
		}
		return win.MOUSEEVENTF_MIDDLEUP, true
	default:
		return 0, false
	}
}
