//go:build windows

// Package wininput injects pointer input into the local desktop.
package wininput

import "github.com/lxn/win"

// Zoom sends a ctrl+wheel so the focused application zooms; positive deltas zoom in.
func (w *WinInjector) Zoom(delta int) error {
	if err := sendKeyboardInput(win.KEYBDINPUT{WVk: win.VK_CONTROL}); err != nil {
		return err
	}
	if err := w.Wheel(delta); err != nil {
		_ = sendKeyboardInput(win.KEYBDINPUT{WVk: win.VK_CONTROL, DwFlags: win.KEYEVENTF_KEYUP})
		return err
	}
	return sendKeyboardInput(win.KEYBDINPUT{WVk: win.VK_CONTROL, DwFlags: win.KEYEVENTF_KEYUP})
}
