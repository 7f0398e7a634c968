// Package testutil provides shared fakes for package tests.
package testutil

import (
	"sync"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/wininput"
)

// Call records a single injected action.
type Call struct {
	Name   string
	X      int
	Y      int
	Button string
	Press  bool
}

// FakeInjector implements wininput.Injector and records calls for tests.
type FakeInjector struct {
	Calls []Call
	Err   error
}

// Ensure FakeInjector implements the interface.
var _ wininput.Injector = (*FakeInjector)(nil)

// MoveRel records a relative move.
func (f *FakeInjector) MoveRel(dx, dy int) error {
	f.Calls = append(f.Calls, Call{Name: "MoveRel", X: dx, Y: dy})
	return f.Err
}

// Button records a button transition.
func (f *FakeInjector) Button(button string, press bool) error {
	f.Calls = append(f.Calls, Call{Name: "Button", Button: button, Press: press})
	return f.Err
}

// Wheel records a vertical wheel delta.
func (f *FakeInjector) Wheel(delta int) error {
	f.Calls = append(f.Calls, Call{Name: "Wheel", Y: delta})
	return f.Err
}

// HWheel records a horizontal wheel delta.
func (f *FakeInjector) HWheel(delta int) error {
	f.Calls = append(f.Calls, Call{Name: "HWheel", X: delta})
	return f.Err
}

// Zoom records a zoom delta.
func (f *FakeInjector) Zoom(delta int) error {
	f.Calls = append(f.Calls, Call{Name: "Zoom", Y: delta})
	return f.Err
}

// RecordingSink implements gesture.Sink and keeps every command.
type RecordingSink struct {
	mu   sync.Mutex
	cmds []gesture.Command
}

// Ensure RecordingSink implements the interface.
var _ gesture.Sink = (*RecordingSink)(nil)

// Send records cmd.
func (s *RecordingSink) Send(cmd gesture.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
}

// Commands returns a copy of the recorded commands.
func (s *RecordingSink) Commands() []gesture.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gesture.Command, len(s.cmds))
	copy(out, s.cmds)
	return out
}
