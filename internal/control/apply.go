// Package control handles the touch surface protocol and command application.
package control

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/wininput"
)

// errKeyNotInjected marks key commands, which are only forwarded to remote hosts.
var errKeyNotInjected = errors.New("key commands are not injected locally")

// pixelsPerNotch is the finger travel, after sensitivity, that scrolls or zooms one wheel notch.
const pixelsPerNotch = 30.0

// wheelUnitsPerPixel converts gesture pixels into injector wheel units.
const wheelUnitsPerPixel = wininput.WheelDelta / pixelsPerNotch

// ApplierOptions scales wheel and zoom output; 1 means one notch per 30 px.
type ApplierOptions struct {
	WheelScale float64
	ZoomScale  float64
	Debug      bool
}

// Applier executes gesture commands on a local injector.
type Applier struct {
	mu       sync.Mutex
	injector wininput.Injector
	opts     ApplierOptions

	// Sub-unit remainders carried to the next command of the same kind.
	moveX, moveY   float64
	wheelX, wheelY float64
	zoom           float64
}

// Ensure Applier is a command sink.
var _ gesture.Sink = (*Applier)(nil)

// NewApplier returns an applier for injector.
func NewApplier(injector wininput.Injector, opts ApplierOptions) (*Applier, error) {
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	if opts.WheelScale <= 0 {
		opts.WheelScale = 1
	}
	if opts.ZoomScale <= 0 {
		opts.ZoomScale = 1
	}
	return &Applier{injector: injector, opts: opts}, nil
}

// Send applies cmd and logs failures; the gesture engine never waits on injection.
func (a *Applier) Send(cmd gesture.Command) {
	if err := a.Apply(cmd); err != nil {
		if errors.Is(err, errKeyNotInjected) {
			if a.opts.Debug {
				log.Printf("input: key %q dropped: %v", cmd.Key, err)
			}
			return
		}
		log.Printf("input: %s: %v", cmd.Type, err)
		return
	}
	if a.opts.Debug {
		log.Printf("input: applied %+v", cmd)
	}
}

// Apply executes a single command.
func (a *Applier) Apply(cmd gesture.Command) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch cmd.Type {
	case gesture.CmdMove:
		dx := carry(&a.moveX, cmd.DX)
		dy := carry(&a.moveY, cmd.DY)
		if dx == 0 && dy == 0 {
			return nil
		}
		return a.injector.MoveRel(dx, dy)
	case gesture.CmdScroll:
		// Positive dy scrolls content down, which is a negative wheel delta.
		scale := a.opts.WheelScale * wheelUnitsPerPixel
		wy := carry(&a.wheelY, -cmd.DY*scale)
		wx := carry(&a.wheelX, cmd.DX*scale)
		if wy != 0 {
			if err := a.injector.Wheel(wy); err != nil {
				return err
			}
		}
		if wx != 0 {
			return a.injector.HWheel(wx)
		}
		return nil
	case gesture.CmdZoom:
		z := carry(&a.zoom, cmd.Delta*a.opts.ZoomScale*wheelUnitsPerPixel)
		if z == 0 {
			return nil
		}
		return a.injector.Zoom(z)
	case gesture.CmdClick:
		if !cmd.Button.Valid() {
			return fmt.Errorf("unknown button %q", cmd.Button)
		}
		return a.injector.Button(string(cmd.Button), cmd.Press)
	case gesture.CmdKey:
		return errKeyNotInjected
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

// carry adds v to the remainder in acc and returns the whole units to emit.
func carry(acc *float64, v float64) int {
	total := *acc + v
	whole := math.Trunc(total)
	*acc = total - whole
	return int(whole)
}
