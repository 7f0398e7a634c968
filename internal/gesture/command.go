package gesture

import (
	"encoding/json"
	"fmt"
)

// CommandType discriminates outbound pointer commands.
type CommandType string

const (
	// CmdMove is relative cursor motion.
	CmdMove CommandType = "move"
	// CmdScroll is relative wheel motion.
	CmdScroll CommandType = "scroll"
	// CmdZoom is a relative pinch distance change.
	CmdZoom CommandType = "zoom"
	// CmdClick is a discrete button press or release.
	CmdClick CommandType = "click"
	// CmdKey is a named key from the key panel.
	CmdKey CommandType = "key"
)

// Button names a mouse button.
type Button string

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = "left"
	// ButtonRight is the secondary button.
	ButtonRight Button = "right"
	// ButtonMiddle is the wheel button.
	ButtonMiddle Button = "middle"
)

// Valid reports whether b names a known button.
func (b Button) Valid() bool {
	switch b {
	case ButtonLeft, ButtonRight, ButtonMiddle:
		return true
	default:
		return false
	}
}

// Command is one instruction for the remote pointer.
type Command struct {
	Type   CommandType `json:"type"`
	DX     float64     `json:"dx"`
	DY     float64     `json:"dy"`
	Delta  float64     `json:"delta"`
	Button Button      `json:"button"`
	Press  bool        `json:"press"`
	Key    string      `json:"key"`
}

// Move builds a cursor motion command.
func Move(dx, dy float64) Command {
	return Command{Type: CmdMove, DX: dx, DY: dy}
}

// Scroll builds a wheel motion command.
func Scroll(dx, dy float64) Command {
	return Command{Type: CmdScroll, DX: dx, DY: dy}
}

// Zoom builds a pinch zoom command.
func Zoom(delta float64) Command {
	return Command{Type: CmdZoom, Delta: delta}
}

// Click builds a button press or release command.
func Click(b Button, press bool) Command {
	return Command{Type: CmdClick, Button: b, Press: press}
}

// Key builds a named key command.
func Key(name string) Command {
	return Command{Type: CmdKey, Key: name}
}

type motionWire struct {
	Type CommandType `json:"type"`
	DX   float64     `json:"dx"`
	DY   float64     `json:"dy"`
}

type zoomWire struct {
	Type  CommandType `json:"type"`
	Delta float64     `json:"delta"`
}

type clickWire struct {
	Type   CommandType `json:"type"`
	Button Button      `json:"button"`
	Press  bool        `json:"press"`
}

type keyWire struct {
	Type CommandType `json:"type"`
	Key  string      `json:"key"`
}

// MarshalJSON encodes only the fields that belong to the command type.
func (c Command) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case CmdMove, CmdScroll:
		return json.Marshal(motionWire{Type: c.Type, DX: c.DX, DY: c.DY})
	case CmdZoom:
		return json.Marshal(zoomWire{Type: c.Type, Delta: c.Delta})
	case CmdClick:
		return json.Marshal(clickWire{Type: c.Type, Button: c.Button, Press: c.Press})
	case CmdKey:
		return json.Marshal(keyWire{Type: c.Type, Key: c.Key})
	default:
		return nil, fmt.Errorf("unknown command type %q", c.Type)
	}
}

// UnmarshalJSON decodes a command and rejects unknown types or buttons.
func (c *Command) UnmarshalJSON(data []byte) error {
	type fields Command
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	switch f.Type {
	case CmdMove, CmdScroll, CmdZoom:
	case CmdClick:
		if !f.Button.Valid() {
			return fmt.Errorf("unknown button %q", f.Button)
		}
	case CmdKey:
		if f.Key == "" {
			return fmt.Errorf("key command without key")
		}
	default:
		return fmt.Errorf("unknown command type %q", f.Type)
	}
	*c = Command(f)
	return nil
}

// Sink receives emitted commands. Send must not block or call back into the engine.
type Sink interface {
	Send(Command)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Command)

// Send calls f(cmd).
func (f SinkFunc) Send(cmd Command) {
	f(cmd)
}
