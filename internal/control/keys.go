// Package control handles the touch surface protocol and command application.
package control

import "sync"

// KeyDef is one button of the key panel.
type KeyDef struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// CompactKeys is the always visible key row.
var CompactKeys = []KeyDef{
	{Label: "Esc", Key: "esc"},
	{Label: "Tab", Key: "tab"},
	{Label: "Ctrl", Key: "ctrl"},
	{Label: "Alt", Key: "alt"},
	{Label: "Shift", Key: "shift"},
	{Label: "Meta", Key: "meta"},
	{Label: "Home", Key: "home"},
	{Label: "End", Key: "end"},
	{Label: "PgUp", Key: "pgup"},
	{Label: "PgDn", Key: "pgdn"},
	{Label: "Del", Key: "del"},
}

// ExtraKeyGroups are the rows shown when the panel is expanded.
var ExtraKeyGroups = [][]KeyDef{
	{
		{Label: "Ins", Key: "insert"},
		{Label: "↑", Key: "arrowup"},
		{Label: "↓", Key: "arrowdown"},
		{Label: "←", Key: "arrowleft"},
		{Label: "→", Key: "arrowright"},
	},
	{
		{Label: "F1", Key: "f1"},
		{Label: "F2", Key: "f2"},
		{Label: "F3", Key: "f3"},
		{Label: "F4", Key: "f4"},
		{Label: "F5", Key: "f5"},
		{Label: "F6", Key: "f6"},
		{Label: "F7", Key: "f7"},
		{Label: "F8", Key: "f8"},
		{Label: "F9", Key: "f9"},
		{Label: "F10", Key: "f10"},
		{Label: "F11", Key: "f11"},
		{Label: "F12", Key: "f12"},
	},
	{
		{Label: "Mute", Key: "audiomute"},
		{Label: "Vol−", Key: "audiovoldown"},
		{Label: "Vol+", Key: "audiovolup"},
		{Label: "Prev", Key: "audioprev"},
		{Label: "Next", Key: "audionext"},
	},
}

const (
	keyPlay  = "audioplay"
	keyPause = "audiopause"
)

// knownKeys indexes every catalog key plus the play/pause pair.
var knownKeys = buildKnownKeys()

func buildKnownKeys() map[string]struct{} {
	out := map[string]struct{}{keyPlay: {}, keyPause: {}}
	for _, k := range CompactKeys {
		out[k.Key] = struct{}{}
	}
	for _, group := range ExtraKeyGroups {
		for _, k := range group {
			out[k.Key] = struct{}{}
		}
	}
	return out
}

// IsKnownKey reports whether name is in the key catalog.
func IsKnownKey(name string) bool {
	_, ok := knownKeys[name]
	return ok
}

// PlayPause is the client-side latched media toggle.
type PlayPause struct {
	mu      sync.Mutex
	playing bool
}

// Toggle flips the latch and returns the key to dispatch.
func (p *PlayPause) Toggle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := keyPlay
	if p.playing {
		key = keyPause
	}
	p.playing = !p.playing
	return key
}
