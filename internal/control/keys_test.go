package control

import "testing"

// TestIsKnownKey verifies catalog membership.
func TestIsKnownKey(t *testing.T) {
	for _, k := range []string{"esc", "pgdn", "arrowleft", "f12", "audionext", "audioplay"} {
		if !IsKnownKey(k) {
			t.Fatalf("expected %q to be known", k)
		}
	}
	for _, k := range []string{"", "ESC", "f13", "rm -rf"} {
		if IsKnownKey(k) {
			t.Fatalf("expected %q to be unknown", k)
		}
	}
}

// TestPlayPause_Alternates verifies the latch starts with play and alternates.
func TestPlayPause_Alternates(t *testing.T) {
	var p PlayPause
	want := []string{"audioplay", "audiopause", "audioplay"}
	for i, w := range want {
		if got := p.Toggle(); got != w {
			t.Fatalf("toggle %d: expected %q, got %q", i, w, got)
		}
	}
}
