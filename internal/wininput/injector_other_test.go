//go:build !windows

package wininput

import (
	"errors"
	"testing"
)

// TestNewInjector_Unsupported verifies SendInput is reported unavailable off Windows.
func TestNewInjector_Unsupported(t *testing.T) {
	inj, err := NewInjector()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if inj != nil {
		t.Fatalf("expected nil injector")
	}
}
