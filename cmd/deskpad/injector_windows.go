//go:build windows

package main

import "github.com/frudas24/deskpad/internal/wininput"

// newInjector returns the SendInput injector.
func newInjector() (wininput.Injector, error) {
	return wininput.NewInjector()
}
