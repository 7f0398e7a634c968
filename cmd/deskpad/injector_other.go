//go:build !windows

package main

import (
	"github.com/frudas24/deskpad/internal/wininput"
	"github.com/frudas24/deskpad/internal/wininput/robot"
)

// newInjector returns the robotgo injector.
func newInjector() (wininput.Injector, error) {
	return robot.New(), nil
}
