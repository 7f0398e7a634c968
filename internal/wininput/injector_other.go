//go:build !windows

package wininput

// NewInjector reports that SendInput is unavailable; use the robot package instead.
func NewInjector() (Injector, error) {
	return nil, ErrUnsupported
}
