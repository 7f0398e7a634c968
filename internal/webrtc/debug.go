// Package webrtc provides the peer connection carrying the touch datachannel.
package webrtc

import "sync/atomic"

// debugDC controls whether verbose datachannel logs are emitted.
var debugDC atomic.Bool

// SetDebugLogging enables/disables verbose datachannel debug logs.
func SetDebugLogging(enabled bool) {
	debugDC.Store(enabled)
}

// debugEnabled reports whether datachannel debug logs are enabled.
func debugEnabled() bool {
	return debugDC.Load()
}
