// Package session holds runtime state for the active touch surface.
package session

import (
	"sync"

	"github.com/frudas24/deskpad/internal/gesture"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	InputEnabled  bool
	ScrollMode    bool
	KeyboardOpen  bool
	Tracking      bool
	Sensitivity   float64
}

// Session holds runtime state for the active touch surface.
type Session struct {
	mu            sync.RWMutex
	password      string
	authRequired  bool
	authenticated bool
	inputEnabled  bool
	scrollMode    bool
	keyboardOpen  bool
	tracking      bool
	sensitivity   float64
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:     password,
		authRequired: true,
		inputEnabled: true,
		sensitivity:  gesture.DefaultSensitivity,
	}
}

// SetAuthRequired disables the password gate when false.
func (s *Session) SetAuthRequired(required bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authRequired = required
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated || !s.authRequired
}

// SetInputEnabled toggles whether inputs are forwarded to the host.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether inputs are forwarded to the host.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetScrollMode records the button bar scroll toggle.
func (s *Session) SetScrollMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollMode = on
}

// ScrollMode returns the scroll toggle.
func (s *Session) ScrollMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollMode
}

// SetKeyboardOpen records whether the on-screen keyboard is shown.
func (s *Session) SetKeyboardOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyboardOpen = open
}

// SetTracking records whether a touch is currently active.
func (s *Session) SetTracking(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = on
}

// SetSensitivity records the accepted sensitivity.
func (s *Session) SetSensitivity(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensitivity = v
}

// Sensitivity returns the recorded sensitivity.
func (s *Session) Sensitivity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensitivity
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated || !s.authRequired,
		InputEnabled:  s.inputEnabled,
		ScrollMode:    s.scrollMode,
		KeyboardOpen:  s.keyboardOpen,
		Tracking:      s.tracking,
		Sensitivity:   s.sensitivity,
	}
}
