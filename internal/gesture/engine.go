package gesture

import (
	"errors"
	"math"
	"sync"
	"time"
)

// DefaultSensitivity scales every spatial delta before emission.
const DefaultSensitivity = 1.5

// ErrInvalidSensitivity is returned for non-finite or non-positive sensitivity values.
var ErrInvalidSensitivity = errors.New("sensitivity must be a finite value > 0")

// State is the lifecycle phase of the current gesture session.
type State int

const (
	// StateIdle means no touch is active and no tap is pending.
	StateIdle State = iota
	// StateTracking means at least one touch is active.
	StateTracking
	// StateDragArmed means a left tap was pressed and its release timer is running.
	StateDragArmed
	// StateLatchedDragging means the left button is held while touches move the cursor.
	StateLatchedDragging
)

// String returns a log-friendly state name.
func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateDragArmed:
		return "drag_armed"
	case StateLatchedDragging:
		return "latched_dragging"
	default:
		return "idle"
	}
}

// sessionState holds the flags scoped to one gesture session.
type sessionState struct {
	moved        bool
	start        time.Duration
	lastRelease  time.Duration
	released     int
	dragLatch    bool
	pinchBase    float64
	hasPinchBase bool
	pinching     bool
}

// clearPinch drops the pinch baseline and latch.
func (s *sessionState) clearPinch() {
	s.pinchBase = 0
	s.hasPinchBase = false
	s.pinching = false
}

// outbox collects effects computed under the engine lock.
type outbox struct {
	cmds     []Command
	tracking *bool
}

// emit queues a command.
func (o *outbox) emit(cmd Command) {
	o.cmds = append(o.cmds, cmd)
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning overrides the recognition constants.
func WithTuning(t Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithScheduler overrides the drag timer scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithSensitivity sets the initial sensitivity; invalid values keep the default.
func WithSensitivity(v float64) Option {
	return func(e *Engine) {
		if validSensitivity(v) {
			e.sensitivity = v
		}
	}
}

// WithTrackingFunc registers a callback for isTracking transitions.
func WithTrackingFunc(fn func(bool)) Option {
	return func(e *Engine) {
		e.onTracking = fn
	}
}

// Engine recognizes gestures from touch batches and emits commands to a Sink.
type Engine struct {
	mu     sync.Mutex
	sendMu sync.Mutex

	tuning      Tuning
	sink        Sink
	sched       Scheduler
	onTracking  func(bool)
	touches     Registry
	sess        sessionState
	scrollMode  bool
	sensitivity float64
	tracking    bool

	dragTimer Timer
	dragGen   uint64
}

// NewEngine returns an engine that emits to sink.
func NewEngine(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		tuning:      DefaultTuning(),
		sink:        sink,
		sched:       realScheduler{},
		sensitivity: DefaultSensitivity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TouchStart registers newly started touches.
func (e *Engine) TouchStart(b Batch) {
	e.mu.Lock()
	var out outbox
	if len(b.Samples) > 0 {
		e.start(b, &out)
	}
	e.unlockAndFlush(out)
}

// TouchMove classifies a move batch and emits at most one command.
func (e *Engine) TouchMove(b Batch) {
	e.mu.Lock()
	var out outbox
	if len(b.Samples) > 0 {
		e.move(b, &out)
	}
	e.unlockAndFlush(out)
}

// TouchEnd releases touches and resolves taps at session end.
func (e *Engine) TouchEnd(b Batch) {
	e.mu.Lock()
	var out outbox
	if len(b.Samples) > 0 {
		e.end(b, &out)
	}
	e.unlockAndFlush(out)
}

// SetScrollMode toggles whether motion is emitted as scroll regardless of touch count.
func (e *Engine) SetScrollMode(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrollMode = on
}

// ScrollMode reports the scroll mode toggle.
func (e *Engine) ScrollMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollMode
}

// SetSensitivity updates the scale applied to spatial deltas.
func (e *Engine) SetSensitivity(v float64) error {
	if !validSensitivity(v) {
		return ErrInvalidSensitivity
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sensitivity = v
	return nil
}

// Sensitivity returns the current sensitivity.
func (e *Engine) Sensitivity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sensitivity
}

// IsTracking reports whether any touch is active.
func (e *Engine) IsTracking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touches.Len() > 0
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.touches.Len() > 0 && e.sess.dragLatch:
		return StateLatchedDragging
	case e.touches.Len() > 0:
		return StateTracking
	case e.dragTimer != nil:
		return StateDragArmed
	default:
		return StateIdle
	}
}

// Reset drops all touches and releases a pending or latched left button.
func (e *Engine) Reset() {
	e.mu.Lock()
	var out outbox
	if e.dragTimer != nil || e.sess.dragLatch {
		out.emit(Click(ButtonLeft, false))
	}
	e.cancelDragTimer()
	e.touches.Reset()
	e.sess = sessionState{}
	e.setTracking(false, &out)
	e.unlockAndFlush(out)
}

// unlockAndFlush releases e.mu and delivers out in decision order.
func (e *Engine) unlockAndFlush(out outbox) {
	e.sendMu.Lock()
	e.mu.Unlock()
	defer e.sendMu.Unlock()
	if out.tracking != nil && e.onTracking != nil {
		e.onTracking(*out.tracking)
	}
	if e.sink == nil {
		return
	}
	for _, cmd := range out.cmds {
		e.sink.Send(cmd)
	}
}

// setTracking records an isTracking transition. Caller holds e.mu.
func (e *Engine) setTracking(on bool, out *outbox) {
	if e.tracking == on {
		return
	}
	e.tracking = on
	v := on
	out.tracking = &v
}

// validSensitivity reports whether v can scale deltas.
func validSensitivity(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
