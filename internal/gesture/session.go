package gesture

// start handles a touch-start batch. Caller holds e.mu.
func (e *Engine) start(b Batch, out *outbox) {
	if e.touches.Len() == 0 {
		e.sess.start = b.At
		e.sess.moved = false
	}
	e.touches.Start(b.At, b.Samples)

	if dist, ok := e.touches.PairDistance(); ok {
		e.sess.pinchBase = dist
		e.sess.hasPinchBase = true
		e.sess.pinching = false
	}

	e.setTracking(true, out)
	e.sess.lastRelease = 0

	// A touch during the release window turns the pending tap into a held drag.
	if e.dragTimer != nil {
		e.cancelDragTimer()
		e.sess.dragLatch = true
	}
}

// end handles a touch-end batch. Caller holds e.mu.
func (e *Engine) end(b Batch, out *outbox) {
	ids := make([]int, len(b.Samples))
	for i, s := range b.Samples {
		ids[i] = s.ID
	}
	e.sess.released += e.touches.End(ids)
	e.sess.lastRelease = b.At

	if e.touches.Len() < 2 {
		e.sess.clearPinch()
	}
	if e.sess.released > len(e.tuning.MoveThresholds) {
		e.sess.moved = true
	}
	if e.touches.Len() > 0 || e.sess.released < 1 {
		return
	}

	e.setTracking(false, out)
	if e.sess.dragLatch {
		e.sess.dragLatch = false
		out.emit(Click(ButtonLeft, false))
	} else if !e.sess.moved && b.At-e.sess.start < e.tuning.TapTimeout {
		e.resolveTap(out)
	}
	e.sess.released = 0
}

// resolveTap presses the button for the release count. Caller holds e.mu.
func (e *Engine) resolveTap(out *outbox) {
	var button Button
	switch e.sess.released {
	case 1:
		button = ButtonLeft
	case 2:
		button = ButtonRight
	case 3:
		button = ButtonMiddle
	default:
		return
	}
	out.emit(Click(button, true))
	if button == ButtonLeft {
		e.armDragTimer()
		return
	}
	out.emit(Click(button, false))
}

// armDragTimer replaces any pending drag timer with a fresh one. Caller holds e.mu.
func (e *Engine) armDragTimer() {
	e.cancelDragTimer()
	e.dragGen++
	gen := e.dragGen
	e.dragTimer = e.sched.AfterFunc(e.tuning.TapTimeout, func() {
		e.fireDragTimer(gen)
	})
}

// cancelDragTimer stops and clears the pending drag timer. Caller holds e.mu.
func (e *Engine) cancelDragTimer() {
	if e.dragTimer == nil {
		return
	}
	e.dragTimer.Stop()
	e.dragTimer = nil
}

// fireDragTimer releases the tapped left button unless the timer was superseded.
func (e *Engine) fireDragTimer(gen uint64) {
	e.mu.Lock()
	var out outbox
	if e.dragTimer != nil && e.dragGen == gen {
		e.dragTimer = nil
		out.emit(Click(ButtonLeft, false))
	}
	e.unlockAndFlush(out)
}
