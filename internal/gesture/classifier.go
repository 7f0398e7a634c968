package gesture

import "math"

// move updates the registry and classifies the batch. Caller holds e.mu.
func (e *Engine) move(b Batch, out *outbox) {
	motions := e.touches.Update(b.At, b.Samples)
	if len(motions) == 0 {
		return
	}
	count := e.touches.Len()

	var sumX, sumY float64
	for _, m := range motions {
		if !e.sess.moved {
			if m.Travel > e.tuning.threshold(count) || b.At-e.sess.start >= e.tuning.TapTimeout {
				e.sess.moved = true
			}
		}
		if m.Elapsed <= 0 {
			continue
		}
		secs := m.Elapsed.Seconds()
		sumX += m.DX * e.tuning.Accel.Mult(math.Abs(m.DX)/secs)
		sumY += m.DY * e.tuning.Accel.Mult(math.Abs(m.DY)/secs)
	}

	if !e.sess.moved || b.At-e.sess.lastRelease < e.tuning.TapTimeout {
		return
	}
	if cmd, ok := e.classify(count, sumX, sumY); ok {
		out.emit(cmd)
	}
}

// classify picks zoom, scroll, move, or nothing for accumulated motion. Caller holds e.mu.
func (e *Engine) classify(count int, sumX, sumY float64) (Command, bool) {
	s := e.sensitivity
	switch {
	case !e.scrollMode && count == 2:
		dist, _ := e.touches.PairDistance()
		var delta float64
		if e.sess.hasPinchBase {
			delta = dist - e.sess.pinchBase
		}
		e.sess.pinchBase = dist
		e.sess.hasPinchBase = true
		if e.sess.pinching || math.Abs(delta) > e.tuning.PinchThreshold {
			e.sess.pinching = true
			return Zoom(delta * s), true
		}
		return Scroll(-sumX*s, -sumY*s), true
	case e.scrollMode:
		return Scroll(-sumX*s, -sumY*s), true
	case count == 1 || e.sess.dragLatch:
		return Move(sumX*s, sumY*s), true
	default:
		return Command{}, false
	}
}
