package gesture

import "time"

// fakeTimer is a manually fired timer.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

// Stop marks the timer stopped and reports whether it was still pending.
func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// fakeScheduler records timers instead of scheduling them.
type fakeScheduler struct {
	timers []*fakeTimer
}

// AfterFunc records the callback.
func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the number of timers neither stopped nor fired.
func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fire runs every pending timer.
func (s *fakeScheduler) fire() {
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
	}
}

// recorder is a Sink that keeps every command.
type recorder struct {
	cmds []Command
}

// Send appends cmd.
func (r *recorder) Send(cmd Command) {
	r.cmds = append(r.cmds, cmd)
}

// take returns and clears the recorded commands.
func (r *recorder) take() []Command {
	out := r.cmds
	r.cmds = nil
	return out
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func touch(id int, x, y float64) Sample {
	return Sample{ID: id, X: x, Y: y}
}

func batch(at time.Duration, samples ...Sample) Batch {
	return Batch{At: at, Samples: samples}
}

// newTestEngine returns an engine wired to a recorder and a fake scheduler.
func newTestEngine(opts ...Option) (*Engine, *recorder, *fakeScheduler) {
	rec := &recorder{}
	sched := &fakeScheduler{}
	opts = append([]Option{WithScheduler(sched)}, opts...)
	return NewEngine(rec, opts...), rec, sched
}
