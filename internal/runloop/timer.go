package runloop

import "time"

// Timer is a one-shot timer whose callback runs on the loop.
//
// Stop must be called on the loop goroutine. A stopped timer never runs its
// callback, even if the underlying timer already fired and the callback is
// sitting in the queue.
type Timer struct {
	t       *time.Timer
	stopped bool
}

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	tm := &Timer{}
	tm.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if tm.stopped {
				return
			}
			tm.stopped = true
			fn()
		})
	})
	return tm
}

// Stop cancels the timer. It reports whether the callback was still pending.
func (tm *Timer) Stop() bool {
	if tm == nil || tm.stopped {
		return false
	}
	tm.stopped = true
	tm.t.Stop()
	return true
}

// Pending reports whether the callback has neither run nor been stopped.
func (tm *Timer) Pending() bool {
	return tm != nil && !tm.stopped
}

// Slot holds at most one scheduled callback. Scheduling replaces whatever
// was pending, which makes it the building block for debounces and
// click/tap windows.
type Slot struct {
	loop  *Loop
	timer *Timer
}

// NewSlot creates an empty slot bound to l.
func NewSlot(l *Loop) *Slot {
	return &Slot{loop: l}
}

// Schedule cancels any pending callback and arms fn to run after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.timer.Stop()
	s.timer = s.loop.AfterFunc(d, fn)
}

// Cancel drops the pending callback, if any.
func (s *Slot) Cancel() {
	s.timer.Stop()
	s.timer = nil
}

// Pending reports whether a callback is armed.
func (s *Slot) Pending() bool {
	return s.timer.Pending()
}
