package media

type listener struct {
	fn      func()
	removed bool
}

// Listeners is a per-event callback registry for Element implementations.
// It is not safe for concurrent use; elements touch it from the loop only.
type Listeners struct {
	byEvent  map[Event][]*listener
	removals int
}

// Add registers fn for ev. The returned function removes it; calling it
// again does nothing.
func (ls *Listeners) Add(ev Event, fn func()) (off func()) {
	if ls.byEvent == nil {
		ls.byEvent = make(map[Event][]*listener)
	}
	l := &listener{fn: fn}
	ls.byEvent[ev] = append(ls.byEvent[ev], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls.removals++
		cur := ls.byEvent[ev]
		for i, x := range cur {
			if x == l {
				ls.byEvent[ev] = append(cur[:i:i], cur[i+1:]...)
				break
			}
		}
	}
}

// Emit calls the listeners registered for ev when Emit starts, skipping any
// removed along the way.
func (ls *Listeners) Emit(ev Event) {
	for _, l := range append([]*listener(nil), ls.byEvent[ev]...) {
		if !l.removed {
			l.fn()
		}
	}
}

// Len counts live listeners.
func (ls *Listeners) Len() int {
	n := 0
	for _, cur := range ls.byEvent {
		n += len(cur)
	}
	return n
}

// Removals counts effective removals.
func (ls *Listeners) Removals() int {
	return ls.removals
}
