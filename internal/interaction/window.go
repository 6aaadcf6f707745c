package interaction

import "slices"

// Window is the page-level input hub. The host feeds it key events; the
// controller and the settings panel listen on it. All methods run on the
// player loop.
type Window struct {
	keys  []*func(key string)
	modal bool
}

// NewWindow creates an empty hub.
func NewWindow() *Window {
	return &Window{}
}

// AddKeyListener registers fn for every key event until off is called.
// Calling off more than once is harmless.
func (w *Window) AddKeyListener(fn func(key string)) (off func()) {
	p := &fn
	w.keys = append(w.keys, p)
	return func() {
		if i := slices.Index(w.keys, p); i >= 0 {
			w.keys = slices.Delete(slices.Clone(w.keys), i, i+1)
		}
	}
}

// KeyDown dispatches key to the listeners registered at the time of the
// call, in registration order.
func (w *Window) KeyDown(key string) {
	for _, fn := range slices.Clone(w.keys) {
		(*fn)(key)
	}
}

// SetModal raises or lowers the modal-open flag.
func (w *Window) SetModal(open bool) {
	w.modal = open
}

// Modal reports whether a modal surface is open. Global shortcuts are
// suppressed while it is.
func (w *Window) Modal() bool {
	return w.modal
}

// Listeners returns the number of registered key listeners.
func (w *Window) Listeners() int {
	return len(w.keys)
}
