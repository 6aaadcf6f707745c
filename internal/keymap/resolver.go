package keymap

import "github.com/samber/lo"

// Resolver looks up the action of a key press.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings. When two bindings share a key, the later one
// wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: map[string]Action{},
		keys:    map[Action][]string{},
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.actions[k] = b.Action
		}
		r.keys[b.Action] = lo.Uniq(append(r.keys[b.Action], b.Keys...))
	}
	return r
}

// Resolve returns the bound action, "" for unbound keys.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor lists every key bound to action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}
