package visibility

import "sync/atomic"

// Observer reports whether the form section is currently in the viewport.
// The signal only drives entrance effects; nothing in the form logic
// depends on it.
type Observer interface {
	Visible() bool
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func() bool

// Visible delegates to the underlying function.
func (fn ObserverFunc) Visible() bool {
	return fn()
}

// Always is an Observer that is always visible.
var Always Observer = ObserverFunc(func() bool { return true })

// Toggle is an Observer driven by explicit Set calls, for hosts that receive
// intersection events.
type Toggle struct {
	visible atomic.Bool
}

// Set records the latest visibility state.
func (t *Toggle) Set(visible bool) {
	t.visible.Store(visible)
}

// Visible implements Observer.
func (t *Toggle) Visible() bool {
	return t.visible.Load()
}
