package disclosure

import "github.com/marcus/disclose/internal/dom"

// listenerGuard installs a fixed set of capturing listeners on a target while
// it is held at least once.
type listenerGuard struct {
	target  dom.EventTarget
	types   []dom.EventType
	handler dom.Listener

	refs int
	ids  []dom.ListenerID
}

func newListenerGuard(target dom.EventTarget, handler dom.Listener, types ...dom.EventType) *listenerGuard {
	return &listenerGuard{target: target, types: types, handler: handler}
}

// acquire takes a reference, installing the listeners on 0→1. It reports
// whether listeners were installed.
func (g *listenerGuard) acquire() bool {
	g.refs++
	if g.refs != 1 {
		return false
	}
	for _, typ := range g.types {
		g.ids = append(g.ids, g.target.AddEventListener(typ, g.handler, true))
	}
	return true
}

// release drops a reference, removing the listeners on 1→0. It reports
// whether listeners were removed.
func (g *listenerGuard) release() bool {
	if g.refs == 0 {
		return false
	}
	g.refs--
	if g.refs != 0 {
		return false
	}
	for _, id := range g.ids {
		g.target.RemoveEventListener(id)
	}
	g.ids = nil
	return true
}
