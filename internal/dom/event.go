package dom

import "sync/atomic"

// EventType names a kind of event.
type EventType string

// Event types the UI loop dispatches.
const (
	EventPointerMove EventType = "pointermove"
	EventPointerDown EventType = "pointerdown"
	EventKeyDown     EventType = "keydown"
	EventFocusIn     EventType = "focusin"
	EventFocusOut    EventType = "focusout"
)

// Pointer buttons, numbered as browsers number them.
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// KeyEscape is the Key value of an Escape keydown.
const KeyEscape = "Escape"

// Event is a single dispatched input event.
type Event struct {
	Type   EventType
	Target *Element

	// Button is the pointer button for pointer events.
	Button int
	// Key is the key name for keyboard events.
	Key string
	// Composed events cross shadow root boundaries on their way out.
	Composed bool
	// RelatedTarget is the element losing or gaining focus on focus events.
	RelatedTarget *Element

	path             []Node
	currentTarget    Node
	defaultPrevented bool
	stopped          bool
	dispatched       bool
	seq              uint64
}

var dispatchSeq atomic.Uint64

// NewEvent returns a composed event of the given type aimed at target.
func NewEvent(typ EventType, target *Element) *Event {
	return &Event{Type: typ, Target: target, Composed: true}
}

// ComposedPath returns the nodes the event travels through, innermost first.
// Before dispatch it is computed from the target; after dispatch it is the path
// that was used.
func (e *Event) ComposedPath() []Node {
	if e.path == nil && e.Target != nil {
		return composedPath(e.Target, e.Composed)
	}
	return e.path
}

// Seq identifies the dispatch that delivered the event. It is zero until the
// event is dispatched.
func (e *Event) Seq() uint64 {
	return e.seq
}

// CurrentTarget returns the node whose listener is running.
func (e *Event) CurrentTarget() Node {
	return e.currentTarget
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further nodes.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// composedPath walks from target outward. When composed, the walk continues
// from a shadow root to its host; otherwise it ends at the shadow root.
func composedPath(target *Element, composed bool) []Node {
	var path []Node
	var n Node = target
	for n != nil {
		path = append(path, n)
		switch v := n.(type) {
		case *Element:
			if v.parent != nil {
				n = v.parent
			} else if v.container != nil {
				n = v.container
			} else {
				n = nil
			}
		case *ShadowRoot:
			if !composed {
				return path
			}
			n = v.host
		case *Document:
			n = nil
		default:
			n = nil
		}
	}
	return path
}

// Dispatch sends ev through the composed path of its target. The capture phase
// runs outermost to innermost, then the bubble phase innermost to outermost.
// An event with no target, or one already dispatched, is not sent again. It
// reports whether the default action was not prevented.
func Dispatch(ev *Event) bool {
	if ev == nil || ev.Target == nil || ev.dispatched {
		return ev != nil && !ev.defaultPrevented
	}
	ev.dispatched = true
	ev.seq = dispatchSeq.Add(1)
	ev.path = composedPath(ev.Target, ev.Composed)

	for i := len(ev.path) - 1; i >= 0 && !ev.stopped; i-- {
		ev.currentTarget = ev.path[i]
		ev.path[i].listeners().invoke(ev, true)
	}
	for i := 0; i < len(ev.path) && !ev.stopped; i++ {
		ev.currentTarget = ev.path[i]
		ev.path[i].listeners().invoke(ev, false)
	}
	ev.currentTarget = nil
	return !ev.defaultPrevented
}
