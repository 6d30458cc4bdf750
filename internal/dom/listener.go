package dom

import "slices"

// Listener handles a dispatched event.
type Listener func(ev *Event)

// ListenerID identifies an installed listener so it can be removed.
type ListenerID uint64

// EventTarget is anything listeners can be installed on.
type EventTarget interface {
	AddEventListener(typ EventType, fn Listener, capture bool) ListenerID
	RemoveEventListener(id ListenerID) bool
	ListenerCount(typ EventType) int
}

type listenerEntry struct {
	id      ListenerID
	typ     EventType
	fn      Listener
	capture bool
	removed bool
}

// listenerSet is embedded by every node type.
type listenerSet struct {
	entries []*listenerEntry
	nextID  ListenerID
}

func (s *listenerSet) listeners() *listenerSet { return s }

// AddEventListener installs fn for events of type typ. Capturing listeners run
// during the capture phase, before listeners on nodes nearer the target.
func (s *listenerSet) AddEventListener(typ EventType, fn Listener, capture bool) ListenerID {
	s.nextID++
	s.entries = append(s.entries, &listenerEntry{
		id:      s.nextID,
		typ:     typ,
		fn:      fn,
		capture: capture,
	})
	return s.nextID
}

// RemoveEventListener uninstalls the listener with the given id. It reports
// whether the listener was installed here.
func (s *listenerSet) RemoveEventListener(id ListenerID) bool {
	for i, e := range s.entries {
		if e.id == id {
			e.removed = true
			s.entries = slices.Delete(s.entries, i, i+1)
			return true
		}
	}
	return false
}

// ListenerCount returns how many listeners are installed for typ. An empty typ
// counts every listener.
func (s *listenerSet) ListenerCount(typ EventType) int {
	if typ == "" {
		return len(s.entries)
	}
	n := 0
	for _, e := range s.entries {
		if e.typ == typ {
			n++
		}
	}
	return n
}

// invoke runs the listeners matching ev for one phase. The slice is copied so
// listeners may add or remove listeners; removed ones are skipped.
func (s *listenerSet) invoke(ev *Event, capture bool) {
	if len(s.entries) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(s.entries))
	copy(snapshot, s.entries)
	for _, e := range snapshot {
		if e.removed || e.typ != ev.Type || e.capture != capture {
			continue
		}
		e.fn(ev)
	}
}
