package disclosure

import (
	"github.com/marcus/disclose/internal/dom"
)

func (m *Manager) handleEvent(ev *dom.Event) {
	switch ev.Type {
	case dom.EventPointerMove:
		m.onPointerMove(ev)
	case dom.EventPointerDown:
		m.onPointerDown(ev)
	case dom.EventFocusIn, dom.EventFocusOut:
		if ev.Seq() == m.lastFocus {
			return
		}
		m.lastFocus = ev.Seq()
		m.onFocus(ev)
	case dom.EventKeyDown:
		m.onKeyDown(ev)
	}
}

func (m *Manager) onPointerMove(ev *dom.Event) {
	path := ev.ComposedPath()

	// Pointer over the floating content of a hover-opened overlay.
	if m.Active() != nil && m.state == StateOpenByHover && pathContains(path, overlayElement(m.active)) {
		m.cancelHover()
		return
	}

	trigger, o, ok := m.Resolve(path)
	if ok && o == m.clicked {
		return
	}
	m.clicked = nil

	switch {
	case ok:
		m.hovered = o
		m.pendingOpen = true
		m.hover.Schedule(func() { m.hoverFired(o, trigger) }, m.hoverDelay)
	case m.active != nil:
		m.hovered = nil
		m.pendingOpen = false
		m.hover.Schedule(func() { m.hoverFired(nil, nil) }, m.hoverDelay)
	}
}

// hoverFired runs when the hover timer expires. target is nil for a close.
// An open only goes ahead if target is still the hovered overlay.
func (m *Manager) hoverFired(target Overlay, trigger *dom.Element) {
	m.pendingOpen = false
	current := target != nil && target == m.hovered
	if current && target == m.active && target.IsOpen() {
		return
	}
	m.closeActive("hover")
	if current {
		m.show(target, trigger, StateOpenByHover)
	}
}

func (m *Manager) onPointerDown(ev *dom.Event) {
	if ev.Button != dom.ButtonPrimary {
		return
	}
	trigger, o, ok := m.Resolve(ev.ComposedPath())
	if !ok {
		m.clicked = nil
		return
	}
	m.clicked = o
	if !o.CloseOnClick() {
		return
	}
	m.cancelHover()
	if o.IsOpen() {
		m.hide(o, "click")
	} else {
		m.show(o, trigger, StateOpenByClick)
	}
}

func (m *Manager) onFocus(ev *dom.Event) {
	trigger, o, ok := m.Resolve(ev.ComposedPath())
	if !ok || o == m.clicked {
		return
	}
	if ev.Type == dom.EventFocusIn {
		m.cancelHover()
		m.show(o, trigger, StateOpenByFocus)
		return
	}
	m.hide(o, "blur")
}

func (m *Manager) onKeyDown(ev *dom.Event) {
	if ev.Key != dom.KeyEscape || m.Active() == nil {
		return
	}
	m.cancelHover()
	trigger := m.activeTrigger
	m.hide(m.active, "escape")
	if trigger != nil && ev.Target != nil && trigger.ContainsComposed(ev.Target) {
		ev.PreventDefault()
	}
}

func (m *Manager) cancelHover() {
	m.hover.CancelPending()
	m.pendingOpen = false
}

// show opens o after closing whichever overlay is active.
func (m *Manager) show(o Overlay, trigger *dom.Element, state State) {
	if m.active != nil && m.active != o {
		m.hide(m.active, "replaced")
	}
	if !o.IsOpen() {
		o.SetOpen(true)
	}
	m.active = o
	m.activeTrigger = trigger
	m.state = state
	m.logger.Debug("disclosure: overlay opened", "trigger", triggerID(trigger), "state", state.String())
}

func (m *Manager) hide(o Overlay, reason string) {
	if o.IsOpen() {
		o.SetOpen(false)
	}
	if o != m.active {
		return
	}
	m.logger.Debug("disclosure: overlay closed", "trigger", triggerID(m.activeTrigger), "reason", reason)
	m.active = nil
	m.activeTrigger = nil
	m.state = StateClosed
}

func (m *Manager) closeActive(reason string) {
	if m.active != nil {
		m.hide(m.active, reason)
	}
}

func triggerID(el *dom.Element) string {
	if el == nil {
		return ""
	}
	return el.ID()
}
