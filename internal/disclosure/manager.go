package disclosure

import (
	"log/slog"
	"sync"
	"time"
	"weak"

	"github.com/marcus/disclose/internal/dom"
)

// DefaultHoverDelay is how long the pointer must rest before a hover opens or
// closes an overlay.
const DefaultHoverDelay = 50 * time.Millisecond

// documentEvents are observed at the document while any trigger is registered.
var documentEvents = []dom.EventType{
	dom.EventKeyDown,
	dom.EventPointerMove,
	dom.EventPointerDown,
	dom.EventFocusIn,
	dom.EventFocusOut,
}

// Option configures a Manager.
type Option func(*Manager)

// WithHoverDelay sets the hover debounce delay. Negative values are treated as
// zero.
func WithHoverDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.SetHoverDelay(d)
	}
}

// WithScheduler sets the scheduler used for the hover timer. The default posts
// to the document's task queue.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.hover = NewDebouncer(s)
		}
	}
}

// WithLogger sets the logger transitions are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

type registration struct {
	overlay Overlay
	// root is the shadow root counted for this trigger at registration.
	root *dom.ShadowRoot
}

// Manager owns the open state of every overlay registered with it.
type Manager struct {
	doc        *dom.Document
	logger     *slog.Logger
	hoverDelay time.Duration
	hover      *Debouncer

	// triggers is keyed by weak pointers so a registration never keeps a
	// detached trigger alive. Components must still call UnregisterElement.
	triggers map[weak.Pointer[dom.Element]]registration
	roots    map[*dom.ShadowRoot]*listenerGuard
	docGuard *listenerGuard

	active        Overlay
	activeTrigger *dom.Element
	state         State

	hovered     Overlay
	pendingOpen bool
	clicked     Overlay

	// lastFocus is the dispatch sequence of the focus event handled most
	// recently; the same event arrives once at the document and once per
	// shadow root on its path. It holds no nodes.
	lastFocus uint64
}

// New returns a Manager for doc.
func New(doc *dom.Document, opts ...Option) *Manager {
	m := &Manager{
		doc:        doc,
		logger:     slog.Default(),
		hoverDelay: DefaultHoverDelay,
		triggers:   make(map[weak.Pointer[dom.Element]]registration),
		roots:      make(map[*dom.ShadowRoot]*listenerGuard),
	}
	m.docGuard = newListenerGuard(doc, m.handleEvent, documentEvents...)
	for _, opt := range opts {
		opt(m)
	}
	if m.hover == nil {
		m.hover = NewDebouncer(NewLoopScheduler(doc))
	}
	return m
}

var (
	managersMu sync.Mutex
	managers   = make(map[*dom.Document]*Manager)
)

// For returns the shared Manager of doc, creating it with opts on first use.
// Later calls ignore opts. Shared managers live as long as the process.
func For(doc *dom.Document, opts ...Option) *Manager {
	managersMu.Lock()
	defer managersMu.Unlock()

	if m, ok := managers[doc]; ok {
		return m
	}
	m := New(doc, opts...)
	managers[doc] = m
	return m
}

// HoverDelay returns the hover debounce delay.
func (m *Manager) HoverDelay() time.Duration {
	return m.hoverDelay
}

// SetHoverDelay changes the hover debounce delay for timers scheduled from now
// on.
func (m *Manager) SetHoverDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.hoverDelay = d
}

// RegisterElement associates trigger with overlay. Registering a trigger again
// replaces its overlay.
func (m *Manager) RegisterElement(trigger *dom.Element, overlay Overlay) {
	if trigger == nil || overlay == nil {
		return
	}
	key := weak.Make(trigger)
	root := trigger.ContainingShadowRoot()

	if reg, ok := m.triggers[key]; ok {
		if reg.root != root {
			m.releaseRoot(reg.root)
			m.acquireRoot(root)
		}
		m.triggers[key] = registration{overlay: overlay, root: root}
		if reg.overlay != overlay {
			m.forget(reg.overlay)
		}
		return
	}

	m.acquireRoot(root)
	m.triggers[key] = registration{overlay: overlay, root: root}
	if m.docGuard.acquire() {
		m.logger.Debug("disclosure: document listeners installed")
	}
}

// UnregisterElement removes trigger. Its overlay is closed if the Manager had
// it open. Unknown triggers are ignored.
func (m *Manager) UnregisterElement(trigger *dom.Element) {
	if trigger == nil {
		return
	}
	key := weak.Make(trigger)
	reg, ok := m.triggers[key]
	if !ok {
		return
	}
	m.releaseRoot(reg.root)
	delete(m.triggers, key)
	m.forget(reg.overlay)
	if m.docGuard.release() {
		m.lastFocus = 0
		m.logger.Debug("disclosure: document listeners removed")
	}
}

func (m *Manager) acquireRoot(root *dom.ShadowRoot) {
	if root == nil {
		return
	}
	g, ok := m.roots[root]
	if !ok {
		g = newListenerGuard(root, m.handleEvent, dom.EventFocusIn, dom.EventFocusOut)
		m.roots[root] = g
	}
	if g.acquire() {
		m.logger.Debug("disclosure: shadow root listeners installed", "host", root.Host().ID())
	}
}

func (m *Manager) releaseRoot(root *dom.ShadowRoot) {
	if root == nil {
		return
	}
	g, ok := m.roots[root]
	if !ok {
		return
	}
	if g.release() {
		delete(m.roots, root)
		m.logger.Debug("disclosure: shadow root listeners removed", "host", root.Host().ID())
	}
}

// forget drops every reference the state machine holds to o, unless another
// trigger still discloses it.
func (m *Manager) forget(o Overlay) {
	for _, reg := range m.triggers {
		if reg.overlay == o {
			return
		}
	}
	if m.hovered == o {
		m.hovered = nil
		if m.pendingOpen {
			m.hover.CancelPending()
			m.pendingOpen = false
		}
	}
	if m.clicked == o {
		m.clicked = nil
	}
	if m.active == o {
		m.hide(o, "unregistered")
	}
}

func (m *Manager) lookup(el *dom.Element) (Overlay, bool) {
	reg, ok := m.triggers[weak.Make(el)]
	return reg.overlay, ok
}

// Resolve returns the first registered trigger on path.
func (m *Manager) Resolve(path []dom.Node) (*dom.Element, Overlay, bool) {
	return Resolve(path, m.lookup)
}

// Registered returns how many triggers are registered.
func (m *Manager) Registered() int {
	return len(m.triggers)
}

// SubtreeCount returns how many registered triggers have root as their
// nearest shadow root.
func (m *Manager) SubtreeCount(root *dom.ShadowRoot) int {
	if g, ok := m.roots[root]; ok {
		return g.refs
	}
	return 0
}

// Active returns the overlay the Manager has open, or nil.
func (m *Manager) Active() Overlay {
	if m.active != nil && m.active.IsOpen() {
		return m.active
	}
	return nil
}

// State reports the current disclosure state.
func (m *Manager) State() State {
	if m.Active() != nil {
		return m.state
	}
	if m.pendingOpen && m.hover.Pending() {
		return StateHoverPending
	}
	return StateClosed
}
