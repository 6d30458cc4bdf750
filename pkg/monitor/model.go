package monitor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/disclose/internal/config"
	"github.com/marcus/disclose/internal/disclosure"
	"github.com/marcus/disclose/internal/dom"
	"github.com/marcus/disclose/pkg/monitor/mouse"
	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minHeight     = 14

	// hoverStep is how much +/- change the hover delay.
	hoverStep = 10 * time.Millisecond

	toolbarY    = 2
	panelY      = 4
	panelHeight = 6
)

// Options configures a Model.
type Options struct {
	HoverDelay time.Duration
	Logger     *slog.Logger
	// TooltipOptions apply to every tooltip in the scene.
	TooltipOptions []tooltip.Option
}

type buttonRow struct {
	y, x int
	els  []*dom.Element
}

// Model is the Bubble Tea model of the demo. It translates terminal input
// into DOM events and lets the disclosure manager decide what is open.
type Model struct {
	scene   *Scene
	manager *disclosure.Manager
	sched   *teaScheduler
	mouse   *mouse.Handler
	logger  *slog.Logger
	help    help.Model

	Width  int
	Height int

	rows    []buttonRow
	regions []mouse.Region
	hovered *dom.Element

	status   string
	quitting bool
}

// NewModel builds the scene and registers every trigger with the scene
// document's shared manager.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scene := BuildScene(opts.TooltipOptions...)
	sched := newTeaScheduler()
	manager := disclosure.For(scene.Doc,
		disclosure.WithHoverDelay(opts.HoverDelay),
		disclosure.WithScheduler(sched),
		disclosure.WithLogger(logger),
	)
	scene.Register(manager)
	logger.Info("scene registered", "triggers", manager.Registered(), "hover_delay", manager.HoverDelay())

	h := help.New()
	h.Width = defaultWidth

	m := Model{
		scene:   scene,
		manager: manager,
		sched:   sched,
		mouse:   mouse.NewHandler(),
		logger:  logger,
		help:    h,
		Width:   defaultWidth,
		Height:  defaultHeight,
	}
	m.layout()
	return m
}

// Scene returns the document the model drives.
func (m Model) Scene() *Scene { return m.scene }

// Manager returns the disclosure manager of the scene.
func (m Model) Manager() *disclosure.Manager { return m.manager }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case hoverTickMsg:
		m.sched.fire(msg.id)
	}

	return m, tea.Batch(cmd, m.sched.drain())
}

// layout places every button and anchors its overlay. Container regions go
// first so buttons win hit tests.
func (m *Model) layout() {
	m.rows = []buttonRow{
		{y: toolbarY, x: 1, els: buttons(m.scene.Toolbar.Children())},
		{y: panelY + 1, x: 3, els: buttons(m.scene.Panel.ShadowRoot().Children())},
		{y: panelY + 4, x: 5, els: buttons(m.scene.Widget.ShadowRoot().Children())},
	}

	m.regions = []mouse.Region{
		{ID: "body", Rect: mouse.Rect{W: m.Width, H: m.Height}, Data: m.scene.Body},
		{ID: "toolbar", Rect: mouse.Rect{Y: toolbarY, W: m.Width, H: 1}, Data: m.scene.Toolbar},
		{ID: "panel", Rect: mouse.Rect{Y: panelY, W: m.Width, H: panelHeight}, Data: m.scene.Panel},
		{ID: "widget", Rect: mouse.Rect{X: 2, Y: panelY + 3, W: max(m.Width-4, 0), H: 2}, Data: m.scene.Widget},
	}

	for _, row := range m.rows {
		x := row.x
		for _, el := range row.els {
			w := lipgloss.Width(buttonStyle.Render(el.Label()))
			r := mouse.Rect{X: x, Y: row.y, W: w, H: 1}
			m.regions = append(m.regions, mouse.Region{ID: el.ID(), Rect: r, Data: el})
			if t := m.scene.Trigger(el.ID()); t != nil {
				t.Overlay.SetAnchor(r, m.Width, m.Height)
			}
			x += w + 1
		}
	}
}

// refreshHitMap loads the laid out regions plus the open overlay, which sits
// on top of everything.
func (m *Model) refreshHitMap() {
	m.mouse.Clear()
	for _, r := range m.regions {
		m.mouse.HitMap.Add(r)
	}
	if t := m.scene.OpenOverlay(); t != nil {
		x, y := t.Overlay.Position()
		w, h := t.Overlay.Size()
		el := t.Overlay.Element()
		m.mouse.HitMap.AddRect(el.ID(), x, y, w, h, el)
	}
}

func (m *Model) targetOf(r *mouse.Region) *dom.Element {
	if r != nil {
		if el, ok := r.Data.(*dom.Element); ok {
			return el
		}
	}
	return m.scene.Body
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.refreshHitMap()
	action := m.mouse.HandleMouse(msg)
	target := m.targetOf(action.Region)

	switch action.Type {
	case mouse.ActionHover:
		m.hovered = target
		dom.Dispatch(dom.NewEvent(dom.EventPointerMove, target))

	case mouse.ActionClick, mouse.ActionDoubleClick:
		if item, ok := m.scene.Menu.ItemAt(msg.X, msg.Y); ok {
			m.choose(item)
			return
		}
		m.pointerDown(target, dom.ButtonPrimary)
		// Pressing moves focus like a browser does: to the target when it
		// can take focus, otherwise away from whatever had it.
		if target.Focusable() {
			m.scene.Doc.Focus(target)
		} else {
			m.scene.Doc.Blur()
		}

	case mouse.ActionRightClick:
		m.pointerDown(target, dom.ButtonSecondary)
	}
}

func (m *Model) pointerDown(target *dom.Element, button int) {
	ev := dom.NewEvent(dom.EventPointerDown, target)
	ev.Button = button
	dom.Dispatch(ev)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if menu := m.scene.Menu; menu.IsOpen() && key.Matches(msg, keys.Up, keys.Down, keys.Choose) {
		if id := menu.Update(msg); id != "" {
			item, _ := menu.Selected()
			m.choose(item)
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quit()
		return tea.Quit
	case key.Matches(msg, keys.Next):
		m.scene.Doc.FocusNext()
	case key.Matches(msg, keys.Prev):
		m.scene.Doc.FocusPrev()
	case key.Matches(msg, keys.Escape):
		m.escape()
	case key.Matches(msg, keys.Copy):
		m.status = m.copyOverlay()
	case key.Matches(msg, keys.Slower):
		m.setHoverDelay(m.manager.HoverDelay() + hoverStep)
	case key.Matches(msg, keys.Faster):
		m.setHoverDelay(m.manager.HoverDelay() - hoverStep)
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// escape sends an Escape keydown to the focused element. If nothing handled
// it, focus is dropped.
func (m *Model) escape() {
	target := m.scene.Doc.ActiveElement()
	if target == nil {
		target = m.scene.Body
	}
	ev := dom.NewEvent(dom.EventKeyDown, target)
	ev.Key = dom.KeyEscape
	dom.Dispatch(ev)
	if ev.DefaultPrevented() {
		return
	}
	m.scene.Doc.Blur()
}

func (m *Model) choose(item tooltip.Item) {
	m.status = fmt.Sprintf("share: %s", item.Label)
	m.scene.Menu.SetOpen(false)
	m.logger.Info("menu item chosen", "item", item.ID)
}

func (m *Model) setHoverDelay(d time.Duration) {
	d = min(d, config.MaxHoverDelayMS*time.Millisecond)
	m.manager.SetHoverDelay(d)
	m.status = fmt.Sprintf("hover delay %s", m.manager.HoverDelay())
}

// quit unregisters every trigger so the manager drops its listeners.
func (m *Model) quit() {
	m.quitting = true
	m.scene.Unregister(m.manager)
	m.logger.Info("scene unregistered", "triggers", m.manager.Registered())
}
