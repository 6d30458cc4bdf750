package monitor

import (
	"github.com/marcus/disclose/internal/disclosure"
	"github.com/marcus/disclose/internal/dom"
	"github.com/marcus/disclose/pkg/monitor/mouse"
	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

// Overlay is what the monitor needs from a floating component on top of
// the disclosure contract: placement and rendered rows.
type Overlay interface {
	disclosure.ElementOverlay
	SetAnchor(anchor mouse.Rect, screenW, screenH int)
	Position() (int, int)
	Size() (int, int)
	Lines() []string
}

// Trigger pairs a trigger element with the overlay it discloses.
type Trigger struct {
	El      *dom.Element
	Overlay Overlay
}

// Scene is the demo document: a toolbar in the light tree, a panel whose
// buttons live in a shadow root, and a widget nested in a second shadow root
// inside the panel.
type Scene struct {
	Doc      *dom.Document
	Body     *dom.Element
	Toolbar  *dom.Element
	Panel    *dom.Element
	Widget   *dom.Element
	Layer    *dom.Element
	Triggers []*Trigger

	Menu *tooltip.Menu
}

// ShareItems are the entries of the toolbar's share menu.
var ShareItems = []tooltip.Item{
	{ID: "link", Label: "Copy link"},
	{ID: "email", Label: "Email"},
	{ID: "print", Label: "Print"},
	{ID: "export", Label: "Export as PDF"},
}

type tipDef struct {
	id, label, title, body string
	closeOnClick           bool
}

var (
	toolbarTips = []tipDef{
		{"save", "Save", "Save", "Writes the buffer to disk. Shortcut **ctrl+s**.", false},
		{"open", "Open", "Open", "Pick a file from the current directory.", false},
	}
	aboutTip = tipDef{"about", "About", "About disclose",
		"One overlay at a time. Hover, focus or click a button.\n\nClick **About** again to close this one.", true}
	panelTips = []tipDef{
		{"zoom", "Zoom", "Zoom", "Inside a shadow root. Focus events are observed on the root.", false},
		{"pan", "Pan", "Pan", "Drag the view. Shares the shadow root with **Zoom**.", false},
	}
	widgetTips = []tipDef{
		{"reset", "Reset", "Reset", "Two shadow roots deep.", false},
	}
)

// BuildScene returns the demo document. opts apply to every tooltip.
func BuildScene(opts ...tooltip.Option) *Scene {
	s := &Scene{
		Doc:     dom.NewDocument(),
		Body:    dom.NewElement("body", "body"),
		Toolbar: dom.NewElement("div", "toolbar"),
		Panel:   dom.NewElement("section", "panel").SetLabel("panel"),
		Widget:  dom.NewElement("div", "widget").SetLabel("widget"),
		Layer:   dom.NewElement("div", "overlays"),
	}
	s.Doc.Append(s.Body)
	s.Body.Append(s.Toolbar, s.Panel, s.Layer)

	for _, def := range toolbarTips {
		s.Toolbar.Append(s.addTip(def, opts))
	}

	share := newButton("share", "Share")
	s.Menu = tooltip.NewMenu("share-menu", ShareItems)
	s.add(share, s.Menu)
	s.Toolbar.Append(share)

	s.Toolbar.Append(s.addTip(aboutTip, opts))

	panelRoot := s.Panel.AttachShadow()
	for _, def := range panelTips {
		panelRoot.Append(s.addTip(def, opts))
	}
	panelRoot.Append(s.Widget)

	widgetRoot := s.Widget.AttachShadow()
	for _, def := range widgetTips {
		widgetRoot.Append(s.addTip(def, opts))
	}

	return s
}

func newButton(id, label string) *dom.Element {
	return dom.NewElement("button", id).SetLabel(label).SetFocusable(true)
}

func (s *Scene) addTip(def tipDef, opts []tooltip.Option) *dom.Element {
	el := newButton(def.id, def.label)
	tipOpts := append([]tooltip.Option{tooltip.WithCloseOnClick(def.closeOnClick)}, opts...)
	s.add(el, tooltip.New(def.id+"-tip", def.title, def.body, tipOpts...))
	return el
}

func (s *Scene) add(el *dom.Element, o Overlay) {
	s.Triggers = append(s.Triggers, &Trigger{El: el, Overlay: o})
	s.Layer.Append(o.Element())
}

// Register hands every trigger to m.
func (s *Scene) Register(m *disclosure.Manager) {
	for _, t := range s.Triggers {
		m.RegisterElement(t.El, t.Overlay)
	}
}

// Unregister removes every trigger from m.
func (s *Scene) Unregister(m *disclosure.Manager) {
	for _, t := range s.Triggers {
		m.UnregisterElement(t.El)
	}
}

// Trigger returns the trigger with the given element id, or nil.
func (s *Scene) Trigger(id string) *Trigger {
	for _, t := range s.Triggers {
		if t.El.ID() == id {
			return t
		}
	}
	return nil
}

// TriggerFor returns the trigger disclosing o, or nil.
func (s *Scene) TriggerFor(o disclosure.Overlay) *Trigger {
	if o == nil {
		return nil
	}
	for _, t := range s.Triggers {
		if disclosure.Overlay(t.Overlay) == o {
			return t
		}
	}
	return nil
}

// OpenOverlay returns the first open overlay in the scene, or nil.
func (s *Scene) OpenOverlay() *Trigger {
	for _, t := range s.Triggers {
		if t.Overlay.IsOpen() {
			return t
		}
	}
	return nil
}

// buttons filters els down to buttons.
func buttons(els []*dom.Element) []*dom.Element {
	var out []*dom.Element
	for _, el := range els {
		if el.Tag() == "button" {
			out = append(out, el)
		}
	}
	return out
}
