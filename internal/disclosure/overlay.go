package disclosure

import "github.com/marcus/disclose/internal/dom"

// Overlay is the handle a component hands to the Manager. The Manager flips
// the open flag; the component reacts (renders, repositions) on its own.
type Overlay interface {
	IsOpen() bool
	SetOpen(open bool)
	// CloseOnClick makes a primary press on the trigger toggle the overlay
	// immediately instead of only feeding hover.
	CloseOnClick() bool
}

// ElementOverlay is implemented by overlays that are themselves part of the
// document. Pointer movement over that element keeps a hover-opened overlay
// open.
type ElementOverlay interface {
	Overlay
	Element() *dom.Element
}

// State is the disclosure state of the Manager.
type State int

const (
	StateClosed State = iota
	StateHoverPending
	StateOpenByHover
	StateOpenByFocus
	StateOpenByClick
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHoverPending:
		return "hover-pending"
	case StateOpenByHover:
		return "open-by-hover"
	case StateOpenByFocus:
		return "open-by-focus"
	case StateOpenByClick:
		return "open-by-click"
	default:
		return "unknown"
	}
}

func overlayElement(o Overlay) *dom.Element {
	if eo, ok := o.(ElementOverlay); ok {
		return eo.Element()
	}
	return nil
}
