package tooltip

import (
	"github.com/marcus/disclose/internal/dom"
	"github.com/marcus/disclose/pkg/monitor/mouse"
)

// Placer positions floating content of size w x h next to anchor on a
// screen of screenW x screenH cells.
type Placer interface {
	Place(anchor mouse.Rect, w, h, screenW, screenH int) (x, y int)
}

// BelowPlacer puts content under the anchor, or above it when there is no
// room below. The result is clamped to the screen.
type BelowPlacer struct {
	Gap int
}

// Place implements Placer.
func (p BelowPlacer) Place(anchor mouse.Rect, w, h, screenW, screenH int) (int, int) {
	y := anchor.Y + anchor.H + p.Gap
	if screenH > 0 && y+h > screenH {
		if above := anchor.Y - h - p.Gap; above >= 0 {
			y = above
		}
	}

	x := anchor.X
	if screenW > 0 && x+w > screenW {
		x = screenW - w
	}
	return max(x, 0), max(y, 0)
}

// popup holds what every overlay component shares: its element, open flag
// and the position chosen the last time it opened.
type popup struct {
	el           *dom.Element
	closeOnClick bool
	open         bool

	placer  Placer
	anchor  mouse.Rect
	screenW int
	screenH int
	x, y    int
}

// IsOpen reports whether the overlay is shown.
func (p *popup) IsOpen() bool { return p.open }

// CloseOnClick reports whether a click on the trigger toggles the overlay.
func (p *popup) CloseOnClick() bool { return p.closeOnClick }

// Element returns the floating content's element.
func (p *popup) Element() *dom.Element { return p.el }

// SetAnchor records where the trigger is drawn and the screen size. It takes
// effect the next time the overlay opens.
func (p *popup) SetAnchor(anchor mouse.Rect, screenW, screenH int) {
	p.anchor = anchor
	p.screenW = screenW
	p.screenH = screenH
}

// Position returns the top-left cell of the overlay.
func (p *popup) Position() (int, int) { return p.x, p.y }

func (p *popup) place(w, h int) {
	p.x, p.y = p.placer.Place(p.anchor, w, h, p.screenW, p.screenH)
}
