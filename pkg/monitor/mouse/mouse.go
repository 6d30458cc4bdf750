// Package mouse maps terminal mouse input onto screen regions. A HitMap holds
// the regions laid out by the last render; a Handler turns tea.MouseMsg values
// into Actions against it.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickThreshold = 400 * time.Millisecond

// Rect is a screen rectangle. Width and height are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area with caller data attached.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in insertion order. Later regions win on overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add appends a region.
func (m *HitMap) Add(r Region) {
	m.regions = append(m.regions, r)
}

// AddRect appends a region built from coordinates.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.Add(Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return &m.regions[i]
		}
	}
	return nil
}

// Clear removes all regions.
func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns the regions in insertion order.
func (m *HitMap) Regions() []Region {
	return m.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionRightClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionRelease
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionRightClick:
		return "right-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// Action is the result of HandleMouse.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	DragDX int
	DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	now func() time.Time

	lastClickRegion string
	lastClickTime   time.Time

	dragging       bool
	dragRegion     string
	dragStartX     int
	dragStartY     int
	dragStartValue int
}

// NewHandler returns a Handler with an empty HitMap.
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		now:    time.Now,
	}
}

// HandleClick resolves a primary click at (x, y) and detects double clicks.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickRegion = ""
		return ClickResult{}
	}

	now := h.now()
	double := h.lastClickRegion == region.ID && now.Sub(h.lastClickTime) <= DoubleClickThreshold
	if double {
		// A third click starts a new sequence.
		h.lastClickRegion = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickRegion = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag at (x, y). startValue is whatever the caller is
// dragging, such as a pane width.
func (h *Handler) StartDrag(x, y int, regionID string, startValue int) {
	h.dragging = true
	h.dragRegion = regionID
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the drag started on.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// Clear drops all regions. Call before laying out a new frame.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies msg against the hit map.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{X: msg.X, Y: msg.Y}

	if h.dragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			return action
		case tea.MouseActionRelease:
			h.EndDrag()
			action.Type = ActionDragEnd
			return action
		}
	}

	action.Region = h.HitMap.Test(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		action.Type = ActionHover
		return action
	case tea.MouseActionRelease:
		action.Type = ActionRelease
		return action
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		action.Type = ActionScrollUp
		if msg.Shift {
			action.Type = ActionScrollLeft
		}
	case tea.MouseButtonWheelDown:
		action.Type = ActionScrollDown
		if msg.Shift {
			action.Type = ActionScrollRight
		}
	case tea.MouseButtonWheelLeft:
		action.Type = ActionScrollLeft
	case tea.MouseButtonWheelRight:
		action.Type = ActionScrollRight
	case tea.MouseButtonLeft:
		result := h.HandleClick(msg.X, msg.Y)
		action.Type = ActionClick
		if result.IsDoubleClick {
			action.Type = ActionDoubleClick
		}
	case tea.MouseButtonRight:
		action.Type = ActionRightClick
	}
	return action
}
