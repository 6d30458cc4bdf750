package tooltip

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/disclose/internal/dom"
)

// Item is one entry of a Menu.
type Item struct {
	ID    string // Returned as the action when chosen
	Label string // Display text
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) MenuOption {
	return func(m *Menu) {
		if n > 0 {
			m.maxVisible = n
		}
	}
}

// WithMenuPlacer replaces the default BelowPlacer.
func WithMenuPlacer(p Placer) MenuOption {
	return func(m *Menu) {
		if p != nil {
			m.placer = p
		}
	}
}

// Menu is a scrollable list of actions opened by clicking its trigger.
type Menu struct {
	popup

	items        []Item
	selected     int
	maxVisible   int
	scrollOffset int

	lines []string
	// rows maps a rendered row to the item drawn on it, or -1.
	rows []int
}

// NewMenu returns a closed menu. Clicking its trigger toggles it.
func NewMenu(id string, items []Item, opts ...MenuOption) *Menu {
	m := &Menu{
		popup: popup{
			el:           dom.NewElement("menu", id),
			closeOnClick: true,
			placer:       BelowPlacer{},
		},
		items:      items,
		maxVisible: 5, // Default
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetOpen shows or hides the menu. Opening resets the selection to the first
// item.
func (m *Menu) SetOpen(open bool) {
	m.open = open
	if !open {
		return
	}
	m.selected = 0
	m.scrollOffset = 0
	m.render()
	m.place(m.Size())
}

// Items returns the menu entries.
func (m *Menu) Items() []Item { return m.items }

// Selected returns the highlighted item.
func (m *Menu) Selected() (Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.selected], true
}

// Update handles navigation keys and returns the chosen item's ID on enter.
func (m *Menu) Update(msg tea.KeyMsg) string {
	if !m.open || len(m.items) == 0 {
		return ""
	}

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case "home":
		m.selected = 0
	case "end":
		m.selected = len(m.items) - 1
	case "enter":
		item, _ := m.Selected()
		return item.ID
	default:
		return ""
	}
	m.render()
	return ""
}

// ItemAt returns the item drawn at screen cell (x, y).
func (m *Menu) ItemAt(x, y int) (Item, bool) {
	if !m.open {
		return Item{}, false
	}
	w, h := m.Size()
	if x < m.x || x >= m.x+w || y < m.y || y >= m.y+h {
		return Item{}, false
	}
	row := y - m.y
	if row >= len(m.rows) || m.rows[row] < 0 {
		return Item{}, false
	}
	return m.items[m.rows[row]], true
}

// Lines returns the rendered box, one string per row.
func (m *Menu) Lines() []string {
	if m.lines == nil {
		m.render()
	}
	return m.lines
}

// Size returns the rendered width and height.
func (m *Menu) Size() (int, int) {
	lines := m.Lines()
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return w, len(lines)
}

// View renders the menu, or nothing when it is closed.
func (m *Menu) View() string {
	if !m.open {
		return ""
	}
	return strings.Join(m.Lines(), "\n")
}

func (m *Menu) render() {
	// top border
	rows := []int{-1}

	var content []string
	if len(m.items) == 0 {
		content = append(content, MutedText.Render("(no items)"))
		rows = append(rows, -1)
	} else {
		visibleCount := min(m.maxVisible, len(m.items))

		// Adjust scroll to keep selection visible
		if m.selected < m.scrollOffset {
			m.scrollOffset = m.selected
		} else if m.selected >= m.scrollOffset+visibleCount {
			m.scrollOffset = m.selected - visibleCount + 1
		}
		m.scrollOffset = clamp(m.scrollOffset, 0, max(0, len(m.items)-visibleCount))

		if m.scrollOffset > 0 {
			content = append(content, MutedText.Render("↑ more above"))
			rows = append(rows, -1)
		}
		for i := 0; i < visibleCount; i++ {
			idx := m.scrollOffset + i
			item := m.items[idx]

			cursor := "  "
			style := ListItemNormal
			if idx == m.selected {
				cursor = ListCursor.Render("> ")
				style = ListItemSelected
			}
			content = append(content, cursor+style.Render(item.Label))
			rows = append(rows, idx)
		}
		if m.scrollOffset+visibleCount < len(m.items) {
			content = append(content, MutedText.Render("↓ more below"))
			rows = append(rows, -1)
		}
	}

	// bottom border
	rows = append(rows, -1)

	box := MenuBox.Render(strings.Join(content, "\n"))
	m.lines = strings.Split(box, "\n")
	m.rows = rows
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
