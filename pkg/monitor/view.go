package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/disclose/internal/dom"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	lines := m.renderBase()
	if t := m.scene.OpenOverlay(); t != nil {
		x, y := t.Overlay.Position()
		lines = overlayLines(lines, t.Overlay.Lines(), x, y)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBase() []string {
	h := max(m.Height, minHeight)
	lines := make([]string, h)

	lines[0] = " " + titleStyle.Render("disclose") + mutedStyle.Render("  hover, click, tab or esc")
	lines[panelY] = "  " + mutedStyle.Render("panel #shadow-root")
	lines[panelY+3] = "    " + mutedStyle.Render("widget #shadow-root")
	for _, row := range m.rows {
		lines[row.y] = m.renderRow(row)
	}

	helpLines := strings.Split(m.help.View(keys), "\n")
	start := h - len(helpLines)
	for i, l := range helpLines {
		lines[start+i] = " " + l
	}
	lines[start-1] = m.statusLine()

	if m.Width > 0 {
		for i := range lines {
			lines[i] = ansi.Truncate(lines[i], m.Width, "")
		}
	}
	return lines
}

func (m Model) renderRow(row buttonRow) string {
	parts := make([]string, 0, len(row.els))
	for _, el := range row.els {
		parts = append(parts, m.buttonStyleFor(el).Render(el.Label()))
	}
	return strings.Repeat(" ", row.x) + strings.Join(parts, " ")
}

func (m Model) buttonStyleFor(el *dom.Element) lipgloss.Style {
	switch t := m.scene.Trigger(el.ID()); {
	case t != nil && t.Overlay.IsOpen():
		return buttonOpenStyle
	case m.scene.Doc.ActiveElement() == el:
		return buttonFocusedStyle
	case m.hovered == el:
		return buttonHoverStyle
	default:
		return buttonStyle
	}
}

func (m Model) statusLine() string {
	active := "none"
	if t := m.scene.TriggerFor(m.manager.Active()); t != nil {
		active = t.El.ID()
	}
	focus := "none"
	if el := m.scene.Doc.ActiveElement(); el != nil {
		focus = el.ID()
	}

	s := fmt.Sprintf(" %s  active: %s  focus: %s  delay: %s",
		stateStyle.Render(m.manager.State().String()), active, focus, m.manager.HoverDelay())
	if m.status != "" {
		s += "  " + noticeStyle.Render(m.status)
	}
	return statusStyle.Render(s)
}

// overlayLines splices box over base with its top-left cell at (x, y). Rows
// of box that fall outside base are dropped.
func overlayLines(base, box []string, x, y int) []string {
	out := make([]string, len(base))
	copy(out, base)

	for i, row := range box {
		ly := y + i
		if ly < 0 || ly >= len(out) {
			continue
		}
		line := out[ly]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(row), "")
		out[ly] = left + row + right
	}
	return out
}
