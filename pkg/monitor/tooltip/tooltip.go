// Package tooltip provides the floating components toggled by a disclosure
// manager: a Tooltip with a markdown body and a click-toggled Menu. Both
// implement disclosure.ElementOverlay and position themselves next to their
// trigger through a Placer when they open.
package tooltip

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/marcus/disclose/internal/dom"
)

const (
	// DefaultWidth is the outer width of a tooltip box in cells.
	DefaultWidth = 36
	// DefaultMarkdownStyle is the glamour style used for bodies.
	DefaultMarkdownStyle = "dark"

	// border plus horizontal padding
	boxChrome = 4
)

// Tooltip is a titled box whose body is rendered as markdown.
type Tooltip struct {
	popup

	title string
	body  string
	width int
	style string

	renderer *glamour.TermRenderer
	wrap     int
	lines    []string
	opens    int
}

// Option configures a Tooltip.
type Option func(*Tooltip)

// WithWidth sets the outer width of the box.
func WithWidth(w int) Option {
	return func(t *Tooltip) {
		if w > boxChrome {
			t.width = w
		}
	}
}

// WithCloseOnClick makes a click on the trigger toggle the tooltip.
func WithCloseOnClick(close bool) Option {
	return func(t *Tooltip) {
		t.closeOnClick = close
	}
}

// WithPlacer replaces the default BelowPlacer.
func WithPlacer(p Placer) Option {
	return func(t *Tooltip) {
		if p != nil {
			t.placer = p
		}
	}
}

// WithMarkdownStyle sets the glamour style for the body. An empty style
// renders the body as wrapped plain text.
func WithMarkdownStyle(style string) Option {
	return func(t *Tooltip) {
		t.style = style
	}
}

// New returns a closed tooltip. id names its floating element.
func New(id, title, body string, opts ...Option) *Tooltip {
	t := &Tooltip{
		popup: popup{
			el:     dom.NewElement("tooltip", id),
			placer: BelowPlacer{},
		},
		title: title,
		body:  body,
		width: DefaultWidth,
		style: DefaultMarkdownStyle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOpen shows or hides the tooltip. Opening renders it and places it next
// to the last anchor.
func (t *Tooltip) SetOpen(open bool) {
	t.open = open
	if !open {
		return
	}
	t.opens++
	t.lines = t.render()
	t.place(t.Size())
}

// Opens returns how many times the tooltip has been opened.
func (t *Tooltip) Opens() int { return t.opens }

// Title returns the tooltip heading.
func (t *Tooltip) Title() string { return t.title }

// Body returns the markdown source of the body.
func (t *Tooltip) Body() string { return t.body }

// SetBody replaces the body. An open tooltip is re-rendered in place.
func (t *Tooltip) SetBody(body string) {
	t.body = body
	t.lines = nil
	if t.open {
		t.lines = t.render()
		t.place(t.Size())
	}
}

// Markdown returns the tooltip as a markdown document.
func (t *Tooltip) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + t.title + "\n")
	if t.body != "" {
		sb.WriteString("\n" + strings.TrimSpace(t.body) + "\n")
	}
	return sb.String()
}

// Lines returns the rendered box, one string per row.
func (t *Tooltip) Lines() []string {
	if t.lines == nil {
		t.lines = t.render()
	}
	return t.lines
}

// Size returns the rendered width and height.
func (t *Tooltip) Size() (int, int) {
	lines := t.Lines()
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return w, len(lines)
}

// View renders the tooltip, or nothing when it is closed.
func (t *Tooltip) View() string {
	if !t.open {
		return ""
	}
	return strings.Join(t.Lines(), "\n")
}

func (t *Tooltip) render() []string {
	inner := t.width - boxChrome

	var sb strings.Builder
	sb.WriteString(Title.Render(cellbuf.Wrap(t.title, inner, " -")))
	if body := t.renderBody(inner); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
	}

	box := TooltipBox.Width(t.width - 2).Render(sb.String())
	return strings.Split(box, "\n")
}

func (t *Tooltip) renderBody(inner int) string {
	body := strings.TrimSpace(t.body)
	if body == "" {
		return ""
	}
	if t.style == "" {
		return Body.Render(cellbuf.Wrap(body, inner, " -"))
	}

	if t.renderer == nil || t.wrap != inner {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(t.style),
			glamour.WithWordWrap(inner),
		)
		if err != nil {
			return Body.Render(cellbuf.Wrap(body, inner, " -"))
		}
		t.renderer = r
		t.wrap = inner
	}

	out, err := t.renderer.Render(body)
	if err != nil {
		return Body.Render(cellbuf.Wrap(body, inner, " -"))
	}
	return trimRendered(out, inner)
}

// trimRendered drops the blank rows glamour puts around a document and cuts
// every row to width.
func trimRendered(s string, width int) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}

	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, ansi.Truncate(l, width, ""))
	}
	return strings.Join(out, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}
