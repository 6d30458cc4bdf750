package monitor

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

// writeClipboard copies text to the system clipboard. Tests replace it.
var writeClipboard = clipboard.WriteAll

// overlayMarkdown formats the content of t's overlay as markdown for the
// clipboard.
func overlayMarkdown(t *Trigger) string {
	switch o := t.Overlay.(type) {
	case *tooltip.Tooltip:
		return o.Markdown()
	case *tooltip.Menu:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("# %s\n\n", t.El.Label()))
		for _, item := range o.Items() {
			sb.WriteString(fmt.Sprintf("- %s\n", item.Label))
		}
		return sb.String()
	default:
		return t.El.Label() + "\n"
	}
}

// copyOverlay copies the open overlay, if any, and returns a status message.
func (m *Model) copyOverlay() string {
	t := m.scene.TriggerFor(m.manager.Active())
	if t == nil {
		return "nothing to copy"
	}
	if err := writeClipboard(overlayMarkdown(t)); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		return "copy failed: " + err.Error()
	}
	return fmt.Sprintf("copied %s to clipboard", t.El.ID())
}
