package output

import (
	"strings"

	"github.com/marcus/disclose/internal/dom"
)

// NodeKind distinguishes elements from shadow roots in a rendered tree
type NodeKind string

const (
	KindElement    NodeKind = "element"
	KindShadowRoot NodeKind = "shadow-root"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Tag      string
	Label    string
	Kind     NodeKind
	Trigger  bool   // registered with a disclosure manager
	State    string // overlay state for triggers
	Focused  bool
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth    int  // 0 = unlimited
	ShowMarks   bool // Whether to show trigger and focus marks
	ShowTag     bool // Whether to show the element tag
	Indentation int  // Base indentation level (for nested contexts)
}

// MarkFunc reports whether el is a registered trigger and the state of its
// overlay.
type MarkFunc func(el *dom.Element) (trigger bool, state string)

// FromDocument converts doc into tree nodes in composed order: an element's
// shadow root comes before its light children.
func FromDocument(doc *dom.Document, mark MarkFunc) []TreeNode {
	return fromElements(doc.Children(), doc.ActiveElement(), mark)
}

func fromElements(els []*dom.Element, focused *dom.Element, mark MarkFunc) []TreeNode {
	nodes := make([]TreeNode, 0, len(els))
	for _, el := range els {
		node := TreeNode{
			ID:      el.ID(),
			Tag:     el.Tag(),
			Label:   el.Label(),
			Kind:    KindElement,
			Focused: el == focused,
		}
		if mark != nil {
			node.Trigger, node.State = mark(el)
		}
		if sr := el.ShadowRoot(); sr != nil {
			node.Children = append(node.Children, TreeNode{
				ID:       "#shadow-root",
				Kind:     KindShadowRoot,
				Children: fromElements(sr.Children(), focused, mark),
			})
		}
		node.Children = append(node.Children, fromElements(el.Children(), focused, mark)...)
		nodes = append(nodes, node)
	}
	return nodes
}

// triggerMark returns a trigger indicator symbol
func triggerMark(n TreeNode) string {
	var marks []string
	if n.Trigger {
		marks = append(marks, "\u25c6", FormatState(n.State)) // ◆
	}
	if n.Focused {
		marks = append(marks, "\u2190 focus") // ←
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + strings.Join(marks, " ")
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, indent(opts))
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
// Useful for embedding trees in other output
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, indent(opts))
}

func indent(opts TreeRenderOptions) string {
	if opts.Indentation <= 0 {
		return ""
	}
	return strings.Repeat("  ", opts.Indentation)
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		// Build connector
		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		line := prefix + connector + nodeText(node, opts)
		lines = append(lines, line)

		// Build prefix for children
		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		// Recurse for children
		childLines := renderTreeNodes(node.Children, opts, depth+1, childPrefix)
		lines = append(lines, childLines...)
	}

	return lines
}

func nodeText(node TreeNode, opts TreeRenderOptions) string {
	if node.Kind == KindShadowRoot {
		return mutedStyle.Render(node.ID)
	}

	var parts []string
	if opts.ShowTag && node.Tag != "" {
		parts = append(parts, node.Tag)
	}
	id := node.ID
	if id == "" {
		id = "(anonymous)"
	}
	if node.Label != "" {
		parts = append(parts, id+":", node.Label)
	} else {
		parts = append(parts, id)
	}

	text := strings.Join(parts, " ")
	if opts.ShowMarks {
		text += triggerMark(node)
	}
	return text
}

// CountTriggers returns how many nodes in the forest are registered triggers.
func CountTriggers(nodes []TreeNode) int {
	n := 0
	for _, node := range nodes {
		if node.Trigger {
			n++
		}
		n += CountTriggers(node.Children)
	}
	return n
}
