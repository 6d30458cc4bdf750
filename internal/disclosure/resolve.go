package disclosure

import "github.com/marcus/disclose/internal/dom"

// Lookup returns the overlay registered for a trigger.
type Lookup func(trigger *dom.Element) (Overlay, bool)

// Resolve returns the first element in path, innermost first, that lookup
// knows about. Non-element nodes (shadow roots, the document) are skipped.
func Resolve(path []dom.Node, lookup Lookup) (*dom.Element, Overlay, bool) {
	for _, n := range path {
		el, ok := n.(*dom.Element)
		if !ok {
			continue
		}
		if o, ok := lookup(el); ok {
			return el, o, true
		}
	}
	return nil, nil, false
}

// pathContains reports whether el appears in path.
func pathContains(path []dom.Node, el *dom.Element) bool {
	if el == nil {
		return false
	}
	for _, n := range path {
		if n == dom.Node(el) {
			return true
		}
	}
	return false
}
