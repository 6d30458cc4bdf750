package dom

import "slices"

// Node is an Element, a ShadowRoot or a Document.
type Node interface {
	EventTarget
	listeners() *listenerSet
}

// fragment holds the children of a Document or ShadowRoot.
type fragment struct {
	listenerSet
	children []*Element
}

func (f *fragment) removeChild(el *Element) {
	for i, c := range f.children {
		if c == el {
			f.children = slices.Delete(f.children, i, i+1)
			return
		}
	}
}

// Children returns the top-level elements of the fragment.
func (f *fragment) Children() []*Element {
	return f.children
}

// Element is a node of the tree. It may host a shadow root.
type Element struct {
	listenerSet

	id        string
	tag       string
	label     string
	focusable bool

	parent *Element
	// container is the Document or ShadowRoot an element with no parent
	// element was appended to.
	container Node
	owner     *fragment
	children  []*Element
	shadow    *ShadowRoot
}

// NewElement returns a detached element.
func NewElement(tag, id string) *Element {
	return &Element{tag: tag, id: id}
}

func (e *Element) ID() string  { return e.id }
func (e *Element) Tag() string { return e.tag }

// Label is the text the element renders.
func (e *Element) Label() string { return e.label }

// SetLabel sets the rendered text and returns the element.
func (e *Element) SetLabel(label string) *Element {
	e.label = label
	return e
}

// Focusable reports whether the element takes part in focus navigation.
func (e *Element) Focusable() bool { return e.focusable }

// SetFocusable marks the element as focusable and returns it.
func (e *Element) SetFocusable(focusable bool) *Element {
	e.focusable = focusable
	return e
}

// Parent returns the parent element within the same tree, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the light-tree children.
func (e *Element) Children() []*Element { return e.children }

// Append moves each child under e and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c == e {
			continue
		}
		c.Remove()
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Remove detaches e from its parent, shadow root or document.
func (e *Element) Remove() {
	if e.parent != nil {
		p := e.parent
		for i, c := range p.children {
			if c == e {
				p.children = slices.Delete(p.children, i, i+1)
				break
			}
		}
		e.parent = nil
	}
	if e.owner != nil {
		e.owner.removeChild(e)
		e.owner = nil
		e.container = nil
	}
}

// AttachShadow returns the element's shadow root, creating it on first use.
func (e *Element) AttachShadow() *ShadowRoot {
	if e.shadow == nil {
		e.shadow = &ShadowRoot{host: e}
	}
	return e.shadow
}

// ShadowRoot returns the attached shadow root, or nil.
func (e *Element) ShadowRoot() *ShadowRoot { return e.shadow }

// RootNode returns the Document or ShadowRoot that contains e, or nil when e
// is detached.
func (e *Element) RootNode() Node {
	top := e
	for top.parent != nil {
		top = top.parent
	}
	return top.container
}

// ContainingShadowRoot returns the nearest shadow root e lives in, or nil when
// e is in the top-level document tree or detached.
func (e *Element) ContainingShadowRoot() *ShadowRoot {
	sr, _ := e.RootNode().(*ShadowRoot)
	return sr
}

// OwnerDocument walks out through every shadow boundary and returns the
// document e is connected to, or nil.
func (e *Element) OwnerDocument() *Document {
	for n := e.RootNode(); n != nil; {
		switch v := n.(type) {
		case *Document:
			return v
		case *ShadowRoot:
			n = v.host.RootNode()
		default:
			return nil
		}
	}
	return nil
}

// IsConnected reports whether e is attached to a document.
func (e *Element) IsConnected() bool {
	return e.OwnerDocument() != nil
}

// Contains reports whether other is e or a light-tree descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// ContainsComposed is like Contains but also looks through the shadow trees
// hosted by e and its descendants.
func (e *Element) ContainsComposed(other *Element) bool {
	for n := other; n != nil; {
		if n == e {
			return true
		}
		if n.parent != nil {
			n = n.parent
			continue
		}
		sr, ok := n.container.(*ShadowRoot)
		if !ok {
			return false
		}
		n = sr.host
	}
	return false
}

// ShadowRoot is the root of an encapsulated sub-tree hosted by an element.
type ShadowRoot struct {
	fragment
	host *Element
}

// Host returns the element the shadow root is attached to.
func (s *ShadowRoot) Host() *Element { return s.host }

// Append adds top-level elements to the shadow tree and returns s.
func (s *ShadowRoot) Append(children ...*Element) *ShadowRoot {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Remove()
		c.container = s
		c.owner = &s.fragment
		s.children = append(s.children, c)
	}
	return s
}
