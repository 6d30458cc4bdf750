package dom

// taskQueueSize bounds how many posted tasks may wait for the UI loop before
// Post blocks.
const taskQueueSize = 64

// Document is the top of the tree. It tracks focus and owns the task queue
// used to hand work back to the UI loop.
type Document struct {
	fragment
	active *Element
	tasks  chan func()
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{tasks: make(chan func(), taskQueueSize)}
}

// Append adds top-level elements to the document and returns d.
func (d *Document) Append(children ...*Element) *Document {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Remove()
		c.container = d
		c.owner = &d.fragment
		d.children = append(d.children, c)
	}
	return d
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && d.active.OwnerDocument() != d {
		d.active = nil
	}
	return d.active
}

// Focus moves focus to el, dispatching focusout on the previously focused
// element and then focusin on el. Passing nil blurs. It reports whether focus
// changed.
func (d *Document) Focus(el *Element) bool {
	if el != nil && (!el.focusable || el.OwnerDocument() != d) {
		return false
	}
	prev := d.ActiveElement()
	if prev == el {
		return false
	}
	d.active = el
	if prev != nil {
		out := NewEvent(EventFocusOut, prev)
		out.RelatedTarget = el
		Dispatch(out)
	}
	if el != nil {
		in := NewEvent(EventFocusIn, el)
		in.RelatedTarget = prev
		Dispatch(in)
	}
	return true
}

// Blur clears focus.
func (d *Document) Blur() bool {
	return d.Focus(nil)
}

// FocusNext moves focus to the next focusable element in composed tree order,
// wrapping around.
func (d *Document) FocusNext() bool {
	return d.focusStep(1)
}

// FocusPrev moves focus to the previous focusable element, wrapping around.
func (d *Document) FocusPrev() bool {
	return d.focusStep(-1)
}

func (d *Document) focusStep(dir int) bool {
	var order []*Element
	d.Walk(func(el *Element) bool {
		if el.focusable {
			order = append(order, el)
		}
		return true
	})
	if len(order) == 0 {
		return false
	}
	cur := -1
	active := d.ActiveElement()
	for i, el := range order {
		if el == active {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur == -1 && dir > 0:
		next = 0
	case cur == -1:
		next = len(order) - 1
	default:
		next = (cur + dir + len(order)) % len(order)
	}
	return d.Focus(order[next])
}

// Walk visits every connected element in composed tree order: an element,
// then its shadow tree, then its light children. Returning false from fn stops
// the walk.
func (d *Document) Walk(fn func(el *Element) bool) {
	walkElements(d.children, fn)
}

func walkElements(els []*Element, fn func(el *Element) bool) bool {
	for _, el := range els {
		if !fn(el) {
			return false
		}
		if el.shadow != nil && !walkElements(el.shadow.children, fn) {
			return false
		}
		if !walkElements(el.children, fn) {
			return false
		}
	}
	return true
}

// ElementByID finds a connected element by id, looking into shadow trees.
func (d *Document) ElementByID(id string) *Element {
	var found *Element
	d.Walk(func(el *Element) bool {
		if el.id == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// Post queues fn to run on the UI loop. It is safe to call from any goroutine.
func (d *Document) Post(fn func()) {
	d.tasks <- fn
}

// Tasks is the queue the UI loop drains.
func (d *Document) Tasks() <-chan func() {
	return d.tasks
}

// RunPending runs every task queued so far without blocking and returns how
// many ran.
func (d *Document) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-d.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}
