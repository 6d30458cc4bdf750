// Package disclosuretest provides a manual scheduler and a recording overlay
// for tests of code built on package disclosure.
package disclosuretest

import (
	"sort"
	"time"

	"github.com/marcus/disclose/internal/disclosure"
	"github.com/marcus/disclose/internal/dom"
)

// Scheduler is a disclosure.Scheduler driven by Advance instead of a clock.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewScheduler returns a Scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) disclosure.Timer {
	s.seq++
	t := &timer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward by d, running every callback that comes due in
// order of expiry. Callbacks scheduled while advancing run too if they expire
// within the window.
func (s *Scheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		next := s.nextDue(end)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = end
	s.compact()
}

// Pending returns how many callbacks are waiting.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the virtual time elapsed.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

func (s *Scheduler) nextDue(end time.Duration) *timer {
	var due []*timer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= end {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	clear(s.timers[len(live):])
	s.timers = live
}

// Overlay is an overlay handle that records how it was toggled.
type Overlay struct {
	Name string

	open         bool
	closeOnClick bool
	el           *dom.Element

	// Opens and Closes count SetOpen calls that changed the flag.
	Opens  int
	Closes int
}

// NewOverlay returns a closed overlay.
func NewOverlay(name string, closeOnClick bool) *Overlay {
	return &Overlay{Name: name, closeOnClick: closeOnClick}
}

// WithElement attaches the overlay's own floating element and returns o.
func (o *Overlay) WithElement(el *dom.Element) *Overlay {
	o.el = el
	return o
}

func (o *Overlay) IsOpen() bool       { return o.open }
func (o *Overlay) CloseOnClick() bool { return o.closeOnClick }
func (o *Overlay) Element() *dom.Element {
	return o.el
}

func (o *Overlay) SetOpen(open bool) {
	if open == o.open {
		return
	}
	o.open = open
	if open {
		o.Opens++
	} else {
		o.Closes++
	}
}

// CountOpen returns how many of overlays are open.
func CountOpen(overlays ...*Overlay) int {
	n := 0
	for _, o := range overlays {
		if o.IsOpen() {
			n++
		}
	}
	return n
}
