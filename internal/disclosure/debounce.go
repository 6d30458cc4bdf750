package disclosure

import (
	"time"

	"github.com/marcus/disclose/internal/dom"
)

// Timer is a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped a pending callback.
	Stop() bool
}

// Scheduler runs fn after d. Callbacks must be delivered on the goroutine that
// drives the Manager.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// LoopScheduler posts expired callbacks to a document's task queue so they run
// on the UI loop, interleaved with event dispatch.
type LoopScheduler struct {
	doc *dom.Document
}

// NewLoopScheduler returns a Scheduler backed by doc's task queue.
func NewLoopScheduler(doc *dom.Document) *LoopScheduler {
	return &LoopScheduler{doc: doc}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		s.doc.Post(fn)
	})
}

// Debouncer keeps at most one pending callback. Scheduling replaces the
// pending callback; it never stacks.
//
// A callback whose Timer could not be stopped in time (already queued on the
// loop) is still dropped: every Schedule and CancelPending bumps a generation
// counter that the wrapped callback checks before running.
type Debouncer struct {
	sched   Scheduler
	pending Timer
	gen     uint64
}

// NewDebouncer returns a Debouncer using sched.
func NewDebouncer(sched Scheduler) *Debouncer {
	return &Debouncer{sched: sched}
}

// Schedule cancels any pending callback and arranges for fn to run after
// delay.
func (d *Debouncer) Schedule(fn func(), delay time.Duration) {
	d.CancelPending()
	gen := d.gen
	d.pending = d.sched.AfterFunc(delay, func() {
		if gen != d.gen {
			return
		}
		d.pending = nil
		fn()
	})
}

// CancelPending drops the pending callback, if any.
func (d *Debouncer) CancelPending() {
	d.gen++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}
