package disclosure_test

import (
	"testing"
	"time"

	"github.com/marcus/disclose/internal/disclosure"
	"github.com/marcus/disclose/internal/disclosure/disclosuretest"
	"github.com/marcus/disclose/internal/dom"
)

func TestDebouncer_Replaces(t *testing.T) {
	sched := disclosuretest.NewScheduler()
	d := disclosure.NewDebouncer(sched)

	var fired []int
	for i := 1; i <= 3; i++ {
		d.Schedule(func() { fired = append(fired, i) }, 10*time.Millisecond)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", sched.Pending())
	}

	sched.Advance(10 * time.Millisecond)
	if len(fired) != 1 || fired[0] != 3 {
		t.Errorf("fired = %v, want [3]", fired)
	}
	if d.Pending() {
		t.Error("Pending should be false after the callback ran")
	}
}

func TestDebouncer_CancelPending(t *testing.T) {
	sched := disclosuretest.NewScheduler()
	d := disclosure.NewDebouncer(sched)

	called := false
	d.Schedule(func() { called = true }, 10*time.Millisecond)
	d.CancelPending()
	sched.Advance(time.Second)

	if called {
		t.Error("cancelled callback ran")
	}
	if d.Pending() {
		t.Error("Pending should be false after CancelPending")
	}
}

// unstoppable is a scheduler whose timers cannot be stopped, like a tick that
// is already queued on the UI loop.
type unstoppable struct {
	fns []func()
}

type noStop struct{}

func (noStop) Stop() bool { return false }

func (u *unstoppable) AfterFunc(_ time.Duration, fn func()) disclosure.Timer {
	u.fns = append(u.fns, fn)
	return noStop{}
}

func TestDebouncer_DropsStaleCallbacks(t *testing.T) {
	u := &unstoppable{}
	d := disclosure.NewDebouncer(u)

	var fired []string
	d.Schedule(func() { fired = append(fired, "first") }, time.Millisecond)
	d.Schedule(func() { fired = append(fired, "second") }, time.Millisecond)

	for _, fn := range u.fns {
		fn()
	}
	if len(fired) != 1 || fired[0] != "second" {
		t.Errorf("fired = %v, want [second]", fired)
	}
}

func TestLoopScheduler_RunsOnLoop(t *testing.T) {
	doc := dom.NewDocument()
	s := disclosure.NewLoopScheduler(doc)

	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case fn := <-doc.Tasks():
		if ran {
			t.Fatal("callback ran off the loop")
		}
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the callback to be posted")
	}
	if !ran {
		t.Error("callback did not run")
	}
}

func TestLoopScheduler_Stop(t *testing.T) {
	doc := dom.NewDocument()
	s := disclosure.NewLoopScheduler(doc)

	timer := s.AfterFunc(time.Hour, func() {})
	if !timer.Stop() {
		t.Error("Stop on a pending timer returned false")
	}
	if n := doc.RunPending(); n != 0 {
		t.Errorf("RunPending = %d, want 0", n)
	}
}
