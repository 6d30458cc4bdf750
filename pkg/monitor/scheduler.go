package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/disclose/internal/disclosure"
)

// hoverTickMsg is delivered when a hover timer scheduled through
// teaScheduler expires.
type hoverTickMsg struct {
	id int
}

// teaScheduler turns disclosure timers into tea.Tick commands so callbacks
// run inside Update, on the same goroutine as every other event.
type teaScheduler struct {
	next   int
	timers map[int]*teaTimer
	queued []tea.Cmd
}

type teaTimer struct {
	s  *teaScheduler
	id int
	fn func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[int]*teaTimer)}
}

// AfterFunc implements disclosure.Scheduler. The tick command is queued and
// handed to Bubble Tea by drain.
func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) disclosure.Timer {
	s.next++
	t := &teaTimer{s: s, id: s.next, fn: fn}
	s.timers[t.id] = t

	id := t.id
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return hoverTickMsg{id: id}
	}))
	return t
}

// Stop cancels the timer. It reports false if the timer already fired or was
// stopped.
func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// fire runs the callback for id unless the timer was stopped.
func (s *teaScheduler) fire(id int) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	t.fn()
	return true
}

// drain returns the tick commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// pending returns the ids of live timers.
func (s *teaScheduler) pending() []int {
	ids := make([]int, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	return ids
}
