package sched

import (
	"sort"
	"time"
)

// Scheduler is the cooperative event loop the controller runs on. Frames
// stand in for display refreshes; timers are one-shot.
type Scheduler interface {
	// RequestFrame queues fn for the next refresh. Callbacks queued while a
	// frame is running go to the following frame.
	RequestFrame(fn func())
	// After runs fn once d has elapsed. cancel is safe to call at any time.
	After(d time.Duration, fn func()) (cancel func())
}

// Manual is a deterministic Scheduler driven explicitly by its owner
type Manual struct {
	now    time.Duration
	frames []func()
	timers []*manualTimer
	seq    int
}

type manualTimer struct {
	due time.Duration
	seq int
	fn  func()
}

// NewManual returns a Manual scheduler at time zero
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(fn func()) {
	m.frames = append(m.frames, fn)
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	m.seq++
	t := &manualTimer{due: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() {
		for i, other := range m.timers {
			if other == t {
				m.timers = append(m.timers[:i], m.timers[i+1:]...)
				return
			}
		}
	}
}

// Frame runs one refresh and reports whether anything was queued
func (m *Manual) Frame() bool {
	if len(m.frames) == 0 {
		return false
	}
	queued := m.frames
	m.frames = nil
	for _, fn := range queued {
		fn()
	}
	return true
}

// Settle runs refreshes until none are pending, up to limit frames
func (m *Manual) Settle(limit int) int {
	n := 0
	for n < limit && m.Frame() {
		n++
	}
	return n
}

// PendingFrames reports how many callbacks wait for the next refresh
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}

// PendingTimers reports how many timers have not fired or been cancelled
func (m *Manual) PendingTimers() int {
	return len(m.timers)
}

// Advance moves the clock forward, firing due timers in deadline order
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		sort.SliceStable(m.timers, func(i, j int) bool {
			if m.timers[i].due == m.timers[j].due {
				return m.timers[i].seq < m.timers[j].seq
			}
			return m.timers[i].due < m.timers[j].due
		})
		if len(m.timers) == 0 || m.timers[0].due > target {
			break
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		m.now = t.due
		t.fn()
	}
	m.now = target
}

// Now returns the elapsed virtual time
func (m *Manual) Now() time.Duration {
	return m.now
}
