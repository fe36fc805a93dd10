package sched

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval approximates one display refresh
const FrameInterval = time.Second / 60

// FrameMsg is delivered once per requested refresh
type FrameMsg struct{}

// TimerMsg is delivered when a one-shot timer elapses
type TimerMsg struct {
	ID int
}

// Tea adapts Scheduler to bubbletea. Callbacks are queued in the scheduler
// and run from Update when the matching message arrives; Cmd hands the
// required ticks back to the program.
type Tea struct {
	frames       []func()
	framePending bool
	timers       map[int]func()
	nextID       int
	cmds         []tea.Cmd
}

// NewTea returns an empty bubbletea scheduler
func NewTea() *Tea {
	return &Tea{timers: make(map[int]func())}
}

func (s *Tea) RequestFrame(fn func()) {
	s.frames = append(s.frames, fn)
	if !s.framePending {
		s.framePending = true
		s.cmds = append(s.cmds, tea.Tick(FrameInterval, func(time.Time) tea.Msg {
			return FrameMsg{}
		}))
	}
}

func (s *Tea) After(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return TimerMsg{ID: id}
	}))
	return func() { delete(s.timers, id) }
}

// Handle runs the callbacks for a scheduler message. It reports false for
// messages that are not the scheduler's.
func (s *Tea) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FrameMsg:
		s.framePending = false
		queued := s.frames
		s.frames = nil
		for _, fn := range queued {
			fn()
		}
		return true
	case TimerMsg:
		fn, ok := s.timers[msg.ID]
		if !ok {
			// Cancelled
			return true
		}
		delete(s.timers, msg.ID)
		fn()
		return true
	}
	return false
}

// Cmd drains the ticks requested since the last call
func (s *Tea) Cmd() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
