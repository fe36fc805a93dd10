package sched

import (
	"testing"
	"time"
)

func TestManualFrames(t *testing.T) {
	m := NewManual()
	var order []string

	m.RequestFrame(func() {
		order = append(order, "a")
		m.RequestFrame(func() { order = append(order, "c") })
	})
	m.RequestFrame(func() { order = append(order, "b") })

	if !m.Frame() {
		t.Fatal("Frame() = false, want true")
	}
	if got := len(order); got != 2 {
		t.Fatalf("after one frame ran %d callbacks, want 2", got)
	}
	if m.PendingFrames() != 1 {
		t.Errorf("PendingFrames() = %d, want 1", m.PendingFrames())
	}
	if n := m.Settle(10); n != 1 {
		t.Errorf("Settle() ran %d frames, want 1", n)
	}
	if order[2] != "c" {
		t.Errorf("order = %v, want nested callback last", order)
	}
	if m.Frame() {
		t.Error("Frame() with nothing queued = true")
	}
}

func TestManualTimers(t *testing.T) {
	m := NewManual()
	var fired []int

	m.After(60*time.Millisecond, func() { fired = append(fired, 60) })
	cancel := m.After(16*time.Millisecond, func() { fired = append(fired, 16) })
	m.After(10*time.Millisecond, func() { fired = append(fired, 10) })

	cancel()
	m.Advance(59 * time.Millisecond)
	if len(fired) != 1 || fired[0] != 10 {
		t.Fatalf("fired = %v, want [10]", fired)
	}
	m.Advance(time.Millisecond)
	if len(fired) != 2 || fired[1] != 60 {
		t.Fatalf("fired = %v, want [10 60]", fired)
	}
	if m.PendingTimers() != 0 {
		t.Errorf("PendingTimers() = %d, want 0", m.PendingTimers())
	}
	cancel() // after the fact
}

func TestTeaScheduler(t *testing.T) {
	s := NewTea()
	ran := 0

	s.RequestFrame(func() { ran++ })
	s.RequestFrame(func() { ran++ })
	if s.Cmd() == nil {
		t.Fatal("Cmd() = nil after RequestFrame")
	}
	if s.Cmd() != nil {
		t.Error("Cmd() should drain")
	}

	if !s.Handle(FrameMsg{}) {
		t.Fatal("Handle(FrameMsg) = false")
	}
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}

	cancel := s.After(time.Millisecond, func() { ran += 10 })
	cancel()
	s.Handle(TimerMsg{ID: 1})
	if ran != 2 {
		t.Errorf("cancelled timer ran, ran = %d", ran)
	}

	s.After(time.Millisecond, func() { ran += 10 })
	s.Handle(TimerMsg{ID: 2})
	if ran != 12 {
		t.Errorf("ran = %d, want 12", ran)
	}
	if s.Handle("other") {
		t.Error("Handle(non-scheduler msg) = true")
	}
}
