package led

import "testing"

func TestSignalEmptyTryTake(t *testing.T) {
	s := NewSignal()
	if _, ok := s.TryTake(); ok {
		t.Error("TryTake on empty signal should return false")
	}
}

func TestSignalSetAndTake(t *testing.T) {
	s := NewSignal()
	s.Set(StatusBusy)

	v, ok := s.TryTake()
	if !ok {
		t.Fatal("expected a pending value")
	}
	if v != StatusBusy {
		t.Errorf("got %v, want BUSY", v)
	}

	// Taking consumes the value.
	if _, ok := s.TryTake(); ok {
		t.Error("second TryTake should return false")
	}
}

func TestSignalLastWriteWins(t *testing.T) {
	s := NewSignal()
	s.Set(StatusIdle)
	s.Set(StatusBusy)
	s.Set(StatusAlarm)

	v, ok := s.TryTake()
	if !ok {
		t.Fatal("expected a pending value")
	}
	if v != StatusAlarm {
		t.Errorf("got %v, want ALARM (most recent write)", v)
	}
	if _, ok := s.TryTake(); ok {
		t.Error("overwrites must not queue: only one value should be pending")
	}
}

func TestSignalWake(t *testing.T) {
	s := NewSignal()

	select {
	case <-s.Wake():
		t.Fatal("wake should not fire before any Set")
	default:
	}

	s.Set(StatusIdle)
	select {
	case <-s.Wake():
	default:
		t.Fatal("wake should fire after Set")
	}
}

func TestSignalSetNeverBlocks(t *testing.T) {
	s := NewSignal()
	// No reader; repeated sets must still return immediately.
	for i := 0; i < 1000; i++ {
		s.Set(StatusBusy)
	}
	if v, ok := s.TryTake(); !ok || v != StatusBusy {
		t.Errorf("got (%v, %v), want (BUSY, true)", v, ok)
	}
}
