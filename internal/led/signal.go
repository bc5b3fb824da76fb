package led

import "sync"

// Signal is a single-slot, last-write-wins notification. A write replaces
// any unconsumed value; readers only ever observe the most recent write.
// It never blocks a writer and never accumulates a backlog.
type Signal struct {
	mu   sync.Mutex
	val  Status
	set  bool
	wake chan struct{}
}

// NewSignal creates an empty Signal.
func NewSignal() *Signal {
	return &Signal{wake: make(chan struct{}, 1)}
}

// Set stores s, replacing any pending value, and wakes the reader.
// Callable from any goroutine; never blocks.
func (s *Signal) Set(v Status) {
	s.mu.Lock()
	s.val = v
	s.set = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Wake returns a channel that receives after a Set. A wake-up does not
// guarantee a pending value is still there; pair it with TryTake.
func (s *Signal) Wake() <-chan struct{} { return s.wake }

// TryTake removes and returns the pending value, if any.
func (s *Signal) TryTake() (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return 0, false
	}
	s.set = false
	return s.val, true
}
