package gpio

import (
	"sync"
	"time"
)

// FakeInput is a test double for the button line. Tests script presses with
// Press/Release/Bounce, or drive edges and levels independently.
type FakeInput struct {
	mu     sync.Mutex
	level  bool // true = pressed
	events chan Edge

	// ReadError, if set, will be returned by Value().
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeInput creates a FakeInput in the released state.
func NewFakeInput() *FakeInput {
	return &FakeInput{events: make(chan Edge, 16)}
}

// Press asserts the level and emits a falling edge.
func (f *FakeInput) Press() {
	f.SetLevel(true)
	f.SendEdge(true)
}

// Release deasserts the level and emits a rising edge.
func (f *FakeInput) Release() {
	f.SetLevel(false)
	f.SendEdge(false)
}

// Bounce emits a falling edge without holding the level, imitating
// electrical chatter shorter than the settle window.
func (f *FakeInput) Bounce() {
	f.SendEdge(true)
}

// SetLevel sets the level returned by Value.
func (f *FakeInput) SetLevel(pressed bool) {
	f.mu.Lock()
	f.level = pressed
	f.mu.Unlock()
}

// SendEdge emits one edge event.
func (f *FakeInput) SendEdge(falling bool) {
	f.events <- Edge{Falling: falling, Time: time.Now()}
}

// Events returns the scripted edge stream.
func (f *FakeInput) Events() <-chan Edge { return f.events }

// Value returns the scripted level.
func (f *FakeInput) Value() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.level, nil
}

// Close marks the input as closed.
func (f *FakeInput) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// FakeOutput records LED writes for test assertions.
type FakeOutput struct {
	mu sync.Mutex

	// writes contains every logical level driven onto the line.
	writes []bool

	// SetError, if set, will be returned by Set().
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeOutput creates a FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the write.
func (f *FakeOutput) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.writes = append(f.writes, on)
	return nil
}

// Writes returns a copy of all recorded writes.
func (f *FakeOutput) Writes() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.writes))
	copy(out, f.writes)
	return out
}

// Last returns the most recent write, if any.
func (f *FakeOutput) Last() (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return false, false
	}
	return f.writes[len(f.writes)-1], true
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
