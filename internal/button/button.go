// Package button turns a noisy digital input into a clean stream of click
// events. One physical press yields at most one click; electrical bounce
// shorter than the settle window yields none.
package button

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/button-notify/internal/gpio"
)

// DefaultSettle is how long the line must stay asserted after a falling
// edge before the press counts as real.
const DefaultSettle = 20 * time.Millisecond

// Source emits debounced click events from a GPIO input.
type Source struct {
	in     gpio.Input
	settle time.Duration
	clicks chan struct{}
}

// New creates a Source reading from in. settle <= 0 selects DefaultSettle.
func New(in gpio.Input, settle time.Duration) *Source {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Source{
		in:     in,
		settle: settle,
		clicks: make(chan struct{}, 1),
	}
}

// Clicks returns the click stream. It holds at most one pending click: a
// click not consumed before the next press is replaced, never queued.
func (s *Source) Clicks() <-chan struct{} { return s.clicks }

// WaitForClick blocks until the next click or context cancellation.
func (s *Source) WaitForClick(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clicks:
		return nil
	}
}

// Run watches the input until ctx is cancelled.
// Suspension points: the edge channel, the settle timer, the release wait.
func (s *Source) Run(ctx context.Context) {
	for {
		if !s.waitForPressEdge(ctx) {
			return
		}

		// Settle, then re-sample. A line no longer asserted was a bounce.
		if !sleep(ctx, s.settle) {
			return
		}
		pressed, err := s.in.Value()
		if err != nil {
			log.Printf("button: read: %v", err)
			continue
		}
		if !pressed {
			continue
		}

		// One click per press. A pending unconsumed click is left in place.
		select {
		case s.clicks <- struct{}{}:
		default:
		}

		// Re-arm only after release, so chatter while the button is held
		// or let go cannot produce a second click.
		if !s.waitForRelease(ctx) {
			return
		}
	}
}

func (s *Source) waitForPressEdge(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case e := <-s.in.Events():
			if e.Falling {
				return true
			}
		}
	}
}

func (s *Source) waitForRelease(ctx context.Context) bool {
	for {
		pressed, err := s.in.Value()
		if err != nil {
			log.Printf("button: read: %v", err)
		} else if !pressed {
			return true
		}
		// Wake on the next edge, or re-poll in case the release edge was
		// dropped from the event buffer.
		select {
		case <-ctx.Done():
			return false
		case <-s.in.Events():
		case <-time.After(s.settle):
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
