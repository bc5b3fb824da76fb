package led

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sweeney/button-notify/internal/gpio"
)

// Renderer owns the LED output and turns signalled statuses into blink
// patterns. Exactly one Renderer runs per LED; nothing else writes the pin.
type Renderer struct {
	out gpio.Output
	sig *Signal

	// patterns and hold are the default tables; tests shrink them to keep
	// wall-clock time down.
	patterns map[Status]pattern
	hold     time.Duration

	mu      sync.Mutex
	current Status
}

// NewRenderer creates a Renderer reading from sig and driving out.
func NewRenderer(out gpio.Output, sig *Signal) *Renderer {
	return &Renderer{
		out:      out,
		sig:      sig,
		patterns: defaultPatterns,
		hold:     defaultHold,
		current:  StatusConnecting,
	}
}

// Current returns the status the renderer is showing. Diagnostic only; the
// signal is the one true input.
func (r *Renderer) Current() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Renderer) setCurrent(s Status) {
	r.mu.Lock()
	r.current = s
	r.mu.Unlock()
}

// Run renders until ctx is cancelled, then blanks the LED.
// The initial status is Connecting: bringing the link up is the first thing
// the device does.
// Suspension points: phase timers and the signal wake channel.
func (r *Renderer) Run(ctx context.Context) {
	current := r.Current()
	last := current // last persistent status shown

	for ctx.Err() == nil {
		p := r.patterns[current]

		if p.Kind == kindPersistent {
			last = current
		}

		if p.Kind == kindHolding {
			// Holds are atomic: the outcome stays visible for the full
			// duration no matter what is signalled meanwhile. A persistent
			// task re-asserting its state must not erase a just-finished
			// outcome.
			r.renderHold(ctx, p)
			if v, ok := r.sig.TryTake(); ok {
				// Latest signal from during the hold wins.
				current = v
			} else {
				current = last
			}
			r.setCurrent(current)
			continue
		}

		// Persistent and plain transient patterns yield mid-phase to a new
		// signal so the device feels immediate.
		if v, ok := r.renderPreemptible(ctx, p); ok {
			current = v
			r.setCurrent(current)
			log.Printf("led: status %v", current)
		}
	}
	r.set(false)
}

// renderHold blinks p repeatedly for the full hold duration, consuming no
// signals.
func (r *Renderer) renderHold(ctx context.Context, p pattern) {
	deadline := time.Now().Add(r.hold)
	for ctx.Err() == nil && time.Now().Before(deadline) {
		r.set(true)
		if !sleep(ctx, p.On) {
			return
		}
		if p.Off > 0 {
			r.set(false)
			if !sleep(ctx, p.Off) {
				return
			}
		}
	}
}

// renderPreemptible blinks one on/off cycle of p, racing each phase timer
// against the signal. Returns the new status if one arrived mid-cycle.
func (r *Renderer) renderPreemptible(ctx context.Context, p pattern) (Status, bool) {
	phases := [2]struct {
		on  bool
		dur time.Duration
	}{{true, p.On}, {false, p.Off}}

	for _, ph := range phases {
		r.set(ph.on)
		timer := time.NewTimer(ph.dur)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, false
		case <-timer.C:
		case <-r.sig.Wake():
			timer.Stop()
			if v, ok := r.sig.TryTake(); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func (r *Renderer) set(on bool) {
	if err := r.out.Set(on); err != nil {
		log.Printf("led: set: %v", err)
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
