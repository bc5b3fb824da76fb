package wifi

import (
	"context"
	"log"

	"github.com/sweeney/button-notify/internal/led"
)

// Reporter mirrors IP-layer configuration onto the status indicator:
// Connecting while waiting for an address, Idle once one is up. It loops
// forever reacting to config up/down transitions.
type Reporter struct {
	link Link
	set  func(led.Status)

	// onChange, when set, observes every up/down transition.
	onChange func(up bool, ip string)
}

// NewReporter creates a Reporter reading from link.
func NewReporter(link Link, set func(led.Status)) *Reporter {
	return &Reporter{link: link, set: set}
}

// OnChange registers a hook observing link transitions. Must be set before
// Run.
func (r *Reporter) OnChange(fn func(up bool, ip string)) { r.onChange = fn }

// Run reports until ctx is cancelled.
// Suspension points: the link's WaitConfigured and WaitUnconfigured.
func (r *Reporter) Run(ctx context.Context) {
	for ctx.Err() == nil {
		log.Printf("net: waiting for configuration")
		r.set(led.StatusConnecting)
		r.change(false, "")
		if err := r.link.WaitConfigured(ctx); err != nil {
			return
		}

		addr, ok := r.link.IPv4()
		if !ok {
			continue
		}
		log.Printf("net: up, ip=%s", addr)
		r.set(led.StatusIdle)
		r.change(true, addr)

		if err := r.link.WaitUnconfigured(ctx); err != nil {
			return
		}
		log.Printf("net: down")
	}
}

func (r *Reporter) change(up bool, ip string) {
	if r.onChange != nil {
		r.onChange(up, ip)
	}
}
