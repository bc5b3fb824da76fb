package led

import "sync"

// Outcome guards a single operation's status reporting: every operation
// that begins ends with exactly one terminal report. Begin shows Busy;
// Success or Failure resolves the guard; a deferred Abandon reports Failure
// if the operation returned without resolving, so an early-return error
// path can never skip the report.
type Outcome struct {
	mu       sync.Mutex
	set      func(Status)
	resolved bool
}

// Begin reports Busy and returns the guard. Callers must defer Abandon at
// the creation site:
//
//	op := led.Begin(sig.Set)
//	defer op.Abandon()
//	...
//	op.Success()
func Begin(set func(Status)) *Outcome {
	set(StatusBusy)
	return &Outcome{set: set}
}

// Success reports a successful outcome. Only the first resolution wins.
func (o *Outcome) Success() { o.resolve(StatusSuccess) }

// Failure reports a failed outcome. Only the first resolution wins.
func (o *Outcome) Failure() { o.resolve(StatusFailure) }

// Abandon reports Failure unless the guard was already resolved.
func (o *Outcome) Abandon() { o.resolve(StatusFailure) }

func (o *Outcome) resolve(s Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.resolved {
		return
	}
	o.resolved = true
	o.set(s)
}
