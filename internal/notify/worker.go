package notify

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/wifi"
)

// Worker drains the queue serially: one message in flight at a time,
// delivered only once the link reports an IP configuration. Serializing
// delivery trades throughput for bounded resource use and simple ordering.
type Worker struct {
	queue  *Queue
	link   wifi.Link
	sender Sender
	set    func(led.Status)

	// MaxAge, when positive, drops messages older than this at delivery
	// time instead of sending them. Zero keeps every accepted message until
	// the link comes back, however long that takes.
	MaxAge time.Duration

	// onResult, when set, observes each delivery outcome.
	onResult func(ok bool)

	now func() time.Time
}

// NewWorker creates a Worker. set is the status-indicator write used for
// Busy and the terminal outcome.
func NewWorker(queue *Queue, link wifi.Link, sender Sender, set func(led.Status)) *Worker {
	return &Worker{
		queue:  queue,
		link:   link,
		sender: sender,
		set:    set,
		now:    time.Now,
	}
}

// OnResult registers a hook observing delivery outcomes. Must be set before
// Run.
func (w *Worker) OnResult(fn func(ok bool)) { w.onResult = fn }

// Run consumes messages until ctx is cancelled.
// Suspension points: the queue receive, the link-configured wait, and the
// send itself.
func (w *Worker) Run(ctx context.Context) {
	for {
		var msg Message
		select {
		case <-ctx.Done():
			return
		case msg = <-w.queue.Messages():
		}

		// The in-flight message is held, not dropped, while the link is
		// down. There is deliberately no timeout here: reliability over
		// liveness for the single held item.
		if err := w.link.WaitConfigured(ctx); err != nil {
			return
		}

		if w.MaxAge > 0 {
			if age := w.now().Sub(msg.EnqueuedAt); age > w.MaxAge {
				log.Printf("notify: dropping stale message (age %v)", age.Round(time.Second))
				continue
			}
		}

		w.deliver(ctx, msg)
	}
}

// deliver performs one attempt. The outcome guard makes the terminal report
// unforgettable: any path out of this function resolves it exactly once.
func (w *Worker) deliver(ctx context.Context, msg Message) {
	op := led.Begin(w.set)
	defer op.Abandon()

	if err := w.sender.Send(ctx, msg.Text); err != nil {
		log.Printf("notify: send failed: %v", err)
		op.Failure()
		w.result(false)
		return
	}

	log.Printf("notify: message sent")
	op.Success()
	w.result(true)
}

func (w *Worker) result(ok bool) {
	if w.onResult != nil {
		w.onResult(ok)
	}
}
