// Package notify queues short notification messages and delivers them to a
// remote service one at a time.
package notify

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

const (
	// DefaultCapacity bounds the mailbox. Producers never block: messages
	// beyond capacity are dropped and logged.
	DefaultCapacity = 8

	// MaxMessageLen bounds a single message's text in bytes.
	MaxMessageLen = 256
)

// Error taxonomy at the task boundary. Detail is logged where it happens;
// callers only ever distinguish these.
var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrRequest          = errors.New("request failed")
	ErrResponse         = errors.New("bad response")
)

// Message is one queued notification. The text is copied on enqueue; the
// queue owns it from then on.
type Message struct {
	Text       string
	EnqueuedAt time.Time
}

// Sender performs one delivery attempt against the remote service.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Queue is a bounded FIFO mailbox: many producers, one consumer.
type Queue struct {
	ch  chan Message
	now func() time.Time

	// onDrop, when set, is called once per dropped message.
	onDrop func()
}

// NewQueue creates a Queue. capacity <= 0 selects DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		ch:  make(chan Message, capacity),
		now: time.Now,
	}
}

// OnDrop registers a hook observing dropped messages. Must be set before
// producers start.
func (q *Queue) OnDrop(fn func()) { q.onDrop = fn }

// Enqueue copies text into the mailbox without blocking and reports whether
// the message was accepted. A full mailbox drops the message; the caller is
// never held up.
func (q *Queue) Enqueue(text string) bool {
	if len(text) > MaxMessageLen {
		text = text[:MaxMessageLen]
	}
	msg := Message{
		// Clone detaches the text from whatever buffer the caller sliced
		// it out of.
		Text:       strings.Clone(text),
		EnqueuedAt: q.now(),
	}

	select {
	case q.ch <- msg:
		return true
	default:
		log.Printf("notify: queue full, dropping message")
		if q.onDrop != nil {
			q.onDrop()
		}
		return false
	}
}

// Messages exposes the consumer side. Only the sender worker reads it.
func (q *Queue) Messages() <-chan Message { return q.ch }

// Len reports how many messages are waiting.
func (q *Queue) Len() int { return len(q.ch) }
