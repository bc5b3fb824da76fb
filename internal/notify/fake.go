package notify

import (
	"context"
	"sync"
)

// FakeSender records delivery attempts for test assertions.
type FakeSender struct {
	mu sync.Mutex

	// sent contains the texts of all delivery attempts.
	sent []string

	// SendErr, if set, will be returned by Send.
	SendErr error
}

// NewFakeSender creates a FakeSender.
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send records the text and returns the scripted error, if any.
func (f *FakeSender) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return f.SendErr
}

// Sent returns a copy of all recorded texts.
func (f *FakeSender) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}
