package internal_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/button-notify/internal/button"
	"github.com/sweeney/button-notify/internal/gpio"
	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/notify"
	"github.com/sweeney/button-notify/internal/wifi"
)

// harness wires the real pipeline with fake hardware and a fake remote:
// button -> click loop -> queue -> worker -> sender, with the indicator
// statuses recorded along the way.
type harness struct {
	in     *gpio.FakeInput
	link   *wifi.FakeLink
	sender *notify.FakeSender
	queue  *notify.Queue

	mu       sync.Mutex
	statuses []led.Status
}

func startHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		in:     gpio.NewFakeInput(),
		link:   wifi.NewFakeLink(),
		sender: notify.NewFakeSender(),
		queue:  notify.NewQueue(4),
	}

	src := button.New(h.in, 5*time.Millisecond)
	worker := notify.NewWorker(h.queue, h.link, h.sender, h.set)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, run := range []func(context.Context){src.Run, worker.Run} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}

	// The click loop from the daemon's main: every debounced click becomes
	// one queued message.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			if err := src.WaitForClick(ctx); err != nil {
				return
			}
			h.queue.Enqueue(fmt.Sprintf("button pressed #%d", i))
		}
	}()

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	return h
}

func (h *harness) set(s led.Status) {
	h.mu.Lock()
	h.statuses = append(h.statuses, s)
	h.mu.Unlock()
}

func (h *harness) statusLog() []led.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]led.Status, len(h.statuses))
	copy(out, h.statuses)
	return out
}

func (h *harness) click(t *testing.T) {
	t.Helper()
	h.in.Press()
	time.Sleep(30 * time.Millisecond)
	h.in.Release()
	time.Sleep(30 * time.Millisecond)
}

func (h *harness) waitSent(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := h.sender.Sent(); len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("never saw %d deliveries, got %v", n, h.sender.Sent())
	return nil
}

func TestClickToDelivery(t *testing.T) {
	h := startHarness(t)
	h.link.SetUp("10.0.0.2")

	h.click(t)

	sent := h.waitSent(t, 1)
	if sent[0] != "button pressed #0" {
		t.Errorf("delivered %q", sent[0])
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		log := h.statusLog()
		if len(log) >= 2 {
			if log[0] != led.StatusBusy || log[1] != led.StatusSuccess {
				t.Fatalf("statuses: got %v, want [BUSY SUCCESS]", log)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("delivery outcome never reported, statuses %v", h.statusLog())
}

func TestClicksQueueWhileOffline(t *testing.T) {
	h := startHarness(t)

	// Link down: clicks accumulate instead of being lost.
	h.click(t)
	h.click(t)
	h.click(t)

	if got := h.sender.Sent(); len(got) != 0 {
		t.Fatalf("delivered %v while offline", got)
	}

	h.link.SetUp("10.0.0.2")
	sent := h.waitSent(t, 3)
	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("button pressed #%d", i)
		if sent[i] != want {
			t.Fatalf("order: got %v", sent)
		}
	}
}

func TestBounceNeverReachesTheWire(t *testing.T) {
	h := startHarness(t)
	h.link.SetUp("10.0.0.2")

	h.in.Bounce()
	h.in.Bounce()
	time.Sleep(50 * time.Millisecond)

	if got := h.sender.Sent(); len(got) != 0 {
		t.Errorf("bounces were delivered: %v", got)
	}

	// A real press afterwards still goes through.
	h.click(t)
	h.waitSent(t, 1)
}
