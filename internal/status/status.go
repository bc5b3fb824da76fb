// Package status provides a thread-safe status tracker for the daemon.
// The coordination goroutines write it through small setter hooks; the HTTP
// handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/wifi"
)

// Config contains daemon configuration for display.
type Config struct {
	ButtonPin int
	LEDPin    int
	Interface string
	Transport string
	QueueCap  int
	HTTPAddr  string
}

// Counts tracks message totals since startup.
type Counts struct {
	Clicks    int
	Enqueued  int
	Dropped   int
	Delivered int
	Failed    int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	// Indicator is the most recently requested indicator status. The LED
	// itself is authoritative; this is diagnostic.
	Indicator led.Status
	Wifi      wifi.ConnState
	LinkUp    bool
	LinkIP    string
	Counts    Counts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Indicator: led.StatusConnecting,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetIndicator records the most recently requested indicator status.
func (t *Tracker) SetIndicator(s led.Status) {
	t.mu.Lock()
	t.snap.Indicator = s
	t.mu.Unlock()
}

// SetWifi records the connection supervisor's state.
func (t *Tracker) SetWifi(s wifi.ConnState) {
	t.mu.Lock()
	t.snap.Wifi = s
	t.mu.Unlock()
}

// SetLink records IP-layer state.
func (t *Tracker) SetLink(up bool, ip string) {
	t.mu.Lock()
	t.snap.LinkUp = up
	t.snap.LinkIP = ip
	t.mu.Unlock()
}

// CountClick increments the click counter.
func (t *Tracker) CountClick() {
	t.mu.Lock()
	t.snap.Counts.Clicks++
	t.mu.Unlock()
}

// CountEnqueued increments the accepted-message counter.
func (t *Tracker) CountEnqueued() {
	t.mu.Lock()
	t.snap.Counts.Enqueued++
	t.mu.Unlock()
}

// CountDropped increments the dropped-message counter.
func (t *Tracker) CountDropped() {
	t.mu.Lock()
	t.snap.Counts.Dropped++
	t.mu.Unlock()
}

// CountDelivery increments the delivered or failed counter.
func (t *Tracker) CountDelivery(ok bool) {
	t.mu.Lock()
	if ok {
		t.snap.Counts.Delivered++
	} else {
		t.snap.Counts.Failed++
	}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
