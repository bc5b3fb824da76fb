package status

import (
	"testing"
	"time"

	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/wifi"
)

func newTestTracker() *Tracker {
	return NewTracker(time.Now().Add(-time.Minute), Config{
		ButtonPin: 9,
		LEDPin:    8,
		Interface: "wlan0",
		Transport: "telegram",
		QueueCap:  8,
		HTTPAddr:  ":80",
	})
}

func TestTrackerInitialSnapshot(t *testing.T) {
	tr := newTestTracker()
	snap := tr.Snapshot()

	if snap.Indicator != led.StatusConnecting {
		t.Errorf("indicator: got %v, want CONNECTING", snap.Indicator)
	}
	if snap.Wifi != wifi.StateNotStarted {
		t.Errorf("wifi: got %v, want NOT_STARTED", snap.Wifi)
	}
	if snap.Counts != (Counts{}) {
		t.Errorf("counts should start zeroed, got %+v", snap.Counts)
	}
	if snap.Uptime() < 59*time.Second {
		t.Errorf("uptime: got %v, want about a minute", snap.Uptime())
	}
	if snap.Config.ButtonPin != 9 || snap.Config.Transport != "telegram" {
		t.Errorf("config not carried: %+v", snap.Config)
	}
}

func TestTrackerSetters(t *testing.T) {
	tr := newTestTracker()

	tr.SetIndicator(led.StatusBusy)
	tr.SetWifi(wifi.StateConnected)
	tr.SetLink(true, "10.0.0.5")

	snap := tr.Snapshot()
	if snap.Indicator != led.StatusBusy {
		t.Errorf("indicator: got %v", snap.Indicator)
	}
	if snap.Wifi != wifi.StateConnected {
		t.Errorf("wifi: got %v", snap.Wifi)
	}
	if !snap.LinkUp || snap.LinkIP != "10.0.0.5" {
		t.Errorf("link: got up=%v ip=%q", snap.LinkUp, snap.LinkIP)
	}
}

func TestTrackerCounts(t *testing.T) {
	tr := newTestTracker()

	tr.CountClick()
	tr.CountClick()
	tr.CountEnqueued()
	tr.CountDropped()
	tr.CountDelivery(true)
	tr.CountDelivery(true)
	tr.CountDelivery(false)

	got := tr.Snapshot().Counts
	want := Counts{Clicks: 2, Enqueued: 1, Dropped: 1, Delivered: 2, Failed: 1}
	if got != want {
		t.Errorf("counts: got %+v, want %+v", got, want)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	tr := newTestTracker()
	before := tr.Snapshot()
	tr.CountClick()

	if before.Counts.Clicks != 0 {
		t.Error("snapshot mutated after a later write")
	}
	if after := tr.Snapshot(); after.Counts.Clicks != 1 {
		t.Errorf("later snapshot: got %d clicks, want 1", after.Counts.Clicks)
	}
}
