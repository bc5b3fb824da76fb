// Package led renders device status as blink patterns on a single LED.
//
// Statuses come in three kinds. Persistent statuses reflect an ongoing
// condition and are remembered: after a holding status finishes, the
// indicator reverts to the last persistent status it showed. Holding
// statuses reflect a one-shot outcome, display for a fixed duration, and
// ignore new signals until the hold ends. Plain transient statuses display
// until something else is set.
package led

import "time"

// Status is the closed set of indicator states.
type Status int

const (
	// StatusIdle blinks briefly: up and running, nothing happening.
	StatusIdle Status = iota
	// StatusConnecting blinks patiently while the link comes up.
	StatusConnecting
	// StatusBusy blinks rapidly while an operation is in flight.
	StatusBusy
	// StatusSuccess holds a solid light after a successful operation.
	StatusSuccess
	// StatusFailure holds a frantic blink after a failed operation.
	StatusFailure
	// StatusAlarm blinks violently until explicitly replaced.
	StatusAlarm
)

var statusNames = map[Status]string{
	StatusIdle:       "IDLE",
	StatusConnecting: "CONNECTING",
	StatusBusy:       "BUSY",
	StatusSuccess:    "SUCCESS",
	StatusFailure:    "FAILURE",
	StatusAlarm:      "ALARM",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// kind classifies how the renderer treats a status.
type kind int

const (
	// kindPersistent statuses are remembered as the revert target.
	kindPersistent kind = iota
	// kindTransient statuses show until replaced.
	kindTransient
	// kindHolding statuses show for a fixed hold, then revert.
	kindHolding
)

// pattern is one two-phase blink cycle.
type pattern struct {
	On   time.Duration
	Off  time.Duration
	Kind kind
}

// defaultHold is how long Success and Failure stay visible.
const defaultHold = 3 * time.Second

var defaultPatterns = map[Status]pattern{
	StatusIdle:       {On: 30 * time.Millisecond, Off: 3 * time.Second, Kind: kindPersistent},
	StatusConnecting: {On: 500 * time.Millisecond, Off: time.Second, Kind: kindPersistent},
	StatusBusy:       {On: 100 * time.Millisecond, Off: 100 * time.Millisecond, Kind: kindTransient},
	StatusAlarm:      {On: 30 * time.Millisecond, Off: 70 * time.Millisecond, Kind: kindTransient},
	StatusSuccess:    {On: 3 * time.Second, Off: 0, Kind: kindHolding},
	StatusFailure:    {On: 30 * time.Millisecond, Off: 70 * time.Millisecond, Kind: kindHolding},
}
