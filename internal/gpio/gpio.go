// Package gpio provides access to the button input and LED output lines.
// The real implementation uses Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import "time"

// Edge is a single transition observed on the button line.
type Edge struct {
	// Falling reports the logical direction: true when the line was
	// asserted (button pressed), false when it returned to released.
	Falling bool

	// Time is when the edge was observed.
	Time time.Time
}

// Input delivers edges and level reads from the button line.
type Input interface {
	// Events returns the edge stream. Edges may be dropped if the consumer
	// lags; consumers must re-sample with Value rather than count edges.
	Events() <-chan Edge

	// Value returns the logical level: true = pressed.
	// The raw line is active-low; the inversion happens here.
	Value() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Output drives the LED line.
type Output interface {
	// Set drives the logical level: true = lit.
	// The raw line is active-low; the inversion happens here.
	Set(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton = 9
	DefaultPinLED    = 8
)

// DefaultChip is the GPIO character device the lines are requested from.
const DefaultChip = "gpiochip0"
