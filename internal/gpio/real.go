//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// eventBuffer sizes the edge channel. A full buffer drops edges; the
// debouncer re-samples levels and tolerates missing edges.
const eventBuffer = 16

// RealInput reads the button line from actual hardware.
type RealInput struct {
	chip   *gpiocdev.Chip
	line   *gpiocdev.Line
	events chan Edge
}

// NewRealInput requests the button line as input with pull-up and edge
// detection. The line idles high and is pulled low while pressed.
func NewRealInput(chipName string, pin int) (*RealInput, error) {
	in := &RealInput{events: make(chan Edge, eventBuffer)}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(in.handleEvent),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}

	in.chip = chip
	in.line = line
	return in, nil
}

// handleEvent runs on the gpiocdev event goroutine.
func (in *RealInput) handleEvent(evt gpiocdev.LineEvent) {
	edge := Edge{
		// Raw falling = pressed on the active-low line.
		Falling: evt.Type == gpiocdev.LineEventFallingEdge,
		Time:    time.Now(),
	}
	select {
	case in.events <- edge:
	default:
	}
}

// Events returns the edge stream.
func (in *RealInput) Events() <-chan Edge { return in.events }

// Value returns true while the button is held.
// Inverts raw GPIO: raw 0 = pressed on the active-low line.
func (in *RealInput) Value() (bool, error) {
	raw, err := in.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return raw == 0, nil
}

// Close releases the line and chip.
func (in *RealInput) Close() error {
	var errs []error
	if in.line != nil {
		if err := in.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button line: %w", err))
		}
	}
	if in.chip != nil {
		if err := in.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutput drives the LED line on actual hardware.
type RealOutput struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealOutput requests the LED line as output, initially dark.
// The line is active-low: raw 1 = dark, raw 0 = lit.
func NewRealOutput(chipName string, pin int) (*RealOutput, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(1))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request led pin %d: %w", pin, err)
	}

	return &RealOutput{chip: chip, line: line}, nil
}

// Set drives the LED: true = lit (raw low).
func (out *RealOutput) Set(on bool) error {
	raw := 1
	if on {
		raw = 0
	}
	if err := out.line.SetValue(raw); err != nil {
		return fmt.Errorf("set led pin: %w", err)
	}
	return nil
}

// Close leaves the LED dark and releases the line and chip.
func (out *RealOutput) Close() error {
	var errs []error
	if out.line != nil {
		if err := out.line.SetValue(1); err != nil {
			errs = append(errs, fmt.Errorf("blank led: %w", err))
		}
		if err := out.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led line: %w", err))
		}
	}
	if out.chip != nil {
		if err := out.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
