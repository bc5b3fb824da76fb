//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealInput is not available on non-Linux platforms.
type RealInput struct{}

// NewRealInput returns an error on non-Linux platforms.
func NewRealInput(chipName string, pin int) (*RealInput, error) {
	return nil, errUnsupported
}

// Events is not implemented on non-Linux platforms.
func (in *RealInput) Events() <-chan Edge { return nil }

// Value is not implemented on non-Linux platforms.
func (in *RealInput) Value() (bool, error) { return false, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (in *RealInput) Close() error { return nil }

// RealOutput is not available on non-Linux platforms.
type RealOutput struct{}

// NewRealOutput returns an error on non-Linux platforms.
func NewRealOutput(chipName string, pin int) (*RealOutput, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (out *RealOutput) Set(on bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (out *RealOutput) Close() error { return nil }
