//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// Chip is not available on non-Linux platforms.
type Chip struct{}

// OpenChip returns an error on non-Linux platforms.
func OpenChip(name string) (*Chip, error) {
	return nil, errUnsupported
}

// Close is a no-op.
func (c *Chip) Close() error { return nil }

// Input is not implemented on non-Linux platforms.
func (c *Chip) Input(offset int) (*FakeInput, error) { return nil, errUnsupported }

// Output is not implemented on non-Linux platforms.
func (c *Chip) Output(offset int, initial bool) (*FakeOutput, error) { return nil, errUnsupported }

// OutputPort is not implemented on non-Linux platforms.
func (c *Chip) OutputPort(offsets []int) (*FakePort, error) { return nil, errUnsupported }

// InputPort is not implemented on non-Linux platforms.
func (c *Chip) InputPort(offsets []int) (*FakePort, error) { return nil, errUnsupported }
