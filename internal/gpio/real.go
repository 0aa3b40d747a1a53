//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Chip hands out lines from one Linux GPIO character device.
type Chip struct {
	chip *gpiocdev.Chip
}

// OpenChip opens a GPIO chip by name, e.g. "gpiochip0".
func OpenChip(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &Chip{chip: chip}, nil
}

// Close releases the chip. Lines must be closed separately.
func (c *Chip) Close() error {
	return c.chip.Close()
}

// Input requests an input line with pull-up. The switch and keypad columns
// are pulled to ground when active, so idle reads high.
func (c *Chip) Input(offset int) (*RealInput, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request input %d: %w", offset, err)
	}
	return &RealInput{line: l}, nil
}

// Output requests an output line driven to initial.
func (c *Chip) Output(offset int, initial bool) (*RealOutput, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(boolToInt(initial)))
	if err != nil {
		return nil, fmt.Errorf("request output %d: %w", offset, err)
	}
	return &RealOutput{line: l}, nil
}

// OutputPort requests a group of output lines, all driven low.
func (c *Chip) OutputPort(offsets []int) (*RealOutputPort, error) {
	l, err := c.chip.RequestLines(offsets, gpiocdev.AsOutput(make([]int, len(offsets))...))
	if err != nil {
		return nil, fmt.Errorf("request outputs %v: %w", offsets, err)
	}
	return &RealOutputPort{lines: l, n: len(offsets)}, nil
}

// InputPort requests a group of input lines with pull-ups.
func (c *Chip) InputPort(offsets []int) (*RealInputPort, error) {
	l, err := c.chip.RequestLines(offsets, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request inputs %v: %w", offsets, err)
	}
	return &RealInputPort{lines: l, n: len(offsets)}, nil
}

// RealInput is a single input line.
type RealInput struct {
	line *gpiocdev.Line
}

// Read returns the line level.
func (r *RealInput) Read() (bool, error) {
	v, err := r.line.Value()
	if err != nil {
		return false, fmt.Errorf("read line: %w", err)
	}
	return v != 0, nil
}

// Close releases the line.
func (r *RealInput) Close() error {
	return r.line.Close()
}

// RealOutput is a single output line.
type RealOutput struct {
	line *gpiocdev.Line
}

// Set drives the line.
func (r *RealOutput) Set(high bool) error {
	if err := r.line.SetValue(boolToInt(high)); err != nil {
		return fmt.Errorf("set line: %w", err)
	}
	return nil
}

// Close drives the line low, then returns it to an input with pull-down
// so a buzzer cannot be left sounding across a restart.
func (r *RealOutput) Close() error {
	var errs []error
	if err := r.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("drive low: %w", err))
	}
	if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure: %w", err))
	}
	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutputPort drives a group of lines.
type RealOutputPort struct {
	lines *gpiocdev.Lines
	n     int
}

// Write drives line i to bit i of bits.
func (r *RealOutputPort) Write(bits uint32) error {
	vals := make([]int, r.n)
	for i := range vals {
		vals[i] = int(bits>>uint(i)) & 1
	}
	if err := r.lines.SetValues(vals); err != nil {
		return fmt.Errorf("set lines: %w", err)
	}
	return nil
}

// Close releases the lines.
func (r *RealOutputPort) Close() error {
	return r.lines.Close()
}

// RealInputPort reads a group of lines.
type RealInputPort struct {
	lines *gpiocdev.Lines
	n     int
}

// Read packs line i into bit i.
func (r *RealInputPort) Read() (uint32, error) {
	vals := make([]int, r.n)
	if err := r.lines.Values(vals); err != nil {
		return 0, fmt.Errorf("read lines: %w", err)
	}
	var bits uint32
	for i, v := range vals {
		if v != 0 {
			bits |= 1 << uint(i)
		}
	}
	return bits, nil
}

// Close releases the lines.
func (r *RealInputPort) Close() error {
	return r.lines.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
