package lcd

import (
	"fmt"
	"time"

	"github.com/sweeney/temp-logger/internal/gpio"
)

// ParallelBus is the 8-bit parallel interface: RS selects command (low) or
// data (high), RW is held low, and a high-to-low edge on EN latches D0-D7.
type ParallelBus struct {
	RS, RW, EN gpio.OutputPin
	Data       gpio.OutputPort

	// Sleep holds EN and waits for the controller. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Timing for one transfer. Most commands finish within 37µs.
const (
	enablePulse = time.Microsecond
	execTime    = 50 * time.Microsecond
)

// WriteCommand sends b with RS low.
func (p *ParallelBus) WriteCommand(b byte) error {
	return p.write(false, b)
}

// WriteData sends b with RS high.
func (p *ParallelBus) WriteData(b byte) error {
	return p.write(true, b)
}

func (p *ParallelBus) write(rs bool, b byte) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	if err := p.RS.Set(rs); err != nil {
		return fmt.Errorf("lcd rs: %w", err)
	}
	if err := p.RW.Set(false); err != nil {
		return fmt.Errorf("lcd rw: %w", err)
	}
	if err := p.Data.Write(uint32(b)); err != nil {
		return fmt.Errorf("lcd data: %w", err)
	}
	if err := p.EN.Set(true); err != nil {
		return fmt.Errorf("lcd en: %w", err)
	}
	sleep(enablePulse)
	if err := p.EN.Set(false); err != nil {
		return fmt.Errorf("lcd en: %w", err)
	}
	sleep(execTime)
	return nil
}

// Close releases every line, returning all errors.
func (p *ParallelBus) Close() error {
	var errs []error
	for _, c := range []interface{ Close() error }{p.RS, p.RW, p.EN, p.Data} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
