package sensor

import (
	"errors"

	"github.com/sweeney/temp-logger/internal/logic"
)

// FakeADC returns scripted samples. The last sample repeats.
type FakeADC struct {
	Samples   []uint16
	ReadError error
	Reads     int
}

// ErrNoSamples is returned when a FakeADC has nothing scripted.
var ErrNoSamples = errors.New("sensor: fake adc has no samples")

// Read returns the next sample.
func (f *FakeADC) Read() (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, ErrNoSamples
	}
	i := f.Reads
	if i >= len(f.Samples) {
		i = len(f.Samples) - 1
	}
	f.Reads++
	return f.Samples[i], nil
}

// RawFor returns the 10-bit sample an LM35 at celsius produces with a 3.3 V
// reference, rounded up so Convert gives back celsius.
func RawFor(celsius int) uint16 {
	full := float64(uint32(1)<<DefaultBits - 1)
	raw := uint16(float64(celsius) / 100 / DefaultVRef * full)
	for Convert(raw, DefaultVRef, DefaultBits, logic.Celsius) < celsius {
		raw++
	}
	return raw
}
