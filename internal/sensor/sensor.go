// Package sensor converts raw ADC samples from an LM35 into whole degrees.
package sensor

import (
	"fmt"

	"github.com/sweeney/temp-logger/internal/logic"
)

// ADC returns one raw conversion.
type ADC interface {
	Read() (uint16, error)
}

// Thermometer reads a temperature in whole degrees.
type Thermometer interface {
	Read(unit logic.Unit) (int, error)
}

// Defaults match the original board: 3.3 V reference, 10-bit converter.
const (
	DefaultVRef = 3.3
	DefaultBits = 10
)

// LM35 is a 10 mV/°C analogue sensor on an ADC channel.
type LM35 struct {
	ADC  ADC
	VRef float64 // reference voltage in volts
	Bits int     // converter resolution
}

// NewLM35 returns an LM35 with the default reference and resolution.
func NewLM35(adc ADC) *LM35 {
	return &LM35{ADC: adc, VRef: DefaultVRef, Bits: DefaultBits}
}

// Read samples the ADC once and converts. Fractions are truncated toward zero.
func (s *LM35) Read(unit logic.Unit) (int, error) {
	raw, err := s.ADC.Read()
	if err != nil {
		return 0, fmt.Errorf("sensor read: %w", err)
	}
	return Convert(raw, s.VRef, s.Bits, unit), nil
}

// Convert turns a raw sample into degrees of unit.
func Convert(raw uint16, vref float64, bits int, unit logic.Unit) int {
	full := float64(uint32(1)<<uint(bits) - 1)
	volts := float64(raw) * vref / full
	c := volts * 100
	if unit == logic.Fahrenheit {
		return int(c*9/5 + 32)
	}
	return int(c)
}
