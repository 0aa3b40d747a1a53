// Package gpio provides digital line access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// InputPin reads the electrical level of one line (true = high).
type InputPin interface {
	Read() (bool, error)
	Close() error
}

// OutputPin drives one line.
type OutputPin interface {
	Set(high bool) error
	Close() error
}

// OutputPort drives a group of lines at once. Bit i maps to line i.
type OutputPort interface {
	Write(bits uint32) error
	Close() error
}

// InputPort reads a group of lines at once. Bit i maps to line i.
type InputPort interface {
	Read() (uint32, error)
	Close() error
}

// Switch is a push button wired to ground with a pull-up.
type Switch struct {
	Pin InputPin
}

// Pressed inverts the raw level: low = pressed.
func (s Switch) Pressed() (bool, error) {
	high, err := s.Pin.Read()
	if err != nil {
		return false, err
	}
	return !high, nil
}

// Default line offsets on gpiochip0 (BCM numbering).
const (
	DefaultChip      = "gpiochip0"
	DefaultPinSwitch = 4
	DefaultPinBuzzer = 25
)

// DefaultLCDData are D0-D7 of the character LCD.
var DefaultLCDData = []int{16, 17, 18, 19, 20, 21, 22, 23}

// Default LCD control lines.
const (
	DefaultPinLCDRS = 12
	DefaultPinLCDRW = 13
	DefaultPinLCDEN = 14
)

// DefaultKeypadRows and DefaultKeypadCols are the 4x4 matrix lines.
var (
	DefaultKeypadRows = []int{5, 6, 7, 8}
	DefaultKeypadCols = []int{9, 10, 11, 26}
)
