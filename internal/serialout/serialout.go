// Package serialout writes the minute log to the serial line.
package serialout

import (
	"fmt"
	"io"
	"strconv"

	"go.bug.st/serial"

	"github.com/sweeney/temp-logger/internal/logic"
)

// DefaultBaud is the line speed the log terminal expects.
const DefaultBaud = 9600

// Writer formats values onto a byte stream. The first write error sticks:
// later writes are dropped and Err reports it.
type Writer struct {
	w   io.Writer
	err error
	buf []byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer.
func (s *Writer) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = fmt.Errorf("serial write: %w", err)
	}
	return n, s.err
}

// WriteByte sends a single byte.
func (s *Writer) WriteByte(c byte) error {
	_, err := s.Write([]byte{c})
	return err
}

// WriteString sends s verbatim.
func (s *Writer) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// WriteUint sends v in unsigned decimal.
func (s *Writer) WriteUint(v uint32) error {
	s.buf = strconv.AppendUint(s.buf[:0], uint64(v), 10)
	_, err := s.Write(s.buf)
	return err
}

// WriteFloat sends f with six fractional digits.
func (s *Writer) WriteFloat(f float64) error {
	s.buf = strconv.AppendFloat(s.buf[:0], f, 'f', 6, 64)
	_, err := s.Write(s.buf)
	return err
}

// WriteRecord sends one minute record:
//
//	" Temp: 38\xB0C @ 11:52:59 03/01/2026\n\r"
//	" Temp: 42\xB0C @ 11:52:59 03/01/2026 - OVER TEMP!\n\r"
//
// The year goes out unpadded.
func (s *Writer) WriteRecord(temp int, unit logic.Unit, c logic.ClockState, over bool) error {
	s.WriteString(" Temp: ")
	if temp < 0 {
		s.WriteByte('-')
		temp = -temp
	}
	s.WriteUint(uint32(temp))
	s.WriteByte(logic.DegreeByte)
	s.WriteString(string(unit) + " @ ")
	s.WriteString(logic.FormatTime(c) + " ")
	s.WriteString(fmt.Sprintf("%02d/%02d/", c.Day, c.Month))
	s.WriteUint(uint32(c.Year))
	if over {
		s.WriteString(" - OVER TEMP!")
	}
	s.WriteString("\n\r")
	return s.err
}

// Err returns the first write error, if any.
func (s *Writer) Err() error {
	return s.err
}

// Open opens name at baud, 8N1.
func Open(name string, baud int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return port, nil
}
