// Package lcd drives a 16x2 HD44780-compatible character display.
package lcd

import (
	"fmt"
	"time"
)

// Display is what the logger needs from a character LCD.
type Display interface {
	Clear() error
	// SetCursor moves the write position. Row and column are zero-based.
	SetCursor(row, col int) error
	Print(s string) error
	WriteByte(c byte) error
	// CursorLeft moves the write position back one column.
	CursorLeft() error
	// DefineGlyph loads a 5x8 custom character into CGRAM slot index (0-7).
	// Writing byte index then shows it.
	DefineGlyph(index int, pattern [8]byte) error
}

// Bus moves bytes into the controller.
type Bus interface {
	WriteCommand(b byte) error
	WriteData(b byte) error
}

// Geometry.
const (
	Rows = 2
	Cols = 16
)

// rowAddr is the DDRAM address of the first column of each row.
var rowAddr = [Rows]byte{0x00, 0x40}

// Commands.
const (
	cmdClear       = 0x01
	cmdHome        = 0x02
	cmdEntryInc    = 0x06
	cmdDisplayOn   = 0x0F // display, cursor and blink on
	cmdCursorLeft  = 0x10
	cmdFunction8   = 0x30
	cmdFunction8x2 = 0x38 // 8-bit, 2 lines, 5x8 font
	cmdSetCGRAM    = 0x40
	cmdSetDDRAM    = 0x80
)

// DegreeGlyph is a small raised circle.
var DegreeGlyph = [8]byte{0x07, 0x05, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00}

// DegreeSlot is the CGRAM slot the degree glyph is loaded into.
const DegreeSlot = 1

// HD44780 implements Display on top of a Bus.
type HD44780 struct {
	bus Bus
	// Sleep waits out slow commands. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// New wraps a bus. Call Init once after power-up.
func New(bus Bus) *HD44780 {
	return &HD44780{bus: bus, Sleep: time.Sleep}
}

// Init runs the 8-bit power-on sequence.
func (d *HD44780) Init() error {
	d.Sleep(20 * time.Millisecond)
	steps := []struct {
		cmd   byte
		delay time.Duration
	}{
		{cmdFunction8, 5 * time.Millisecond},
		{cmdFunction8, time.Millisecond},
		{cmdFunction8, time.Millisecond},
		{cmdFunction8x2, 0},
		{cmdCursorLeft, 0},
		{cmdClear, 2 * time.Millisecond},
		{cmdEntryInc, 0},
		{cmdDisplayOn, 0},
	}
	for _, s := range steps {
		if err := d.bus.WriteCommand(s.cmd); err != nil {
			return fmt.Errorf("lcd init %#02x: %w", s.cmd, err)
		}
		if s.delay > 0 {
			d.Sleep(s.delay)
		}
	}
	return nil
}

// Clear blanks the display and homes the cursor.
func (d *HD44780) Clear() error {
	if err := d.bus.WriteCommand(cmdClear); err != nil {
		return err
	}
	d.Sleep(2 * time.Millisecond)
	return nil
}

// SetCursor moves to (row, col).
func (d *HD44780) SetCursor(row, col int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return fmt.Errorf("lcd: cursor (%d,%d) out of range", row, col)
	}
	return d.bus.WriteCommand(cmdSetDDRAM | (rowAddr[row] + byte(col)))
}

// Print writes s byte by byte at the cursor.
func (d *HD44780) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.bus.WriteData(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte writes one character code.
func (d *HD44780) WriteByte(c byte) error {
	return d.bus.WriteData(c)
}

// CursorLeft moves the cursor back one position.
func (d *HD44780) CursorLeft() error {
	return d.bus.WriteCommand(cmdCursorLeft)
}

// DefineGlyph writes the pattern into CGRAM and returns the address counter
// to the top-left of DDRAM.
func (d *HD44780) DefineGlyph(index int, pattern [8]byte) error {
	if index < 0 || index > 7 {
		return fmt.Errorf("lcd: glyph slot %d out of range", index)
	}
	if err := d.bus.WriteCommand(cmdSetCGRAM | byte(index)<<3); err != nil {
		return err
	}
	for _, b := range pattern {
		if err := d.bus.WriteData(b); err != nil {
			return err
		}
	}
	return d.bus.WriteCommand(cmdSetDDRAM)
}
