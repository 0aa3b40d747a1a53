package lcd

import "strings"

// Screen is a fake Bus that emulates the controller's memory, so tests can
// read back what a 16x2 panel would show.
type Screen struct {
	ddram [128]byte
	cgram [64]byte
	addr  byte
	inCG  bool

	// Clears counts clear-display commands.
	Clears int

	// Commands contains every command byte received.
	Commands []byte

	// WriteError, if set, fails every transfer.
	WriteError error
}

// NewScreen returns a blank screen.
func NewScreen() *Screen {
	s := &Screen{}
	s.blank()
	return s
}

func (s *Screen) blank() {
	for i := range s.ddram {
		s.ddram[i] = ' '
	}
	s.addr = 0
	s.inCG = false
}

// WriteCommand interprets one controller instruction.
func (s *Screen) WriteCommand(b byte) error {
	if s.WriteError != nil {
		return s.WriteError
	}
	s.Commands = append(s.Commands, b)
	switch {
	case b&cmdSetDDRAM != 0:
		s.addr = b &^ cmdSetDDRAM
		s.inCG = false
	case b&cmdSetCGRAM != 0:
		s.addr = b & 0x3F
		s.inCG = true
	case b&0xF0 == cmdCursorLeft:
		// 0x10 moves left, 0x14 moves right; display shifts are not emulated.
		if b&0x08 == 0 {
			if b&0x04 == 0 {
				s.addr = (s.addr - 1) & 0x7F
			} else {
				s.addr = (s.addr + 1) & 0x7F
			}
		}
	case b == cmdHome || b == cmdHome|1:
		s.addr = 0
		s.inCG = false
	case b == cmdClear:
		s.Clears++
		s.blank()
	}
	return nil
}

// WriteData stores b at the address counter and advances it.
func (s *Screen) WriteData(b byte) error {
	if s.WriteError != nil {
		return s.WriteError
	}
	if s.inCG {
		s.cgram[s.addr&0x3F] = b
		s.addr = (s.addr + 1) & 0x3F
		return nil
	}
	s.ddram[s.addr&0x7F] = b
	s.addr = (s.addr + 1) & 0x7F
	return nil
}

// Line returns the 16 visible characters of row.
func (s *Screen) Line(row int) string {
	base := int(rowAddr[row])
	return string(s.ddram[base : base+Cols])
}

// Text returns both rows joined by a newline, trailing spaces trimmed.
func (s *Screen) Text() string {
	lines := make([]string, Rows)
	for r := range lines {
		lines[r] = strings.TrimRight(s.Line(r), " ")
	}
	return strings.Join(lines, "\n")
}

// Glyph returns the CGRAM pattern of slot index.
func (s *Screen) Glyph(index int) [8]byte {
	var g [8]byte
	copy(g[:], s.cgram[index*8:index*8+8])
	return g
}

// Cursor returns the current DDRAM row and column. Row is -1 if the
// address counter is outside the visible area.
func (s *Screen) Cursor() (row, col int) {
	for r, base := range rowAddr {
		if s.addr >= base && s.addr < base+Cols {
			return r, int(s.addr - base)
		}
	}
	return -1, 0
}
