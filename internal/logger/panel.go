package logger

import "github.com/sweeney/temp-logger/internal/lcd"

// panel batches LCD writes and keeps the first error.
type panel struct {
	d   lcd.Display
	err error
}

func (l *Logger) panel() *panel {
	return &panel{d: l.hw.Display}
}

func (p *panel) clear() {
	if p.err == nil {
		p.err = p.d.Clear()
	}
}

func (p *panel) at(row, col int, s string) {
	if p.err == nil {
		p.err = p.d.SetCursor(row, col)
	}
	p.print(s)
}

func (p *panel) print(s string) {
	if p.err == nil && s != "" {
		p.err = p.d.Print(s)
	}
}

func (p *panel) char(c byte) {
	if p.err == nil {
		p.err = p.d.WriteByte(c)
	}
}

func (p *panel) left() {
	if p.err == nil {
		p.err = p.d.CursorLeft()
	}
}
