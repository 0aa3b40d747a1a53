package rtc

import (
	"time"

	"github.com/sweeney/temp-logger/internal/logic"
)

// Soft is a clock held as register values that the host clock advances.
// It stands in for the RTC on boards without one. Like the hardware, every
// register is stored as written: 31/02 stays 31/02 until the next day rolls
// it over. Nothing survives a restart.
type Soft struct {
	now   func() time.Time
	regs  logic.ClockState
	setAt time.Time
}

// NewSoft creates a clock reading the host time through now.
func NewSoft(now func() time.Time) *Soft {
	host := now()
	t := host.UTC()
	return &Soft{
		now: now,
		regs: logic.ClockState{
			Hour:    t.Hour(),
			Minute:  t.Minute(),
			Second:  t.Second(),
			Day:     t.Day(),
			Month:   int(t.Month()),
			Year:    t.Year(),
			Weekday: int(t.Weekday()),
		},
		setAt: host,
	}
}

// sync advances the registers by the whole seconds elapsed on the host.
func (c *Soft) sync() {
	now := c.now()
	elapsed := now.Sub(c.setAt)
	if elapsed < 0 {
		// Host clock stepped back: hold the registers.
		c.setAt = now
		return
	}
	secs := int64(elapsed / time.Second)
	if secs == 0 {
		return
	}
	c.setAt = c.setAt.Add(time.Duration(secs) * time.Second)

	r := &c.regs
	total := int64(r.Hour)*3600 + int64(r.Minute)*60 + int64(r.Second) + secs
	days := total / 86400
	total %= 86400
	r.Hour = int(total / 3600)
	r.Minute = int(total / 60 % 60)
	r.Second = int(total % 60)
	for ; days > 0; days-- {
		r.Weekday = (r.Weekday + 1) % 7
		r.Day++
		if r.Day > daysIn(r.Month, r.Year) {
			r.Day = 1
			r.Month++
			if r.Month > 12 {
				r.Month = 1
				r.Year++
			}
		}
	}
}

// write replaces the registers and restarts the second.
func (c *Soft) write(s logic.ClockState) {
	c.regs = s
	c.setAt = c.now()
}

// Now reads every register.
func (c *Soft) Now() (logic.ClockState, error) {
	c.sync()
	return c.regs, nil
}

// SetTime writes hour, minute and second.
func (c *Soft) SetTime(hour, minute, second int) error {
	s, err := c.Now()
	if err != nil {
		return err
	}
	s.Hour, s.Minute, s.Second = hour, minute, second
	c.write(s)
	return nil
}

// SetDate writes day, month and year. The weekday register is left alone.
func (c *Soft) SetDate(day, month, year int) error {
	s, err := c.Now()
	if err != nil {
		return err
	}
	s.Day, s.Month, s.Year = day, month, year
	c.write(s)
	return nil
}

// SetWeekday writes the weekday register.
func (c *Soft) SetWeekday(wd int) error {
	if err := checkWeekday(wd); err != nil {
		return err
	}
	s, err := c.Now()
	if err != nil {
		return err
	}
	s.Weekday = wd
	c.write(s)
	return nil
}

// SetField writes one register.
func (c *Soft) SetField(f logic.Field, v int) error {
	s, err := c.Now()
	if err != nil {
		return err
	}
	c.write(s.With(f, v))
	return nil
}

// daysIn is the length of a month in the Gregorian calendar. A month
// register outside 1-12 rolls over after 31.
func daysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
	return 31
}
