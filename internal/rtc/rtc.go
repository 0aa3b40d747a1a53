// Package rtc provides the wall clock the logger timestamps against.
package rtc

import (
	"errors"
	"fmt"

	"github.com/sweeney/temp-logger/internal/logic"
)

// Clock is a battery-backed real-time clock with independently writable
// registers. The weekday is its own register: writing the date does not
// recompute it.
type Clock interface {
	Now() (logic.ClockState, error)
	SetTime(hour, minute, second int) error
	SetDate(day, month, year int) error
	SetWeekday(wd int) error
	SetField(f logic.Field, v int) error
}

// ErrYearOutOfRange is returned by clocks that cannot store the year.
var ErrYearOutOfRange = errors.New("rtc: year out of range")

// Set writes a full clock state: time, date, then weekday.
func Set(c Clock, s logic.ClockState) error {
	if err := c.SetTime(s.Hour, s.Minute, s.Second); err != nil {
		return fmt.Errorf("set time: %w", err)
	}
	if err := c.SetDate(s.Day, s.Month, s.Year); err != nil {
		return fmt.Errorf("set date: %w", err)
	}
	if err := c.SetWeekday(s.Weekday); err != nil {
		return fmt.Errorf("set weekday: %w", err)
	}
	return nil
}

func checkWeekday(wd int) error {
	if wd < 0 || wd > 6 {
		return fmt.Errorf("rtc: weekday %d out of range", wd)
	}
	return nil
}
