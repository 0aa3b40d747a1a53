package rtc

import "github.com/sweeney/temp-logger/internal/logic"

// FakeClock is a Clock whose registers are a plain struct. Time only moves
// when the test changes State.
type FakeClock struct {
	State    logic.ClockState
	NowError error
	SetError error
	Writes   int
}

// Now returns State, or NowError if set.
func (c *FakeClock) Now() (logic.ClockState, error) {
	if c.NowError != nil {
		return logic.ClockState{}, c.NowError
	}
	return c.State, nil
}

// SetTime writes the time registers.
func (c *FakeClock) SetTime(hour, minute, second int) error {
	if c.SetError != nil {
		return c.SetError
	}
	c.Writes++
	c.State.Hour, c.State.Minute, c.State.Second = hour, minute, second
	return nil
}

// SetDate writes the date registers.
func (c *FakeClock) SetDate(day, month, year int) error {
	if c.SetError != nil {
		return c.SetError
	}
	c.Writes++
	c.State.Day, c.State.Month, c.State.Year = day, month, year
	return nil
}

// SetWeekday writes the weekday register.
func (c *FakeClock) SetWeekday(wd int) error {
	if c.SetError != nil {
		return c.SetError
	}
	if err := checkWeekday(wd); err != nil {
		return err
	}
	c.Writes++
	c.State.Weekday = wd
	return nil
}

// SetField writes one register.
func (c *FakeClock) SetField(f logic.Field, v int) error {
	if c.SetError != nil {
		return c.SetError
	}
	c.Writes++
	c.State = c.State.With(f, v)
	return nil
}
