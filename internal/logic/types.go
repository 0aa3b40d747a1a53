// Package logic contains pure business logic for the temperature logger.
// This package has NO external dependencies (no GPIO, LCD, serial, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "math"

// Unit selects the temperature scale reported by the sensor.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ClockState is a snapshot of the RTC registers.
type ClockState struct {
	Hour    int // 0-23
	Minute  int // 0-59
	Second  int // 0-59
	Day     int // 1-31
	Month   int // 1-12
	Year    int // >= 2000
	Weekday int // 0=Sunday ... 6=Saturday
}

// Field identifies an editable clock register.
type Field int

const (
	FieldHour Field = iota
	FieldMinute
	FieldSecond
	FieldDay
	FieldMonth
	FieldYear
)

var fieldNames = [...]string{"hour", "minute", "second", "day", "month", "year"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Bounds is the valid range of an operator-entered value.
type Bounds struct {
	Min uint32
	Max uint32
	// Reset sends out-of-range values to Min instead of the nearest bound.
	Reset bool
}

// Clamp forces v into the range.
func (b Bounds) Clamp(v uint32) uint32 {
	if v >= b.Min && v <= b.Max {
		return v
	}
	if b.Reset || v < b.Min {
		return b.Min
	}
	return b.Max
}

// SetpointBounds limits the alarm threshold.
var SetpointBounds = Bounds{Min: 0, Max: 150}

// DefaultSetpoint is the threshold used until the operator edits it.
const DefaultSetpoint = 40

var fieldBounds = [...]Bounds{
	FieldHour:   {Min: 0, Max: 23},
	FieldMinute: {Min: 0, Max: 59},
	FieldSecond: {Min: 0, Max: 59},
	FieldDay:    {Min: 1, Max: 31, Reset: true},
	FieldMonth:  {Min: 1, Max: 12, Reset: true},
	FieldYear:   {Min: 2000, Max: math.MaxUint32},
}

// BoundsFor returns the edit range of a clock field.
func BoundsFor(f Field) Bounds {
	return fieldBounds[f]
}

// Get returns the value of field f.
func (c ClockState) Get(f Field) int {
	switch f {
	case FieldHour:
		return c.Hour
	case FieldMinute:
		return c.Minute
	case FieldSecond:
		return c.Second
	case FieldDay:
		return c.Day
	case FieldMonth:
		return c.Month
	case FieldYear:
		return c.Year
	}
	return 0
}

// With returns a copy of c with field f replaced by v.
func (c ClockState) With(f Field, v int) ClockState {
	switch f {
	case FieldHour:
		c.Hour = v
	case FieldMinute:
		c.Minute = v
	case FieldSecond:
		c.Second = v
	case FieldDay:
		c.Day = v
	case FieldMonth:
		c.Month = v
	case FieldYear:
		c.Year = v
	}
	return c
}

// Key is a decoded keypad press.
// 0-9 are digits, KeyBackspace and KeyEnter are the two control keys.
type Key uint8

const (
	KeyBackspace Key = 10
	KeyEnter     Key = 11
)

// IsDigit reports whether k is 0-9.
func (k Key) IsDigit() bool {
	return k <= 9
}

// EditMode is where the control loop currently is.
type EditMode int

const (
	ModeOff EditMode = iota
	ModeMenuRoot
	ModeTimeMenu
	ModeFieldEdit
	ModeWeekdaySelect
	ModeSetpointEdit
)

var modeNames = [...]string{"OFF", "MENU", "TIME_MENU", "FIELD_EDIT", "WEEKDAY", "SETPOINT"}

func (m EditMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "UNKNOWN"
	}
	return modeNames[m]
}

// Counts tracks minute-boundary actions since startup.
type Counts struct {
	Records int // log lines emitted
	Alarms  int // records at or above the setpoint
}
