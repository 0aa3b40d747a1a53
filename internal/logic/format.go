package logic

import (
	"fmt"
	"time"
)

// DegreeByte is the degree sign in the serial terminal's Latin-1 code page.
const DegreeByte = 0xB0

// WeekdayNames are the three-letter labels shown on the LCD, Sunday first.
var WeekdayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// WeekdayName returns the label for wd, or "???" if the register holds garbage.
func WeekdayName(wd int) string {
	if wd < 0 || wd >= len(WeekdayNames) {
		return "???"
	}
	return WeekdayNames[wd]
}

// WeekdayOf computes the day of week (0=Sunday) for a calendar date.
func WeekdayOf(day, month, year int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// FormatTime renders HH:MM:SS.
func FormatTime(c ClockState) string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// FormatDate renders DD/MM/YYYY for the LCD.
func FormatDate(c ClockState) string {
	return fmt.Sprintf("%02d/%02d/%04d", c.Day, c.Month, c.Year)
}
