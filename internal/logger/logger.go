// Package logger is the control loop: live display, the minute record and
// alarm, and the modal edit menu entered from the mode switch.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/keypad"
	"github.com/sweeney/temp-logger/internal/lcd"
	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/poll"
	"github.com/sweeney/temp-logger/internal/rtc"
	"github.com/sweeney/temp-logger/internal/sensor"
	"github.com/sweeney/temp-logger/internal/serialout"
)

// Switch is the menu button.
type Switch interface {
	Pressed() (bool, error)
}

// Hardware holds the collaborators the loop drives. The loop owns all of
// them; nothing else may touch them while it runs.
type Hardware struct {
	Clock   rtc.Clock
	Sensor  sensor.Thermometer
	Display lcd.Display
	Keypad  keypad.Keypad
	Serial  io.Writer
	Alarm   gpio.OutputPin
	Switch  Switch
}

// Settings tunes the loop.
type Settings struct {
	Unit     logic.Unit
	Setpoint int
	// Poll is the granularity of every busy wait (key, switch release).
	Poll           time.Duration
	KeyDebounce    time.Duration
	SwitchDebounce time.Duration
	// Heartbeat is how often a summary is logged; 0 disables.
	Heartbeat time.Duration
}

// Fixed screen and serial timings.
const (
	exitSettle        = 10 * time.Millisecond
	setpointSettle    = 200 * time.Millisecond
	dayUpdatedHold    = 500 * time.Millisecond
	savedHold         = 800 * time.Millisecond
	setpointSavedHold = 1000 * time.Millisecond
)

// State is everything the loop and the menu share.
type State struct {
	Clock       logic.ClockState
	Setpoint    int
	Gate        *logic.MinuteGate
	Mode        logic.EditMode
	Field       logic.Field // valid in ModeFieldEdit
	Temperature int         // last value shown on the LCD
	Alarm       bool
}

// Logger runs the data logger on a set of hardware.
type Logger struct {
	hw    Hardware
	set   Settings
	sleep poll.Sleeper
	now   func() time.Time
	state *State
}

// New creates a Logger. now is only used for heartbeat timing.
func New(hw Hardware, set Settings, sleeper poll.Sleeper, now func() time.Time) *Logger {
	if set.Unit == "" {
		set.Unit = logic.Celsius
	}
	return &Logger{
		hw:    hw,
		set:   set,
		sleep: sleeper,
		now:   now,
		state: &State{
			Setpoint: set.Setpoint,
			Gate:     logic.NewMinuteGate(now()),
		},
	}
}

// State returns a copy of the shared state.
func (l *Logger) State() State {
	return *l.state
}

// Init loads the degree glyph, clears the LCD and turns the alarm off.
func (l *Logger) Init() error {
	if err := l.hw.Display.DefineGlyph(lcd.DegreeSlot, lcd.DegreeGlyph); err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	if err := l.hw.Display.Clear(); err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	if err := l.hw.Alarm.Set(false); err != nil {
		return fmt.Errorf("init alarm: %w", err)
	}
	l.state.Alarm = false
	return nil
}

// Step runs one iteration of the live loop. The order is fixed: clock,
// temperature, minute record, mode switch, heartbeat. A hardware error ends
// the iteration early; calling Step again retries from the top.
func (l *Logger) Step(ctx context.Context) error {
	c, err := l.hw.Clock.Now()
	if err != nil {
		return fmt.Errorf("read clock: %w", err)
	}
	l.state.Clock = c
	if err := l.showClock(c); err != nil {
		return fmt.Errorf("show clock: %w", err)
	}

	temp, err := l.hw.Sensor.Read(l.set.Unit)
	if err != nil {
		return fmt.Errorf("read temperature: %w", err)
	}
	l.state.Temperature = temp
	if err := l.showTemperature(temp); err != nil {
		return fmt.Errorf("show temperature: %w", err)
	}

	if l.state.Gate.Observe(c.Second) {
		if err := l.record(c); err != nil {
			return err
		}
	}

	pressed, err := l.hw.Switch.Pressed()
	if err != nil {
		return fmt.Errorf("read switch: %w", err)
	}
	if pressed {
		if err := l.sleep.Sleep(ctx, l.set.SwitchDebounce); err != nil {
			return err
		}
		if err := poll.Until(ctx, l.sleep, l.set.Poll, poll.Not(l.hw.Switch.Pressed)); err != nil {
			return fmt.Errorf("wait switch release: %w", err)
		}
		if err := l.menu(ctx); err != nil {
			return fmt.Errorf("menu: %w", err)
		}
	}

	if hb := l.state.Gate.CheckHeartbeat(l.now(), l.set.Heartbeat); hb != nil {
		log.Printf("heartbeat: uptime=%v records=%d alarms=%d temp=%d setpoint=%d",
			hb.Uptime.Round(time.Second), hb.Counts.Records, hb.Counts.Alarms, l.state.Temperature, l.state.Setpoint)
	}
	return nil
}

// showClock draws time, date and weekday.
func (l *Logger) showClock(c logic.ClockState) error {
	p := l.panel()
	p.at(0, 0, logic.FormatTime(c))
	p.at(1, 0, logic.FormatDate(c))
	p.at(1, 11, logic.WeekdayName(c.Weekday))
	return p.err
}

// showTemperature draws "T:nnn" with the degree glyph and unit letter.
func (l *Logger) showTemperature(temp int) error {
	p := l.panel()
	p.at(0, 9, fmt.Sprintf("T:%3d", temp))
	p.at(0, 14, "")
	p.char(lcd.DegreeSlot)
	p.print(string(l.set.Unit))
	return p.err
}

// record takes a fresh reading, drives the alarm and sends the minute line.
// The timestamp is the clock state the iteration started with.
func (l *Logger) record(c logic.ClockState) error {
	temp, err := l.hw.Sensor.Read(l.set.Unit)
	if err != nil {
		return fmt.Errorf("read temperature for record: %w", err)
	}
	over := temp >= l.state.Setpoint
	if err := l.setAlarm(over); err != nil {
		return err
	}
	w := serialout.NewWriter(l.hw.Serial)
	if err := w.WriteRecord(temp, l.set.Unit, c, over); err != nil {
		return fmt.Errorf("send record: %w", err)
	}
	l.state.Gate.Record(over)
	log.Printf("record: temp=%d setpoint=%d over=%v at %s %s", temp, l.state.Setpoint, over, logic.FormatTime(c), logic.FormatDate(c))
	return nil
}

func (l *Logger) setAlarm(on bool) error {
	if err := l.hw.Alarm.Set(on); err != nil {
		return fmt.Errorf("set alarm: %w", err)
	}
	if on != l.state.Alarm {
		log.Printf("alarm: %s", onOff(on))
	}
	l.state.Alarm = on
	return nil
}

// send writes a status line to the serial log.
func (l *Logger) send(s string) error {
	_, err := serialout.NewWriter(l.hw.Serial).WriteString(s)
	return err
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
