package logger

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/keypad"
	"github.com/sweeney/temp-logger/internal/lcd"
	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/poll"
	"github.com/sweeney/temp-logger/internal/rtc"
	"github.com/sweeney/temp-logger/internal/sensor"
)

// rig is a logger wired to fakes.
type rig struct {
	clock  *rtc.FakeClock
	adc    *sensor.FakeADC
	screen *lcd.Screen
	keys   *keypad.FakeKeypad
	serial *bytes.Buffer
	alarm  *gpio.FakeOutput
	sw     *gpio.FakeInput
	sleep  *poll.FakeSleeper
	now    time.Time
	lg     *Logger
}

var testSettings = Settings{
	Unit:           logic.Celsius,
	Setpoint:       logic.DefaultSetpoint,
	Poll:           time.Millisecond,
	KeyDebounce:    10 * time.Millisecond,
	SwitchDebounce: 10 * time.Millisecond,
}

// bootClock is the time the original board forced on power-up.
var bootClock = logic.ClockState{Hour: 11, Minute: 51, Second: 1, Day: 3, Month: 1, Year: 2026, Weekday: 6}

// newRig builds a logger reading celsius temps in order (the last repeats).
func newRig(t *testing.T, set Settings, temps ...int) *rig {
	t.Helper()
	r := &rig{
		clock:  &rtc.FakeClock{State: bootClock},
		adc:    &sensor.FakeADC{},
		screen: lcd.NewScreen(),
		keys:   keypad.NewFakeKeypad(),
		serial: &bytes.Buffer{},
		alarm:  &gpio.FakeOutput{},
		sw:     gpio.NewFakeInput(true),
		sleep:  &poll.FakeSleeper{},
		now:    time.Date(2026, 1, 3, 11, 51, 1, 0, time.UTC),
	}
	for _, c := range temps {
		r.adc.Samples = append(r.adc.Samples, sensor.RawFor(c))
	}

	display := lcd.New(r.screen)
	display.Sleep = func(time.Duration) {}

	r.lg = New(Hardware{
		Clock:   r.clock,
		Sensor:  sensor.NewLM35(r.adc),
		Display: display,
		Keypad:  r.keys,
		Serial:  r.serial,
		Alarm:   r.alarm,
		Switch:  gpio.Switch{Pin: r.sw},
	}, set, r.sleep, func() time.Time { return r.now })

	if err := r.lg.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

// press makes the next Step see one switch press followed by release.
func (r *rig) press(keys ...logic.Key) {
	r.sw.Levels = []bool{false, true}
	r.sw.Reset()
	r.keys.Keys = keys
}

func (r *rig) at(second int) *rig {
	r.clock.State.Second = second
	return r
}

func (r *rig) step(t *testing.T) {
	t.Helper()
	if err := r.lg.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}
