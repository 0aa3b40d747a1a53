// Command temp-logger runs the LM35 data logger: live LCD display, a serial
// record every minute with an over-temperature alarm, and a keypad menu for
// setting the clock and the alarm setpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/sweeney/temp-logger/internal/config"
	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/keypad"
	"github.com/sweeney/temp-logger/internal/lcd"
	"github.com/sweeney/temp-logger/internal/logger"
	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/poll"
	"github.com/sweeney/temp-logger/internal/rtc"
	"github.com/sweeney/temp-logger/internal/sensor"
	"github.com/sweeney/temp-logger/internal/serialout"
)

func main() {
	configPath := flag.String("config", "/etc/temp-logger/config.yaml", "YAML config file (missing file uses defaults)")
	printState := flag.Bool("print-state", false, "Print clock and temperature and exit")
	setClock := flag.String("set-clock", "", `Set the RTC before starting, "HH:MM:SS DD/MM/YYYY [weekday]"`)
	pollInterval := flag.Duration("poll", 0, "Loop interval (overrides config)")
	heartbeat := flag.Duration("heartbeat", 0, "Heartbeat interval, 0 disables (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "poll":
			cfg.Logger.Poll = *pollInterval
		case "heartbeat":
			cfg.Logger.Heartbeat = *heartbeat
		case "set-clock":
			cfg.Clock.Set = *setClock
		}
	})

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, printState bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	set, err := settings(cfg)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init host: %w", err)
	}

	// Clock
	clock, closeClock, err := openClock(cfg.RTC)
	if err != nil {
		return fmt.Errorf("init rtc: %w", err)
	}
	defer closeClock()

	if cfg.Clock.Set != "" {
		cs, err := config.ParseClock(cfg.Clock.Set)
		if err != nil {
			return fmt.Errorf("set clock: %w", err)
		}
		if err := rtc.Set(clock, cs); err != nil {
			return fmt.Errorf("set clock: %w", err)
		}
		log.Printf("rtc: set to %s %s %s", logic.FormatTime(cs), logic.FormatDate(cs), logic.WeekdayName(cs.Weekday))
	}

	// Sensor
	port, err := spireg.Open(cfg.ADC.SPIPort)
	if err != nil {
		return fmt.Errorf("open spi: %w", err)
	}
	defer port.Close()
	conn, err := port.Connect(physic.Frequency(cfg.ADC.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		return fmt.Errorf("connect spi: %w", err)
	}
	adc, err := sensor.NewMCP3008(conn, cfg.ADC.Channel)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	thermometer := &sensor.LM35{ADC: adc, VRef: cfg.ADC.VRef, Bits: cfg.ADC.Bits}

	if printState {
		return printCurrent(clock, thermometer, set)
	}

	// GPIO
	chip, err := gpio.OpenChip(cfg.GPIO.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer chip.Close()

	display, closeDisplay, err := openDisplay(chip, cfg.GPIO.LCD)
	if err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	defer closeDisplay()

	rows, err := chip.OutputPort(cfg.GPIO.Keypad.Rows)
	if err != nil {
		return fmt.Errorf("init keypad rows: %w", err)
	}
	defer rows.Close()
	cols, err := chip.InputPort(cfg.GPIO.Keypad.Cols)
	if err != nil {
		return fmt.Errorf("init keypad cols: %w", err)
	}
	defer cols.Close()
	pad, err := keypad.NewMatrix(rows, cols, keypad.DefaultMap)
	if err != nil {
		return fmt.Errorf("init keypad: %w", err)
	}

	buzzer, err := chip.Output(cfg.GPIO.Buzzer, false)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer buzzer.Close()

	button, err := chip.Input(cfg.GPIO.Switch)
	if err != nil {
		return fmt.Errorf("init switch: %w", err)
	}
	defer button.Close()

	// Serial
	serialPort, err := serialout.Open(cfg.Serial.Port, cfg.Serial.Baud)
	if err != nil {
		return err
	}
	defer serialPort.Close()

	lg := logger.New(logger.Hardware{
		Clock:   clock,
		Sensor:  thermometer,
		Display: display,
		Keypad:  pad,
		Serial:  serialPort,
		Alarm:   buzzer,
		Switch:  gpio.Switch{Pin: button},
	}, set, poll.RealSleeper{}, time.Now)
	if err := lg.Init(); err != nil {
		return err
	}

	log.Printf("started: poll=%v setpoint=%d unit=%s rtc=%s serial=%s@%d heartbeat=%v",
		set.Poll, set.Setpoint, set.Unit, cfg.RTC.Driver, cfg.Serial.Port, cfg.Serial.Baud, set.Heartbeat)

	ticker := time.NewTicker(set.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(lg, ticker.C, sigCh)
}

// stepper is one iteration of the control loop.
type stepper interface {
	Step(ctx context.Context) error
}

// runLoop steps on every tick until a signal arrives. A signal cancels the
// context so a Step blocked in the menu returns too. Step errors are logged
// and the next tick retries; a repeated error is logged once.
func runLoop(lg stepper, tick <-chan time.Time, sig <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	lastErr := ""
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			err := lg.Step(ctx)
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				if msg := err.Error(); msg != lastErr {
					log.Printf("step error: %v", err)
					lastErr = msg
				}
				continue
			}
			if lastErr != "" {
				log.Printf("step: recovered")
				lastErr = ""
			}
		}
	}
}

func settings(cfg *config.Config) (logger.Settings, error) {
	unit, err := cfg.Unit()
	if err != nil {
		return logger.Settings{}, err
	}
	return logger.Settings{
		Unit:           unit,
		Setpoint:       cfg.Logger.Setpoint,
		Poll:           cfg.Logger.Poll,
		KeyDebounce:    cfg.Logger.KeyDebounce,
		SwitchDebounce: cfg.Logger.SwitchDebounce,
		Heartbeat:      cfg.Logger.Heartbeat,
	}, nil
}

// openClock returns the configured RTC and a func releasing its bus.
func openClock(c config.RTCConfig) (rtc.Clock, func(), error) {
	switch c.Driver {
	case config.RTCDS1307:
		bus, err := i2creg.Open(c.I2CBus)
		if err != nil {
			return nil, nil, fmt.Errorf("open i2c %q: %w", c.I2CBus, err)
		}
		d, err := rtc.NewDS1307(&i2c.Dev{Bus: bus, Addr: c.Addr})
		if err != nil {
			bus.Close()
			return nil, nil, err
		}
		return d, func() { bus.Close() }, nil
	default:
		return rtc.NewSoft(time.Now), func() {}, nil
	}
}

// openDisplay brings up the HD44780 on its parallel bus.
func openDisplay(chip *gpio.Chip, c config.LCDConfig) (*lcd.HD44780, func(), error) {
	bus := &lcd.ParallelBus{}
	closeBus := func() {
		if err := bus.Close(); err != nil {
			log.Printf("lcd close: %v", err)
		}
	}

	rs, err := chip.Output(c.RS, false)
	if err != nil {
		closeBus()
		return nil, nil, err
	}
	bus.RS = rs
	rw, err := chip.Output(c.RW, false)
	if err != nil {
		closeBus()
		return nil, nil, err
	}
	bus.RW = rw
	en, err := chip.Output(c.EN, false)
	if err != nil {
		closeBus()
		return nil, nil, err
	}
	bus.EN = en
	data, err := chip.OutputPort(c.Data)
	if err != nil {
		closeBus()
		return nil, nil, err
	}
	bus.Data = data

	d := lcd.New(bus)
	if err := d.Init(); err != nil {
		closeBus()
		return nil, nil, err
	}
	return d, closeBus, nil
}

func printCurrent(clock rtc.Clock, t sensor.Thermometer, set logger.Settings) error {
	c, err := clock.Now()
	if err != nil {
		return fmt.Errorf("read clock: %w", err)
	}
	temp, err := t.Read(set.Unit)
	if err != nil {
		return err
	}
	fmt.Printf("TIME: %s %s %s, TEMP: %d%s, SETPOINT: %d\n",
		logic.FormatTime(c), logic.FormatDate(c), logic.WeekdayName(c.Weekday), temp, set.Unit, set.Setpoint)
	return nil
}
