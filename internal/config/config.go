// Package config loads the logger's wiring and tuning from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/rtc"
	"github.com/sweeney/temp-logger/internal/serialout"
	"github.com/sweeney/temp-logger/internal/sensor"
)

// Config represents the application configuration.
type Config struct {
	GPIO   GPIOConfig   `yaml:"gpio"`
	ADC    ADCConfig    `yaml:"adc"`
	RTC    RTCConfig    `yaml:"rtc"`
	Serial SerialConfig `yaml:"serial"`
	Logger LoggerConfig `yaml:"logger"`
	Clock  ClockConfig  `yaml:"clock"`
}

// GPIOConfig holds the gpiochip and line offsets.
type GPIOConfig struct {
	Chip   string       `yaml:"chip"`
	Switch int          `yaml:"switch"`
	Buzzer int          `yaml:"buzzer"`
	LCD    LCDConfig    `yaml:"lcd"`
	Keypad KeypadConfig `yaml:"keypad"`
}

// LCDConfig holds the HD44780 control lines and the 8-bit data bus (D0 first).
type LCDConfig struct {
	RS   int   `yaml:"rs"`
	RW   int   `yaml:"rw"`
	EN   int   `yaml:"en"`
	Data []int `yaml:"data"`
}

// KeypadConfig holds the matrix row outputs and column inputs.
type KeypadConfig struct {
	Rows []int `yaml:"rows"`
	Cols []int `yaml:"cols"`
}

// ADCConfig describes the converter the LM35 is wired to.
type ADCConfig struct {
	SPIPort string  `yaml:"spi_port"` // "" selects the first port
	SpeedHz int64   `yaml:"speed_hz"`
	Channel int     `yaml:"channel"`
	VRef    float64 `yaml:"vref"`
	Bits    int     `yaml:"bits"`
}

// RTCConfig selects the clock driver.
type RTCConfig struct {
	Driver string `yaml:"driver"` // "soft" or "ds1307"
	I2CBus string `yaml:"i2c_bus"`
	Addr   uint16 `yaml:"addr"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// LoggerConfig tunes the control loop.
type LoggerConfig struct {
	Setpoint       int           `yaml:"setpoint"`
	Unit           string        `yaml:"unit"`
	Poll           time.Duration `yaml:"poll"`
	KeyDebounce    time.Duration `yaml:"key_debounce"`
	SwitchDebounce time.Duration `yaml:"switch_debounce"`
	Heartbeat      time.Duration `yaml:"heartbeat"` // 0 disables
}

// ClockConfig optionally sets the RTC at startup.
type ClockConfig struct {
	// Set is "HH:MM:SS DD/MM/YYYY" with an optional trailing weekday digit
	// (0=Sunday). Empty leaves the RTC alone.
	Set string `yaml:"set"`
}

// Driver names for RTCConfig.Driver.
const (
	RTCSoft   = "soft"
	RTCDS1307 = "ds1307"
)

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		GPIO: GPIOConfig{
			Chip:   gpio.DefaultChip,
			Switch: gpio.DefaultPinSwitch,
			Buzzer: gpio.DefaultPinBuzzer,
			LCD: LCDConfig{
				RS:   gpio.DefaultPinLCDRS,
				RW:   gpio.DefaultPinLCDRW,
				EN:   gpio.DefaultPinLCDEN,
				Data: append([]int(nil), gpio.DefaultLCDData[:]...),
			},
			Keypad: KeypadConfig{
				Rows: append([]int(nil), gpio.DefaultKeypadRows[:]...),
				Cols: append([]int(nil), gpio.DefaultKeypadCols[:]...),
			},
		},
		ADC: ADCConfig{
			SpeedHz: 1_000_000,
			Channel: 0,
			VRef:    sensor.DefaultVRef,
			Bits:    sensor.DefaultBits,
		},
		RTC: RTCConfig{
			Driver: RTCSoft,
			I2CBus: "1",
			Addr:   rtc.DS1307Addr,
		},
		Serial: SerialConfig{
			Port: "/dev/ttyS0",
			Baud: serialout.DefaultBaud,
		},
		Logger: LoggerConfig{
			Setpoint:       logic.DefaultSetpoint,
			Unit:           string(logic.Celsius),
			Poll:           50 * time.Millisecond,
			KeyDebounce:    10 * time.Millisecond,
			SwitchDebounce: 10 * time.Millisecond,
			Heartbeat:      15 * time.Minute,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults fills fields a partial file left at their zero value.
// Offsets and the setpoint may legitimately be zero, so only names, lists,
// rates and durations are defaulted.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.GPIO.Chip == "" {
		c.GPIO.Chip = def.GPIO.Chip
	}
	if len(c.GPIO.LCD.Data) == 0 {
		c.GPIO.LCD.Data = def.GPIO.LCD.Data
	}
	if len(c.GPIO.Keypad.Rows) == 0 {
		c.GPIO.Keypad.Rows = def.GPIO.Keypad.Rows
	}
	if len(c.GPIO.Keypad.Cols) == 0 {
		c.GPIO.Keypad.Cols = def.GPIO.Keypad.Cols
	}

	if c.ADC.SpeedHz == 0 {
		c.ADC.SpeedHz = def.ADC.SpeedHz
	}
	if c.ADC.VRef == 0 {
		c.ADC.VRef = def.ADC.VRef
	}
	if c.ADC.Bits == 0 {
		c.ADC.Bits = def.ADC.Bits
	}

	if c.RTC.Driver == "" {
		c.RTC.Driver = def.RTC.Driver
	}
	if c.RTC.I2CBus == "" {
		c.RTC.I2CBus = def.RTC.I2CBus
	}
	if c.RTC.Addr == 0 {
		c.RTC.Addr = def.RTC.Addr
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.Logger.Unit == "" {
		c.Logger.Unit = def.Logger.Unit
	}
	if c.Logger.Poll == 0 {
		c.Logger.Poll = def.Logger.Poll
	}
	if c.Logger.KeyDebounce == 0 {
		c.Logger.KeyDebounce = def.Logger.KeyDebounce
	}
	if c.Logger.SwitchDebounce == 0 {
		c.Logger.SwitchDebounce = def.Logger.SwitchDebounce
	}
}

// Validate reports the first setting the hardware cannot use.
func (c *Config) Validate() error {
	if n := len(c.GPIO.LCD.Data); n != 8 {
		return fmt.Errorf("gpio.lcd.data: need 8 lines, got %d", n)
	}
	if n := len(c.GPIO.Keypad.Rows); n != 4 {
		return fmt.Errorf("gpio.keypad.rows: need 4 lines, got %d", n)
	}
	if n := len(c.GPIO.Keypad.Cols); n != 4 {
		return fmt.Errorf("gpio.keypad.cols: need 4 lines, got %d", n)
	}
	if c.ADC.Channel < 0 || c.ADC.Channel > 7 {
		return fmt.Errorf("adc.channel: %d out of range 0-7", c.ADC.Channel)
	}
	if c.ADC.Bits < 1 || c.ADC.Bits > 16 {
		return fmt.Errorf("adc.bits: %d out of range 1-16", c.ADC.Bits)
	}
	switch c.RTC.Driver {
	case RTCSoft, RTCDS1307:
	default:
		return fmt.Errorf("rtc.driver: unknown driver %q", c.RTC.Driver)
	}
	if _, err := c.Unit(); err != nil {
		return err
	}
	b := logic.SetpointBounds
	if c.Logger.Setpoint < int(b.Min) || c.Logger.Setpoint > int(b.Max) {
		return fmt.Errorf("logger.setpoint: %d out of range %d-%d", c.Logger.Setpoint, b.Min, b.Max)
	}
	if c.Logger.Poll < 0 || c.Logger.Heartbeat < 0 {
		return fmt.Errorf("logger: durations must not be negative")
	}
	if c.Clock.Set != "" {
		if _, err := ParseClock(c.Clock.Set); err != nil {
			return fmt.Errorf("clock.set: %w", err)
		}
	}
	return nil
}

// Unit returns the configured temperature scale.
func (c *Config) Unit() (logic.Unit, error) {
	switch strings.ToUpper(c.Logger.Unit) {
	case "C":
		return logic.Celsius, nil
	case "F":
		return logic.Fahrenheit, nil
	}
	return "", fmt.Errorf("logger.unit: %q is not C or F", c.Logger.Unit)
}

const clockLayout = "15:04:05 02/01/2006"

// ParseClock parses "HH:MM:SS DD/MM/YYYY [W]". Without W the weekday is
// computed from the date.
func ParseClock(s string) (logic.ClockState, error) {
	s = strings.TrimSpace(s)
	wd := -1
	if i := strings.LastIndexByte(s, ' '); i > 0 && len(s)-i == 2 {
		n, err := strconv.Atoi(s[i+1:])
		if err != nil || n < 0 || n > 6 {
			return logic.ClockState{}, fmt.Errorf("weekday %q not in 0-6", s[i+1:])
		}
		wd = n
		s = s[:i]
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return logic.ClockState{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if wd < 0 {
		wd = int(t.Weekday())
	}
	return logic.ClockState{
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
		Weekday: wd,
	}, nil
}
