package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/rtc"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "gpiochip0", cfg.GPIO.Chip)
	assert.Len(t, cfg.GPIO.LCD.Data, 8)
	assert.Len(t, cfg.GPIO.Keypad.Rows, 4)
	assert.Len(t, cfg.GPIO.Keypad.Cols, 4)
	assert.Equal(t, 3.3, cfg.ADC.VRef)
	assert.Equal(t, 10, cfg.ADC.Bits)
	assert.Equal(t, RTCSoft, cfg.RTC.Driver)
	assert.Equal(t, uint16(rtc.DS1307Addr), cfg.RTC.Addr)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, 40, cfg.Logger.Setpoint)
	assert.Equal(t, 10*time.Millisecond, cfg.Logger.KeyDebounce)
	assert.Equal(t, 15*time.Minute, cfg.Logger.Heartbeat)
	assert.Empty(t, cfg.Clock.Set)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultDoesNotAliasPackageSlices(t *testing.T) {
	cfg := Default()
	cfg.GPIO.LCD.Data[0] = 99
	assert.NotEqual(t, 99, Default().GPIO.LCD.Data[0])
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS0", cfg.Serial.Port)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
gpio:
  chip: gpiochip4
  switch: 0
  buzzer: 27
adc:
  spi_port: SPI0.1
  channel: 3
rtc:
  driver: ds1307
serial:
  port: /dev/ttyUSB0
  baud: 115200
logger:
  setpoint: 0
  unit: f
  poll: 20ms
  heartbeat: 1h
clock:
  set: "11:51:01 03/01/2026 1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpiochip4", cfg.GPIO.Chip)
	assert.Equal(t, 0, cfg.GPIO.Switch)
	assert.Equal(t, 27, cfg.GPIO.Buzzer)
	assert.Equal(t, "SPI0.1", cfg.ADC.SPIPort)
	assert.Equal(t, 3, cfg.ADC.Channel)
	assert.Equal(t, RTCDS1307, cfg.RTC.Driver)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, 0, cfg.Logger.Setpoint)
	assert.Equal(t, 20*time.Millisecond, cfg.Logger.Poll)
	assert.Equal(t, time.Hour, cfg.Logger.Heartbeat)

	unit, err := cfg.Unit()
	require.NoError(t, err)
	assert.Equal(t, logic.Fahrenheit, unit)

	// untouched sections fall back to defaults
	assert.Len(t, cfg.GPIO.LCD.Data, 8)
	assert.Equal(t, 3.3, cfg.ADC.VRef)
	assert.Equal(t, "1", cfg.RTC.I2CBus)
	assert.Equal(t, 10*time.Millisecond, cfg.Logger.SwitchDebounce)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "gpio: [",
		"short lcd bus": "gpio:\n  lcd:\n    data: [1, 2, 3]\n",
		"bad driver":    "rtc:\n  driver: ds3231\n",
		"bad unit":      "logger:\n  unit: K\n",
		"setpoint high": "logger:\n  setpoint: 151\n",
		"bad channel":   "adc:\n  channel: 9\n",
		"bad clock":     "clock:\n  set: tomorrow\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Logger.Setpoint = 55
	cfg.RTC.Driver = RTCDS1307

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("11:51:01 03/01/2026 1")
	require.NoError(t, err)
	assert.Equal(t, logic.ClockState{Hour: 11, Minute: 51, Second: 1, Day: 3, Month: 1, Year: 2026, Weekday: 1}, got)

	got, err = ParseClock("23:59:59 31/12/2030")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Weekday, "weekday computed from the date")

	_, err = ParseClock("11:51:01 03/01/2026 7")
	assert.Error(t, err)
	_, err = ParseClock("25:00:00 03/01/2026")
	assert.Error(t, err)
}
