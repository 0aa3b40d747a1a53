package rtc

import (
	"fmt"

	"periph.io/x/conn/v3"

	"github.com/sweeney/temp-logger/internal/logic"
)

// DS1307Addr is the fixed I²C address of the DS1307.
const DS1307Addr = 0x68

// The DS1307 does not store the century.
const century = 2000

type register uint8

const (
	rSecond  register = 0x00
	rMinute  register = 0x01
	rHour    register = 0x02
	rWeekday register = 0x03
	rDay     register = 0x04
	rMonth   register = 0x05
	rYear    register = 0x06
)

// clockHalt is bit 7 of the seconds register; set means the oscillator is stopped.
const clockHalt = 0x80

// DS1307 is a battery-backed I²C real-time clock.
type DS1307 struct {
	conn conn.Conn
}

// NewDS1307 wraps an I²C connection (usually &i2c.Dev{Bus: bus, Addr: DS1307Addr})
// and starts the oscillator if it is halted, keeping the stored time.
func NewDS1307(c conn.Conn) (*DS1307, error) {
	d := &DS1307{conn: c}
	var sec [1]byte
	if err := d.readReg(rSecond, sec[:]); err != nil {
		return nil, fmt.Errorf("ds1307 setup: %w", err)
	}
	if sec[0]&clockHalt != 0 {
		if err := d.writeReg(rSecond, sec[0]&^clockHalt); err != nil {
			return nil, fmt.Errorf("ds1307 start oscillator: %w", err)
		}
	}
	return d, nil
}

// Now reads all time registers in one transfer.
func (d *DS1307) Now() (logic.ClockState, error) {
	var buf [rYear + 1]byte
	if err := d.readReg(rSecond, buf[:]); err != nil {
		return logic.ClockState{}, err
	}
	return logic.ClockState{
		Second:  bcdToDec(buf[rSecond] &^ clockHalt),
		Minute:  bcdToDec(buf[rMinute]),
		Hour:    bcdToDec(buf[rHour] & 0x3F),
		Weekday: bcdToDec(buf[rWeekday]) - 1,
		Day:     bcdToDec(buf[rDay]),
		Month:   bcdToDec(buf[rMonth]),
		Year:    bcdToDec(buf[rYear]) + century,
	}, nil
}

// SetTime writes seconds, minutes and hours (24 h mode) in one transfer.
func (d *DS1307) SetTime(hour, minute, second int) error {
	return d.writeReg(rSecond, decToBCD(second), decToBCD(minute), decToBCD(hour))
}

// SetDate writes day, month and year in one transfer.
func (d *DS1307) SetDate(day, month, year int) error {
	if year < century || year >= century+100 {
		return ErrYearOutOfRange
	}
	return d.writeReg(rDay, decToBCD(day), decToBCD(month), decToBCD(year-century))
}

// SetWeekday writes the day-of-week register (stored 1-7).
func (d *DS1307) SetWeekday(wd int) error {
	if err := checkWeekday(wd); err != nil {
		return err
	}
	return d.writeReg(rWeekday, decToBCD(wd+1))
}

// SetField writes a single register.
func (d *DS1307) SetField(f logic.Field, v int) error {
	switch f {
	case logic.FieldSecond:
		return d.writeReg(rSecond, decToBCD(v))
	case logic.FieldMinute:
		return d.writeReg(rMinute, decToBCD(v))
	case logic.FieldHour:
		return d.writeReg(rHour, decToBCD(v))
	case logic.FieldDay:
		return d.writeReg(rDay, decToBCD(v))
	case logic.FieldMonth:
		return d.writeReg(rMonth, decToBCD(v))
	case logic.FieldYear:
		if v < century || v >= century+100 {
			return ErrYearOutOfRange
		}
		return d.writeReg(rYear, decToBCD(v-century))
	}
	return fmt.Errorf("ds1307: unknown field %v", f)
}

func (d *DS1307) writeReg(r register, vals ...byte) error {
	w := append([]byte{byte(r)}, vals...)
	if err := d.conn.Tx(w, nil); err != nil {
		return fmt.Errorf("ds1307 write %#02x: %w", r, err)
	}
	return nil
}

func (d *DS1307) readReg(r register, buf []byte) error {
	if err := d.conn.Tx([]byte{byte(r)}, buf); err != nil {
		return fmt.Errorf("ds1307 read %#02x: %w", r, err)
	}
	return nil
}

func bcdToDec(x byte) int {
	return int(x) - 6*(int(x)>>4)
}

func decToBCD(x int) byte {
	return byte((x / 10 * 16) + (x % 10))
}
