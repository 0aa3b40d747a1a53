package logger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/rtc"
)

// Serial notices sent when the operator moves through the menu.
const (
	noticeTimeEdit = " ***Time Editing Mode Activated***\n\r"
	noticeSPEdit   = " ***SP Editing Mode Activated***\n\r"
	noticeExit     = " ***Editing Mode DeActivated***\n\r"
)

var fieldPrompts = [...]string{
	logic.FieldHour:   "Enter Hour:",
	logic.FieldMinute: "Enter Minute:",
	logic.FieldSecond: "Enter Second:",
	logic.FieldDay:    "Enter Date:",
	logic.FieldMonth:  "Enter Month:",
	logic.FieldYear:   "Enter Year:",
}

// Time menu keys beyond the six fields.
const (
	keyWeekday logic.Key = 7
	keySave    logic.Key = 8
)

// menu runs the root edit menu until the operator picks exit. The live loop
// is suspended for the whole time.
func (l *Logger) menu(ctx context.Context) error {
	log.Printf("menu: entered")
	defer func() { l.state.Mode = logic.ModeOff }()

	if err := l.showRoot(); err != nil {
		return err
	}
	for {
		k, err := l.readKey(ctx)
		if err != nil {
			return err
		}
		switch k {
		case 1:
			if err := l.send(noticeTimeEdit); err != nil {
				return err
			}
			if err := l.editTime(ctx); err != nil {
				return err
			}
		case 2:
			if err := l.send(noticeSPEdit); err != nil {
				return err
			}
			if err := l.editSetpoint(ctx); err != nil {
				return err
			}
		case 3:
			if err := l.send(noticeExit); err != nil {
				return err
			}
			if err := l.hw.Display.Clear(); err != nil {
				return err
			}
			log.Printf("menu: exit")
			return l.sleep.Sleep(ctx, exitSettle)
		default:
			continue
		}
		if err := l.showRoot(); err != nil {
			return err
		}
	}
}

func (l *Logger) showRoot() error {
	l.state.Mode = logic.ModeMenuRoot
	p := l.panel()
	p.clear()
	p.at(0, 0, "1.EDIT TIME INFO")
	p.at(1, 0, "2.EDIT SP 3.EXIT")
	return p.err
}

func (l *Logger) showTimeMenu() error {
	l.state.Mode = logic.ModeTimeMenu
	p := l.panel()
	p.at(0, 0, "1.H 2.M 3.S 4.D ")
	p.at(1, 0, "5.M 6.Y 7.D 8.E ")
	return p.err
}

// editTime runs the time/date menu until key 8. The menu is redrawn after
// every key.
func (l *Logger) editTime(ctx context.Context) error {
	if err := l.showTimeMenu(); err != nil {
		return err
	}
	for {
		k, err := l.readKey(ctx)
		if err != nil {
			return err
		}
		switch {
		case k >= 1 && k <= 6:
			if err := l.editField(ctx, logic.Field(k-1)); err != nil {
				return err
			}
		case k == keyWeekday:
			if err := l.editWeekday(ctx); err != nil {
				return err
			}
		case k == keySave:
			p := l.panel()
			p.clear()
			p.print("Saved")
			if p.err != nil {
				return p.err
			}
			return l.sleep.Sleep(ctx, savedHold)
		}
		if err := l.showTimeMenu(); err != nil {
			return err
		}
	}
}

// editField prompts for one clock field, clamps and commits it.
func (l *Logger) editField(ctx context.Context, f logic.Field) error {
	l.state.Mode = logic.ModeFieldEdit
	l.state.Field = f

	p := l.panel()
	p.clear()
	p.print(fieldPrompts[f])
	if p.err != nil {
		return p.err
	}
	raw, err := l.readNumber(ctx)
	if err != nil {
		return err
	}
	v := logic.BoundsFor(f).Clamp(raw)
	if err := l.hw.Clock.SetField(f, int(v)); err != nil {
		if errors.Is(err, rtc.ErrYearOutOfRange) {
			log.Printf("edit: %s=%d rejected: %v", f, v, err)
			return nil
		}
		return fmt.Errorf("set %s: %w", f, err)
	}
	log.Printf("edit: %s=%d", f, v)
	return nil
}

// editWeekday shows the weekday picker. A digit 0-6 picks directly; Enter
// takes the weekday of the date currently in the RTC.
func (l *Logger) editWeekday(ctx context.Context) error {
	l.state.Mode = logic.ModeWeekdaySelect

	p := l.panel()
	p.clear()
	p.at(0, 0, "0-S 1-M 2-T 3-W")
	p.at(1, 0, "4-T 5-F 6-S")
	if p.err != nil {
		return p.err
	}

	var wd int
	for {
		k, err := l.readKey(ctx)
		if err != nil {
			return err
		}
		if k <= 6 {
			wd = int(k)
			break
		}
		if k == logic.KeyEnter {
			c, err := l.hw.Clock.Now()
			if err != nil {
				return fmt.Errorf("read clock: %w", err)
			}
			wd = logic.WeekdayOf(c.Day, c.Month, c.Year)
			break
		}
	}
	if err := l.hw.Clock.SetWeekday(wd); err != nil {
		return fmt.Errorf("set weekday: %w", err)
	}
	log.Printf("edit: weekday=%s", logic.WeekdayName(wd))

	p.clear()
	p.print("Day Updated")
	if p.err != nil {
		return p.err
	}
	return l.sleep.Sleep(ctx, dayUpdatedHold)
}

// editSetpoint prompts for the alarm threshold.
func (l *Logger) editSetpoint(ctx context.Context) error {
	l.state.Mode = logic.ModeSetpointEdit

	if err := l.hw.Display.Clear(); err != nil {
		return err
	}
	if err := l.sleep.Sleep(ctx, setpointSettle); err != nil {
		return err
	}
	if err := l.hw.Display.Print("Enter SP:"); err != nil {
		return err
	}
	raw, err := l.readNumber(ctx)
	if err != nil {
		return err
	}
	sp := logic.SetpointBounds.Clamp(raw)
	l.state.Setpoint = int(sp)
	log.Printf("edit: setpoint=%d", sp)

	p := l.panel()
	p.clear()
	p.print("SP Saved")
	if p.err != nil {
		return p.err
	}
	return l.sleep.Sleep(ctx, setpointSavedHold)
}
