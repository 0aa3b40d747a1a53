package logger

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweeney/temp-logger/internal/keypad"
	"github.com/sweeney/temp-logger/internal/logic"
	"github.com/sweeney/temp-logger/internal/poll"
)

// readKey blocks for one complete press: wait for a key down, debounce,
// scan, wait for release. A scan that finds nothing counts as bounce.
func (l *Logger) readKey(ctx context.Context) (logic.Key, error) {
	for {
		if err := poll.Until(ctx, l.sleep, l.set.Poll, l.hw.Keypad.AnyDown); err != nil {
			return 0, fmt.Errorf("wait key: %w", err)
		}
		if err := l.sleep.Sleep(ctx, l.set.KeyDebounce); err != nil {
			return 0, err
		}
		k, err := l.hw.Keypad.Scan()
		if errors.Is(err, keypad.ErrNoKey) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("scan keypad: %w", err)
		}
		if err := poll.Until(ctx, l.sleep, l.set.Poll, poll.Not(l.hw.Keypad.AnyDown)); err != nil {
			return 0, fmt.Errorf("wait key release: %w", err)
		}
		return k, nil
	}
}

// readNumber collects digits until Enter, echoing them at the cursor.
// Backspace drops the last digit. The value is not capped and wraps past
// the uint32 range; callers clamp it.
func (l *Logger) readNumber(ctx context.Context) (uint32, error) {
	var v uint32
	for {
		k, err := l.readKey(ctx)
		if err != nil {
			return 0, err
		}
		p := l.panel()
		switch {
		case k.IsDigit():
			v = v*10 + uint32(k)
			p.char('0' + byte(k))
		case k == logic.KeyBackspace:
			if v > 0 {
				v /= 10
				p.left()
				p.char(' ')
				p.left()
			}
		case k == logic.KeyEnter:
			return v, nil
		}
		if p.err != nil {
			return 0, p.err
		}
	}
}
