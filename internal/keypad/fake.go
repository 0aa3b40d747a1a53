package keypad

import (
	"errors"

	"github.com/sweeney/temp-logger/internal/logic"
)

// ErrNoKeys is returned once a FakeKeypad has delivered every scripted key.
// It stops a wait that would otherwise block forever.
var ErrNoKeys = errors.New("keypad: script exhausted")

// FakeKeypad replays scripted key presses. Each key reads as held until it
// is scanned; the next AnyDown after the scan reports the release.
type FakeKeypad struct {
	// Keys are the remaining presses.
	Keys []logic.Key

	// Scanned counts calls to Scan that returned a key.
	Scanned int

	// Bounces, if > 0, makes that many scans return ErrNoKey first.
	Bounces int

	released bool
}

// NewFakeKeypad creates a FakeKeypad that will press keys in order.
func NewFakeKeypad(keys ...logic.Key) *FakeKeypad {
	return &FakeKeypad{Keys: keys}
}

// AnyDown reports the current key as held until it has been scanned.
func (f *FakeKeypad) AnyDown() (bool, error) {
	if f.released {
		f.released = false
		f.Keys = f.Keys[1:]
		return false, nil
	}
	if len(f.Keys) == 0 {
		return false, ErrNoKeys
	}
	return true, nil
}

// Scan returns the held key and marks it for release.
func (f *FakeKeypad) Scan() (logic.Key, error) {
	if f.Bounces > 0 {
		f.Bounces--
		return 0, ErrNoKey
	}
	if len(f.Keys) == 0 {
		return 0, ErrNoKeys
	}
	f.released = true
	f.Scanned++
	return f.Keys[0], nil
}

// Remaining returns how many presses have not been consumed.
func (f *FakeKeypad) Remaining() int {
	return len(f.Keys)
}
