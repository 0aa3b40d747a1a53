package gpio

import (
	"errors"
	"testing"
)

func TestFakeInputRead(t *testing.T) {
	f := NewFakeInput(true, false, true)

	want := []bool{true, false, true, true}
	for i, w := range want {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: expected %v, got %v", i, w, got)
		}
	}
	if f.Reads != 4 {
		t.Errorf("expected 4 reads, got %d", f.Reads)
	}
}

func TestFakeInputNoLevels(t *testing.T) {
	f := NewFakeInput()

	_, err := f.Read()
	if err == nil {
		t.Error("expected error with no levels")
	}
}

func TestFakeInputError(t *testing.T) {
	f := NewFakeInput(true)
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil || err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeInputReset(t *testing.T) {
	f := NewFakeInput(false, true)
	f.Read()
	f.Close()

	f.Reset()

	got, _ := f.Read()
	if got != false {
		t.Error("after reset: expected first level again")
	}
	if f.Closed {
		t.Error("reset should clear Closed")
	}
}

func TestSwitchIsActiveLow(t *testing.T) {
	sw := Switch{Pin: NewFakeInput(true, false)}

	pressed, err := sw.Pressed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pressed {
		t.Error("high level should read as released")
	}

	pressed, _ = sw.Pressed()
	if !pressed {
		t.Error("low level should read as pressed")
	}
}

func TestSwitchPropagatesError(t *testing.T) {
	pin := NewFakeInput(true)
	pin.ReadError = errors.New("line gone")
	if _, err := (Switch{Pin: pin}).Pressed(); err == nil {
		t.Error("expected error from switch")
	}
}

func TestFakeOutput(t *testing.T) {
	f := &FakeOutput{}
	if f.Level() {
		t.Error("unset output should be low")
	}
	f.Set(true)
	f.Set(false)
	f.Set(true)
	if !f.Level() {
		t.Error("expected last level high")
	}
	if len(f.Values) != 3 {
		t.Errorf("expected 3 values, got %d", len(f.Values))
	}
}

func TestFakePort(t *testing.T) {
	f := &FakePort{Value: 0x0F}
	f.Write(0x3)
	f.Write(0x5)
	if f.Last() != 0x5 {
		t.Errorf("expected last write 0x5, got %#x", f.Last())
	}
	v, err := f.Read()
	if err != nil || v != 0x0F {
		t.Errorf("Read() = %#x, %v", v, err)
	}

	f.ReadFunc = func() uint32 { return f.Last() ^ 0xF }
	v, _ = f.Read()
	if v != 0xA {
		t.Errorf("ReadFunc: expected 0xA, got %#x", v)
	}
}
