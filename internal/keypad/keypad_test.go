package keypad

import (
	"errors"
	"testing"

	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/logic"
)

// pressAt wires a fake matrix where the key at (row, col) is held.
func pressAt(row, col int) (*gpio.FakePort, *gpio.FakePort) {
	rows := &gpio.FakePort{}
	cols := &gpio.FakePort{}
	cols.ReadFunc = func() uint32 {
		if row < 0 {
			return idle
		}
		// The held key pulls its column low only while its row is low.
		if rows.Last()&(1<<uint(row)) == 0 {
			return idle &^ (1 << uint(col))
		}
		return idle
	}
	return rows, cols
}

func TestNewMatrixDrivesRowsLow(t *testing.T) {
	rows, cols := pressAt(-1, 0)
	if _, err := NewMatrix(rows, cols, DefaultMap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows.Writes) != 1 || rows.Writes[0] != 0 {
		t.Errorf("expected single write of 0, got %v", rows.Writes)
	}
}

func TestAnyDown(t *testing.T) {
	rows, cols := pressAt(-1, 0)
	k, _ := NewMatrix(rows, cols, DefaultMap)
	down, err := k.AnyDown()
	if err != nil || down {
		t.Errorf("idle keypad: AnyDown() = %v, %v", down, err)
	}

	rows, cols = pressAt(2, 1)
	k, _ = NewMatrix(rows, cols, DefaultMap)
	down, err = k.AnyDown()
	if err != nil || !down {
		t.Errorf("held key: AnyDown() = %v, %v", down, err)
	}
}

func TestScanEveryPosition(t *testing.T) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			rows, cols := pressAt(row, col)
			k, _ := NewMatrix(rows, cols, DefaultMap)

			got, err := k.Scan()
			if err != nil {
				t.Fatalf("(%d,%d): unexpected error: %v", row, col, err)
			}
			if want := DefaultMap[row][col]; got != want {
				t.Errorf("(%d,%d): expected key %d, got %d", row, col, want, got)
			}
			if rows.Last() != 0 {
				t.Errorf("(%d,%d): rows not reset low after scan", row, col)
			}
		}
	}
}

func TestScanStopsAtFirstRow(t *testing.T) {
	rows, cols := pressAt(1, 0)
	k, _ := NewMatrix(rows, cols, DefaultMap)
	k.Scan()

	// init(0), row0, row1, reset(0)
	want := []uint32{0, 0xE, 0xD, 0}
	if len(rows.Writes) != len(want) {
		t.Fatalf("expected writes %v, got %v", want, rows.Writes)
	}
	for i := range want {
		if rows.Writes[i] != want[i] {
			t.Errorf("write %d: expected %#x, got %#x", i, want[i], rows.Writes[i])
		}
	}
}

func TestScanReleasedKey(t *testing.T) {
	rows, cols := pressAt(-1, 0)
	k, _ := NewMatrix(rows, cols, DefaultMap)
	_, err := k.Scan()
	if !errors.Is(err, ErrNoKey) {
		t.Errorf("expected ErrNoKey, got %v", err)
	}
	if rows.Last() != 0 {
		t.Error("rows not reset low after empty scan")
	}
}

func TestScanReadError(t *testing.T) {
	rows, cols := pressAt(0, 0)
	k, _ := NewMatrix(rows, cols, DefaultMap)
	cols.ReadError = errors.New("bus fault")
	if _, err := k.Scan(); err == nil {
		t.Error("expected error")
	}
	if rows.Last() != 0 {
		t.Error("rows not reset low after failed scan")
	}
}

func TestDefaultMapCoversAllKeys(t *testing.T) {
	seen := map[logic.Key]bool{}
	for _, row := range DefaultMap {
		for _, k := range row {
			seen[k] = true
		}
	}
	for k := logic.Key(0); k <= logic.KeyEnter; k++ {
		if !seen[k] {
			t.Errorf("key %d unreachable", k)
		}
	}
}

func TestFakeKeypadPressCycle(t *testing.T) {
	f := NewFakeKeypad(7, logic.KeyEnter)

	down, _ := f.AnyDown()
	if !down {
		t.Fatal("expected first key held")
	}
	k, _ := f.Scan()
	if k != 7 {
		t.Errorf("expected 7, got %d", k)
	}
	down, _ = f.AnyDown()
	if down {
		t.Error("expected release after scan")
	}
	down, _ = f.AnyDown()
	if !down {
		t.Error("expected next key held")
	}
	k, _ = f.Scan()
	if k != logic.KeyEnter {
		t.Errorf("expected enter, got %d", k)
	}
	f.AnyDown()
	if _, err := f.AnyDown(); !errors.Is(err, ErrNoKeys) {
		t.Errorf("expected ErrNoKeys, got %v", err)
	}
}
