// Package keypad decodes a 4x4 matrix keypad into logical keys.
package keypad

import (
	"errors"
	"fmt"

	"github.com/sweeney/temp-logger/internal/gpio"
	"github.com/sweeney/temp-logger/internal/logic"
)

// Keypad reports presses.
type Keypad interface {
	// AnyDown reports whether any key is held.
	AnyDown() (bool, error)

	// Scan identifies the held key.
	// Returns ErrNoKey if nothing is held by the time the rows are scanned.
	Scan() (logic.Key, error)
}

// ErrNoKey is returned by Scan when the key was released before the scan.
var ErrNoKey = errors.New("keypad: no key held")

// Size is the number of rows and of columns.
const Size = 4

// Map translates a (row, column) position into a logical key.
type Map [Size][Size]logic.Key

// DefaultMap lays out 12 logical keys over 16 positions:
//
//	1 2 3 ⌫
//	4 5 6 ↵
//	7 8 9 ⌫
//	⌫ 0 ↵ ↵
var DefaultMap = Map{
	{1, 2, 3, logic.KeyBackspace},
	{4, 5, 6, logic.KeyEnter},
	{7, 8, 9, logic.KeyBackspace},
	{logic.KeyBackspace, 0, logic.KeyEnter, logic.KeyEnter},
}

const idle = 1<<Size - 1

// Matrix scans a keypad whose rows are outputs and columns are pulled-up
// inputs. A pressed key connects its row to its column, so a column reads
// low while its row is driven low.
type Matrix struct {
	Rows gpio.OutputPort
	Cols gpio.InputPort
	Map  Map
}

// NewMatrix creates a Matrix with all rows driven low.
func NewMatrix(rows gpio.OutputPort, cols gpio.InputPort, m Map) (*Matrix, error) {
	k := &Matrix{Rows: rows, Cols: cols, Map: m}
	if err := rows.Write(0); err != nil {
		return nil, fmt.Errorf("drive rows: %w", err)
	}
	return k, nil
}

// AnyDown reads the columns with every row low.
func (k *Matrix) AnyDown() (bool, error) {
	cols, err := k.Cols.Read()
	if err != nil {
		return false, fmt.Errorf("read columns: %w", err)
	}
	return cols&idle != idle, nil
}

// Scan drives one row low at a time and stops at the first row that pulls
// a column down. Rows are left all low afterwards so AnyDown keeps working.
func (k *Matrix) Scan() (logic.Key, error) {
	row, cols, err := k.findRow()
	if rerr := k.Rows.Write(0); rerr != nil && err == nil {
		err = fmt.Errorf("reset rows: %w", rerr)
	}
	if err != nil {
		return 0, err
	}
	if row < 0 {
		return 0, ErrNoKey
	}
	return k.Map[row][firstLow(cols)], nil
}

func (k *Matrix) findRow() (int, uint32, error) {
	for row := 0; row < Size; row++ {
		if err := k.Rows.Write(idle &^ (1 << uint(row))); err != nil {
			return -1, 0, fmt.Errorf("drive row %d: %w", row, err)
		}
		cols, err := k.Cols.Read()
		if err != nil {
			return -1, 0, fmt.Errorf("read columns: %w", err)
		}
		if cols&idle != idle {
			return row, cols, nil
		}
	}
	return -1, 0, nil
}

// firstLow returns the lowest column reading low. Callers guarantee one is.
func firstLow(cols uint32) int {
	for c := 0; c < Size-1; c++ {
		if cols&(1<<uint(c)) == 0 {
			return c
		}
	}
	return Size - 1
}
