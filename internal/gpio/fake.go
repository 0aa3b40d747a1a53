package gpio

import "errors"

// FakeInput is a test double that returns scripted line levels.
type FakeInput struct {
	// Levels contains scripted values to return.
	// Each call to Read() consumes the next level.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Reads counts calls to Read
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeInput creates a FakeInput with the given levels.
func NewFakeInput(levels ...bool) *FakeInput {
	return &FakeInput{Levels: levels}
}

// Read returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakeInput) Read() (bool, error) {
	f.Reads++
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}

	return level, nil
}

// Close marks the input as closed.
func (f *FakeInput) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the input to the beginning of levels.
func (f *FakeInput) Reset() {
	f.index = 0
	f.Reads = 0
	f.Closed = false
}

// FakeOutput records every level driven onto it.
type FakeOutput struct {
	// Values contains all levels set, in order.
	Values []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// Set records the level.
func (f *FakeOutput) Set(high bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Values = append(f.Values, high)
	return nil
}

// Level returns the last level set (low if never set).
func (f *FakeOutput) Level() bool {
	if len(f.Values) == 0 {
		return false
	}
	return f.Values[len(f.Values)-1]
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// FakePort is both an OutputPort and an InputPort.
type FakePort struct {
	// Writes contains every value written, in order.
	Writes []uint32

	// ReadFunc, if set, computes the value returned by Read.
	// Keypad tests use it to make columns depend on the driven row.
	ReadFunc func() uint32

	// Value is returned by Read when ReadFunc is nil.
	Value uint32

	// WriteError and ReadError, if set, are returned by Write and Read.
	WriteError error
	ReadError  error

	// Closed tracks if Close was called.
	Closed bool
}

// Write records bits.
func (f *FakePort) Write(bits uint32) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, bits)
	return nil
}

// Last returns the last value written (0 if never written).
func (f *FakePort) Last() uint32 {
	if len(f.Writes) == 0 {
		return 0
	}
	return f.Writes[len(f.Writes)-1]
}

// Read returns ReadFunc() or Value.
func (f *FakePort) Read() (uint32, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if f.ReadFunc != nil {
		return f.ReadFunc(), nil
	}
	return f.Value, nil
}

// Close marks the port as closed.
func (f *FakePort) Close() error {
	f.Closed = true
	return nil
}
