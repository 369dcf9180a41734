package gpio

import "github.com/pkg/errors"

// FakeReader is a test double that returns scripted panel states.
type FakeReader struct {
	// Samples contains scripted panel states to return.
	// Each call to Read() consumes the next sample.
	Samples []Panel

	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Press returns a panel with the given buttons held.
func Press(buttons ...Button) Panel {
	var p Panel
	for _, b := range buttons {
		p[b] = true
	}
	return p
}

func NewFakeReader(samples []Panel) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (Panel, error) {
	if f.ReadError != nil {
		return Panel{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Panel{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the reader to the first sample.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
