//go:build !linux

package gpio

import "github.com/pkg/errors"

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(chipName string, pins map[Button]int) (*RealReader, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (r *RealReader) Read() (Panel, error) {
	return Panel{}, errors.New("gpio: not supported")
}

func (r *RealReader) Close() error {
	return nil
}
