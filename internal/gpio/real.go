//go:build linux

package gpio

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/multierr"
)

// RealReader reads the panel from actual hardware using the Linux GPIO
// character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines map[Button]*gpiocdev.Line
}

// NewRealReader requests one input line per wired button. Buttons missing
// from pins read as released.
func NewRealReader(chipName string, pins map[Button]int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, errors.Wrap(err, "open gpio chip")
	}

	r := &RealReader{chip: chip, lines: make(map[Button]*gpiocdev.Line, len(pins))}
	for btn, pin := range pins {
		// Pull-up so a released button reads inactive through the optocoupler.
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "request %s pin %d", btn, pin)
		}
		r.lines[btn] = line
	}
	return r, nil
}

// Read returns the logical panel state.
// Inverts raw GPIO: raw inactive (0) = pressed.
func (r *RealReader) Read() (Panel, error) {
	var p Panel
	for btn, line := range r.lines {
		raw, err := line.Value()
		if err != nil {
			return Panel{}, errors.Wrapf(err, "read %s pin", btn)
		}
		p[btn] = raw == 0
	}
	return p, nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before
// closing so external hardware cannot hold them in unexpected states during
// early boot.
func (r *RealReader) Close() error {
	var err error
	for btn, line := range r.lines {
		if rerr := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); rerr != nil {
			err = multierr.Append(err, errors.Wrapf(rerr, "reconfigure %s pin", btn))
		}
		if cerr := line.Close(); cerr != nil {
			err = multierr.Append(err, errors.Wrapf(cerr, "close %s pin", btn))
		}
	}
	r.lines = nil
	if r.chip != nil {
		if cerr := r.chip.Close(); cerr != nil {
			err = multierr.Append(err, errors.Wrap(cerr, "close chip"))
		}
		r.chip = nil
	}
	return err
}
