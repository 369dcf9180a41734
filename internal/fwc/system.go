package fwc

import (
	"fmt"
	"time"

	"github.com/sweeney/fwc-sim/internal/parameters"
)

// System is the pair of FWCs fitted to the aircraft.
type System struct {
	computers [2]*Computer
}

func NewSystem(tolerance time.Duration) *System {
	return &System{computers: [2]*Computer{
		NewComputer(1, tolerance),
		NewComputer(2, tolerance),
	}}
}

// Computer returns FWC n, numbered from 1.
func (s *System) Computer(n int) *Computer {
	if n < 1 || n > len(s.computers) {
		panic(fmt.Sprintf("invalid FWC number %d", n))
	}
	return s.computers[n-1]
}

func (s *System) SetPowered(n int, powered bool) { s.Computer(n).SetPowered(powered) }
func (s *System) SetFailed(n int, failed bool)   { s.Computer(n).SetFailed(failed) }

// Update runs both computers on the same parameter table.
func (s *System) Update(delta time.Duration, p *parameters.Table) {
	for _, c := range s.computers {
		c.Update(delta, p)
	}
}

// Frames returns one frame per computer, FWC 1 first.
func (s *System) Frames() []Frame {
	frames := make([]Frame, 0, len(s.computers))
	for _, c := range s.computers {
		frames = append(frames, c.Frame())
	}
	return frames
}

// Frame returns the frame of the first computer with a runtime, falling back
// to FWC 1 when neither is running.
func (s *System) Frame() Frame {
	for _, c := range s.computers {
		if c.Runtime() != nil {
			return c.Frame()
		}
	}
	return s.computers[0].Frame()
}
