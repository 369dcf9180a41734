package fwc

import (
	"fmt"
	"time"

	"github.com/sweeney/fwc-sim/internal/parameters"
)

// DefaultTransientPowerTolerance is how long a computer keeps its runtime
// without power.
const DefaultTransientPowerTolerance = 500 * time.Millisecond

// PowerState is the condition of a computer as seen from outside.
type PowerState int

const (
	Unpowered PowerState = iota
	TransientHold
	PoweredRunning
	Failed
)

var powerStateNames = [...]string{"UNPOWERED", "TRANSIENT_HOLD", "RUNNING", "FAILED"}

func (s PowerState) String() string {
	if s < 0 || int(s) >= len(powerStateNames) {
		return fmt.Sprintf("PowerState(%d)", int(s))
	}
	return powerStateNames[s]
}

// Computer is one FWC unit. It runs a Runtime while powered, rides through
// power interruptions shorter than its tolerance, and discards the runtime on
// a longer interruption or an injected failure.
type Computer struct {
	id           int
	tolerance    time.Duration
	powered      bool
	failed       bool
	unpoweredFor time.Duration
	runtime      *Runtime
}

// NewComputer creates an unpowered computer. It has been unpowered for its
// whole tolerance, so it starts on the first powered update.
func NewComputer(id int, tolerance time.Duration) *Computer {
	if tolerance < 0 {
		panic(fmt.Sprintf("fwc %d: negative power tolerance %v", id, tolerance))
	}
	return &Computer{id: id, tolerance: tolerance, unpoweredFor: tolerance}
}

func (c *Computer) ID() int { return c.id }

// SetPowered sets the state of the bus supplying the computer for the next
// update.
func (c *Computer) SetPowered(powered bool) { c.powered = powered }

// SetFailed injects or clears a hard failure.
func (c *Computer) SetFailed(failed bool) { c.failed = failed }

func (c *Computer) Update(delta time.Duration, p *parameters.Table) {
	if c.powered {
		c.unpoweredFor = 0
	} else {
		c.unpoweredFor += delta
	}

	if !c.failed && (c.powered || c.unpoweredFor < c.tolerance) {
		if c.runtime == nil {
			c.runtime = NewRuntime()
		}
		c.runtime.Update(delta, p)
	} else {
		c.runtime = nil
	}
}

// Runtime returns nil while the computer is not running.
func (c *Computer) Runtime() *Runtime { return c.runtime }

func (c *Computer) State() PowerState {
	switch {
	case c.runtime == nil && c.failed:
		return Failed
	case c.runtime == nil:
		return Unpowered
	case !c.powered:
		return TransientHold
	default:
		return PoweredRunning
	}
}

// Frame reports the runtime outputs, or an empty frame when there is no
// runtime.
func (c *Computer) Frame() Frame {
	var f Frame
	if c.runtime != nil {
		f = c.runtime.Frame()
	}
	f.FWC = c.id
	f.State = c.State().String()
	return f
}
