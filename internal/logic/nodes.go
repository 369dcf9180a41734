// Package logic contains the timing primitives the FWC logic sheets are built
// from. The nodes mirror relay-style building blocks: confirmations, monostable
// triggers, edge pulses, latches and hysteresis.
//
// Nodes hold only their own state. Time never comes from a clock; callers pass
// the elapsed time since the previous update, so every node is deterministic.
package logic

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ConfigError reports a node constructed with parameters it cannot honour.
type ConfigError struct {
	Node   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Node, e.Reason)
}

func checkDelay(node string, d time.Duration) error {
	if d < 0 {
		return errors.WithStack(&ConfigError{Node: node, Reason: fmt.Sprintf("negative delay %s", d)})
	}
	return nil
}

// Confirmation passes its leading level through only after the input has held
// that level continuously for the configured delay. Any other input resets the
// timer and yields the opposite level.
type Confirmation struct {
	leading bool
	delay   time.Duration
	since   time.Duration
	output  bool
}

// NewConfirmation panics on a negative delay.
func NewConfirmation(leading bool, delay time.Duration) *Confirmation {
	c, err := NewConfirmationChecked(leading, delay)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// NewConfirmationChecked is NewConfirmation for delays that come from outside
// the program.
func NewConfirmationChecked(leading bool, delay time.Duration) (*Confirmation, error) {
	if err := checkDelay("confirmation", delay); err != nil {
		return nil, err
	}
	return &Confirmation{leading: leading, delay: delay}, nil
}

// Update advances the timer by delta and returns the confirmed output.
func (c *Confirmation) Update(value bool, delta time.Duration) bool {
	if value == c.leading {
		c.since += delta
		if c.since >= c.delay {
			c.output = c.leading
		} else {
			c.output = !c.leading
		}
	} else {
		c.since = 0
		c.output = !c.leading
	}
	return c.output
}

// Output returns the result of the last Update.
func (c *Confirmation) Output() bool { return c.output }

// MonostableTrigger emits true for a fixed duration after an edge on its
// leading level. A retriggerable trigger restarts its timer on every edge;
// otherwise edges are ignored while the output is active.
type MonostableTrigger struct {
	leading       bool
	delay         time.Duration
	retriggerable bool
	lastValue     bool
	remaining     time.Duration
}

// NewMonostable returns a non-retriggerable trigger. It panics on a negative
// duration.
func NewMonostable(leading bool, delay time.Duration) *MonostableTrigger {
	return mustMonostable(leading, delay, false)
}

// NewRetriggerableMonostable returns a trigger that restarts on every edge.
func NewRetriggerableMonostable(leading bool, delay time.Duration) *MonostableTrigger {
	return mustMonostable(leading, delay, true)
}

func mustMonostable(leading bool, delay time.Duration, retriggerable bool) *MonostableTrigger {
	m, err := NewMonostableChecked(leading, delay, retriggerable)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// NewMonostableChecked returns an error instead of panicking.
func NewMonostableChecked(leading bool, delay time.Duration, retriggerable bool) (*MonostableTrigger, error) {
	if err := checkDelay("monostable", delay); err != nil {
		return nil, err
	}
	return &MonostableTrigger{leading: leading, delay: delay, retriggerable: retriggerable}, nil
}

// Update feeds one sample and returns whether the trigger is active.
func (m *MonostableTrigger) Update(value bool, delta time.Duration) bool {
	m.remaining -= delta
	if m.remaining < 0 {
		m.remaining = 0
	}
	if m.retriggerable || m.remaining == 0 {
		if m.lastValue != value && value == m.leading {
			m.remaining = m.delay
		}
	}
	m.lastValue = value
	return m.Output()
}

// Output reports whether time remains on the trigger.
func (m *MonostableTrigger) Output() bool { return m.remaining > 0 }

// Pulse is true for exactly one update after an edge on its leading level.
// On a leading pulse that edge is rising; otherwise it is falling.
type Pulse struct {
	leading   bool
	lastValue bool
	output    bool
}

func NewPulse(leading bool) *Pulse {
	return &Pulse{leading: leading}
}

// Update returns true when value completes an edge on the leading level.
func (p *Pulse) Update(value bool) bool {
	switch {
	case p.output:
		p.output = false
	case p.leading:
		p.output = !p.lastValue && value
	default:
		p.output = p.lastValue && !value
	}
	p.lastValue = value
	return p.output
}

// Output returns the result of the last Update.
func (p *Pulse) Output() bool { return p.output }

// Memory is a set/reset latch. When both inputs are asserted the configured
// precedence decides the output.
type Memory struct {
	setPrecedence bool
	nvm           bool
	output        bool
}

// NewMemory returns a latch whose output is setPrecedence when set and reset
// are both asserted.
func NewMemory(setPrecedence bool) *Memory {
	return &Memory{setPrecedence: setPrecedence}
}

// NewNonVolatileMemory marks a latch as stored in non-volatile memory. The
// flag is informational: runtimes do not survive a power loss.
func NewNonVolatileMemory(setPrecedence bool) *Memory {
	return &Memory{setPrecedence: setPrecedence, nvm: true}
}

// Update applies set and reset and returns the latched output.
func (m *Memory) Update(set, reset bool) bool {
	switch {
	case set && reset:
		m.output = m.setPrecedence
	case set:
		m.output = true
	case reset:
		m.output = false
	}
	return m.output
}

// Output returns the latched value.
func (m *Memory) Output() bool { return m.output }

// NonVolatile reports whether the latch was built with NewNonVolatileMemory.
func (m *Memory) NonVolatile() bool { return m.nvm }

// Ordered is satisfied by the numeric types a Hysteresis can compare.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Hysteresis switches on at or above up and off at or below dn.
type Hysteresis[T Ordered] struct {
	dn, up T
	output bool
}

// NewHysteresis panics when dn is above up.
func NewHysteresis[T Ordered](dn, up T) *Hysteresis[T] {
	if dn > up {
		panic(fmt.Sprintf("hysteresis: lower threshold %v above upper threshold %v", dn, up))
	}
	return &Hysteresis[T]{dn: dn, up: up}
}

// Update compares value against both thresholds and returns the new output.
func (h *Hysteresis[T]) Update(value T) bool {
	if h.output {
		if value <= h.dn {
			h.output = false
		}
	} else if value >= h.up {
		h.output = true
	}
	return h.output
}

// Output returns the result of the last Update.
func (h *Hysteresis[T]) Output() bool { return h.output }

// PrecedingValue hands the value stored on the previous update to logic that
// feeds back on itself.
type PrecedingValue struct {
	value bool
}

func NewPrecedingValue() *PrecedingValue { return &PrecedingValue{} }

// Value returns the value stored by the last Update.
func (p *PrecedingValue) Value() bool { return p.value }

// Update stores value for the next cycle.
func (p *PrecedingValue) Update(value bool) { p.value = value }

// TransientDetection outputs changeSignal on any update where the input
// differs from the previous one, and its inverse otherwise.
type TransientDetection struct {
	changeSignal bool
	previous     bool
	output       bool
}

func NewTransientDetection(changeSignal bool) *TransientDetection {
	return &TransientDetection{changeSignal: changeSignal}
}

// Update compares value with the previous input.
func (t *TransientDetection) Update(value bool) bool {
	if value != t.previous {
		t.output = t.changeSignal
	} else {
		t.output = !t.changeSignal
	}
	t.previous = value
	return t.output
}

// Output returns the result of the last Update.
func (t *TransientDetection) Output() bool { return t.output }
