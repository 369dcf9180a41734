package scenario

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sweeney/fwc-sim/internal/fwc"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

// Tick is one update's worth of input.
type Tick struct {
	Delta   time.Duration
	Table   parameters.Table
	Powered [2]bool
	Failed  [2]bool
	// Step is the index of the step the tick belongs to.
	Step int
	// Last is set on the final tick of a step.
	Last bool
}

// Player walks a scenario tick by tick. Both FWCs start powered.
type Player struct {
	scenario *Scenario
	step     int
	elapsed  time.Duration
	entered  bool
	builder  *parameters.Builder
	powered  [2]bool
	failed   [2]bool
}

func NewPlayer(s *Scenario) *Player {
	p := &Player{scenario: s}
	p.Rewind()
	return p
}

// Rewind returns to the start of the scenario with an empty table.
func (p *Player) Rewind() {
	p.step = 0
	p.elapsed = 0
	p.entered = false
	p.builder = parameters.NewBuilder()
	p.powered = [2]bool{true, true}
	p.failed = [2]bool{}
}

// Done reports whether every step has been played.
func (p *Player) Done() bool { return p.step >= len(p.scenario.Steps) }

// Next returns the following tick. The final tick of a step is shortened so
// that the step lasts exactly its duration.
func (p *Player) Next() (Tick, error) {
	if p.Done() {
		return Tick{}, errors.New("scenario finished")
	}
	st := p.scenario.Steps[p.step]

	if !p.entered {
		if st.Reset {
			p.builder = parameters.NewBuilder()
		}
		if err := st.apply(p.builder); err != nil {
			return Tick{}, errors.Wrapf(err, "step %d (%s)", p.step+1, st.Name)
		}
		st.Power.apply(&p.powered)
		st.Failed.apply(&p.failed)
		p.entered = true
	}

	tick := st.Tick
	if tick == 0 {
		tick = p.scenario.Tick
	}
	if tick == 0 {
		tick = DefaultTick
	}
	delta := tick
	if remaining := st.Duration - p.elapsed; delta >= remaining {
		delta = remaining
	}
	p.elapsed += delta

	t := Tick{
		Delta:   delta,
		Table:   p.builder.Build(),
		Powered: p.powered,
		Failed:  p.failed,
		Step:    p.step,
		Last:    p.elapsed >= st.Duration,
	}
	if t.Last {
		p.step++
		p.elapsed = 0
		p.entered = false
	}
	return t, nil
}

// Apply pushes the tick's power inputs into sys and runs one update.
func (t Tick) Apply(sys *fwc.System) {
	for i := range t.Powered {
		sys.SetPowered(i+1, t.Powered[i])
		sys.SetFailed(i+1, t.Failed[i])
	}
	sys.Update(t.Delta, &t.Table)
}
