// Package scenario loads scripted parameter sequences from YAML and plays
// them to the FWC pair one tick at a time.
package scenario

import (
	"bytes"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

// DefaultTick is used when neither the scenario nor a step sets a tick.
const DefaultTick = 100 * time.Millisecond

// Scenario is a named list of steps. Parameter assignments carry over from
// one step to the next unless a step resets the table.
type Scenario struct {
	Name  string        `yaml:"name"`
	Tick  time.Duration `yaml:"tick"`
	Steps []Step        `yaml:"steps"`
}

// Step holds the inputs for a stretch of simulated time and, optionally,
// the outputs expected at its end.
type Step struct {
	Name     string                `yaml:"name"`
	Duration time.Duration         `yaml:"duration"`
	Tick     time.Duration         `yaml:"tick"`
	Reset    bool                  `yaml:"reset"`
	Presets  []string              `yaml:"presets"`
	Set      map[string]Assignment `yaml:"set"`
	Power    Overrides             `yaml:"power"`
	Failed   Overrides             `yaml:"failed"`
	Expect   []Expectation         `yaml:"expect"`
}

// Overrides switches a boolean input of each FWC. Unset entries keep their
// previous value.
type Overrides struct {
	FWC1 *bool `yaml:"fwc1"`
	FWC2 *bool `yaml:"fwc2"`
}

func (o Overrides) apply(state *[2]bool) {
	if o.FWC1 != nil {
		state[0] = *o.FWC1
	}
	if o.FWC2 != nil {
		state[1] = *o.FWC2
	}
}

// Assignment is a parameter value with its sign status. In YAML it is either
// a mapping {value, ssm} or a bare scalar, which is taken as normal
// operation.
type Assignment struct {
	Value float64 `yaml:"value"`
	SSM   string  `yaml:"ssm"`
}

func (a *Assignment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var b bool
		if err := node.Decode(&b); err == nil {
			if b {
				a.Value = 1
			}
			return nil
		}
		return node.Decode(&a.Value)
	}

	type plain Assignment
	return node.Decode((*plain)(a))
}

func (a Assignment) signStatus() (arinc429.SignStatus, error) {
	if a.SSM == "" {
		return arinc429.NormalOperation, nil
	}
	return arinc429.ParseSignStatus(a.SSM)
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if s.Tick == 0 {
		s.Tick = DefaultTick
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks durations and resolves every preset, parameter name and
// sign status.
func (s *Scenario) Validate() error {
	if s.Tick < 0 {
		return errors.Errorf("negative tick %v", s.Tick)
	}
	if len(s.Steps) == 0 {
		return errors.New("no steps")
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i+1, step.Name)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.Duration <= 0 {
		return errors.Errorf("duration must be positive, got %v", st.Duration)
	}
	if st.Tick < 0 {
		return errors.Errorf("negative tick %v", st.Tick)
	}
	for _, e := range st.Expect {
		if e.FWC < 0 || e.FWC > 2 {
			return errors.Errorf("invalid FWC number %d", e.FWC)
		}
	}
	return st.apply(parameters.NewBuilder())
}

// apply runs the step's table changes against b.
func (st Step) apply(b *parameters.Builder) error {
	for _, name := range st.Presets {
		if err := b.Preset(name); err != nil {
			return err
		}
	}
	for name, a := range st.Set {
		ssm, err := a.signStatus()
		if err != nil {
			return errors.Wrapf(err, "parameter %s", name)
		}
		if err := b.Set(name, a.Value, ssm); err != nil {
			return err
		}
	}
	return nil
}
