package scenario

import (
	"fmt"
	"time"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

// Expectation lists outputs to check at the end of a step. Nil fields are
// not checked. FWC 0 means the frame the pair presents to the cockpit.
type Expectation struct {
	FWC              int     `yaml:"fwc"`
	State            *string `yaml:"state"`
	Phase            *int    `yaml:"phase"`
	ToMemo           *bool   `yaml:"to_memo"`
	LdgMemo          *bool   `yaml:"ldg_memo"`
	AudioAttenuation *bool   `yaml:"audio_attenuation"`
	CChord           *bool   `yaml:"c_chord"`
	AltAlertLight    *bool   `yaml:"alt_alert_light"`
	CavalryCharge    *bool   `yaml:"cavalry_charge"`
	ApOffWarning     *bool   `yaml:"ap_off_warning"`
	StallWarning     *bool   `yaml:"stall_warning"`
	MasterWarning    *bool   `yaml:"master_warning"`

	// Sounds lists aural alerts that must be playing. Others may play too.
	Sounds []string `yaml:"sounds"`
}

// Check compares f against the expectation and describes each mismatch.
func (e Expectation) Check(f fwc.Frame) []string {
	var failures []string
	if e.State != nil && f.State != *e.State {
		failures = append(failures, fmt.Sprintf("state: expected %s, got %s", *e.State, f.State))
	}
	if e.Phase != nil && f.FlightPhase != *e.Phase {
		failures = append(failures, fmt.Sprintf("phase: expected %d, got %d", *e.Phase, f.FlightPhase))
	}

	flags := []struct {
		name     string
		expected *bool
		actual   bool
	}{
		{"to_memo", e.ToMemo, f.ToMemo},
		{"ldg_memo", e.LdgMemo, f.LdgMemo},
		{"audio_attenuation", e.AudioAttenuation, f.AudioAttenuation},
		{"c_chord", e.CChord, f.CChord},
		{"alt_alert_light", e.AltAlertLight, f.AltAlertLight},
		{"cavalry_charge", e.CavalryCharge, f.CavalryCharge},
		{"ap_off_warning", e.ApOffWarning, f.ApOffWarning},
		{"stall_warning", e.StallWarning, f.StallWarning},
		{"master_warning", e.MasterWarning, f.MasterWarning},
	}
	for _, fl := range flags {
		if fl.expected != nil && *fl.expected != fl.actual {
			failures = append(failures, fmt.Sprintf("%s: expected %v, got %v", fl.name, *fl.expected, fl.actual))
		}
	}

	playing := make(map[string]bool, len(f.Sounds))
	for _, s := range f.Sounds {
		playing[s] = true
	}
	for _, s := range e.Sounds {
		if !playing[s] {
			failures = append(failures, fmt.Sprintf("sounds: expected %s, got %v", s, f.Sounds))
		}
	}
	return failures
}

// Result is the outcome of one step.
type Result struct {
	Step     int
	Name     string
	Frames   []fwc.Frame
	Failures []string
}

// Passed reports whether every expectation of the step held.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// Observer is called after every tick with the frame the pair presents.
type Observer func(t Tick, f fwc.Frame)

// Replay runs the scenario against a fresh FWC pair and checks every
// step's expectations.
func Replay(s *Scenario, tolerance time.Duration, observe Observer) ([]Result, error) {
	sys := fwc.NewSystem(tolerance)
	player := NewPlayer(s)
	results := make([]Result, 0, len(s.Steps))

	for !player.Done() {
		t, err := player.Next()
		if err != nil {
			return results, err
		}
		t.Apply(sys)
		if observe != nil {
			observe(t, sys.Frame())
		}
		if !t.Last {
			continue
		}

		st := s.Steps[t.Step]
		r := Result{Step: t.Step + 1, Name: st.Name, Frames: sys.Frames()}
		for _, e := range st.Expect {
			f := sys.Frame()
			prefix := ""
			if e.FWC != 0 {
				if e.FWC < 1 || e.FWC > 2 {
					r.Failures = append(r.Failures, fmt.Sprintf("invalid FWC number %d", e.FWC))
					continue
				}
				f = sys.Computer(e.FWC).Frame()
				prefix = fmt.Sprintf("fwc%d ", e.FWC)
			}
			for _, msg := range e.Check(f) {
				r.Failures = append(r.Failures, prefix+msg)
			}
		}
		results = append(results, r)
	}
	return results, nil
}
