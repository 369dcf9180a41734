package scenario

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/fwc"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

const minimal = `
name: minimal
steps:
  - name: parked
    duration: 1s
    presets: [on_ground]
`

func TestParse_Defaults(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, DefaultTick, s.Tick)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, time.Second, s.Steps[0].Duration)
	assert.Equal(t, []string{"on_ground"}, s.Steps[0].Presets)
}

func TestParse_Assignments(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - duration: 1s
    set:
      to_config_test: true
      radio_height_1: 750
      radio_height_2: {value: 10000, ssm: NCD}
      computed_speed_1: {value: 85}
`))
	require.NoError(t, err)

	set := s.Steps[0].Set
	assert.Equal(t, Assignment{Value: 1}, set["to_config_test"])
	assert.Equal(t, Assignment{Value: 750}, set["radio_height_1"])
	assert.Equal(t, Assignment{Value: 10000, SSM: "NCD"}, set["radio_height_2"])
	assert.Equal(t, Assignment{Value: 85}, set["computed_speed_1"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"no steps", "name: empty\n", "no steps"},
		{"zero duration", "steps:\n  - name: a\n", "duration must be positive"},
		{"unknown preset", "steps:\n  - duration: 1s\n    presets: [cruise]\n", `unknown preset "cruise"`},
		{"unknown parameter", "steps:\n  - duration: 1s\n    set: {flaps: 1}\n", `unknown parameter "flaps"`},
		{"bad ssm", "steps:\n  - duration: 1s\n    set: {radio_height_1: {value: 1, ssm: XX}}\n", "radio_height_1"},
		{"unknown field", "steps:\n  - duration: 1s\n    wind: 10\n", "wind"},
		{"invalid fwc", "steps:\n  - duration: 1s\n    expect: [{fwc: 3}]\n", "invalid FWC number 3"},
		{"negative tick", "tick: -1s\nsteps:\n  - duration: 1s\n", "negative tick"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_ErrorNamesStep(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - name: ok\n    duration: 1s\n  - name: broken\n    duration: 1s\n    presets: [nope]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (broken)")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}

func TestPlayer_SplitsStepsIntoTicks(t *testing.T) {
	s, err := Parse([]byte(`
tick: 400ms
steps:
  - duration: 1s
  - duration: 300ms
    tick: 1s
`))
	require.NoError(t, err)

	p := NewPlayer(s)
	var deltas []time.Duration
	var last []bool
	for !p.Done() {
		tick, err := p.Next()
		require.NoError(t, err)
		deltas = append(deltas, tick.Delta)
		last = append(last, tick.Last)
	}

	assert.Equal(t, []time.Duration{400 * time.Millisecond, 400 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, deltas)
	assert.Equal(t, []bool{false, false, true, true}, last)

	_, err = p.Next()
	assert.Error(t, err)
}

func TestPlayer_AssignmentsCarryOver(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - duration: 100ms
    set: {radio_height_1: 750}
  - duration: 100ms
    set: {radio_height_2: {value: 0, ssm: FW}}
  - duration: 100ms
    reset: true
`))
	require.NoError(t, err)
	p := NewPlayer(s)

	first, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, arinc429.Normal(750.0), first.Table.Numeric(parameters.RadioHeight1))

	second, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, arinc429.Normal(750.0), second.Table.Numeric(parameters.RadioHeight1))
	assert.True(t, second.Table.Numeric(parameters.RadioHeight2).IsFailureWarning())

	third, err := p.Next()
	require.NoError(t, err)
	assert.True(t, third.Table.Numeric(parameters.RadioHeight1).IsFailureWarning())
}

func TestPlayer_PowerOverridesPersist(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - duration: 100ms
    power: {fwc2: false}
  - duration: 100ms
    failed: {fwc1: true}
  - duration: 100ms
    power: {fwc2: true}
`))
	require.NoError(t, err)
	p := NewPlayer(s)

	var got [][2]bool
	var failed [][2]bool
	for !p.Done() {
		tick, err := p.Next()
		require.NoError(t, err)
		got = append(got, tick.Powered)
		failed = append(failed, tick.Failed)
	}

	assert.Equal(t, [][2]bool{{true, false}, {true, false}, {true, true}}, got)
	assert.Equal(t, [][2]bool{{false, false}, {true, false}, {true, false}}, failed)
}

func TestPlayer_Rewind(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)
	p := NewPlayer(s)

	for !p.Done() {
		_, err := p.Next()
		require.NoError(t, err)
	}
	p.Rewind()
	assert.False(t, p.Done())
}

func TestExpectation_Check(t *testing.T) {
	phase, state, memo := 2, "RUNNING", true
	e := Expectation{Phase: &phase, State: &state, ToMemo: &memo}

	assert.Empty(t, e.Check(fwc.Frame{State: "RUNNING", FlightPhase: 2, ToMemo: true}))
	assert.Equal(t,
		[]string{"phase: expected 2, got 3", "to_memo: expected true, got false"},
		e.Check(fwc.Frame{State: "RUNNING", FlightPhase: 3}))
}

func TestExpectation_CheckSoundsAndMasterWarning(t *testing.T) {
	mw := true
	e := Expectation{MasterWarning: &mw, Sounds: []string{"FIFTY"}}

	assert.Empty(t, e.Check(fwc.Frame{MasterWarning: true, Sounds: []string{"FIFTY", "CCHORD"}}))
	assert.Equal(t,
		[]string{"master_warning: expected true, got false", "sounds: expected FIFTY, got [FORTY]"},
		e.Check(fwc.Frame{Sounds: []string{"FORTY"}}))
}

func TestReplay_ReportsFailures(t *testing.T) {
	s, err := Parse([]byte(`
tick: 1s
steps:
  - name: parked
    duration: 1s
    presets: [on_ground]
    expect:
      - phase: 2
      - fwc: 2
        phase: 1
`))
	require.NoError(t, err)

	results, err := Replay(s, fwc.DefaultTransientPowerTolerance, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed())
	assert.Equal(t, []string{"phase: expected 2, got 1"}, results[0].Failures)
	assert.Len(t, results[0].Frames, 2)
}

func TestReplay_Observer(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)

	var ticks int
	_, err = Replay(s, fwc.DefaultTransientPowerTolerance, func(tick Tick, f fwc.Frame) {
		ticks++
		assert.Equal(t, 1, f.FWC)
	})
	require.NoError(t, err)
	assert.Equal(t, 10, ticks)
}

func TestReplay_BundledScenarios(t *testing.T) {
	paths, err := filepath.Glob("../../scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			results, err := Replay(s, fwc.DefaultTransientPowerTolerance, nil)
			require.NoError(t, err)
			require.Len(t, results, len(s.Steps))
			for _, r := range results {
				assert.Empty(t, r.Failures, "step %d (%s)", r.Step, r.Name)
			}
		})
	}
}
