package fwc

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

type step = func(*parameters.Builder) *parameters.Builder

func table(steps ...step) *parameters.Table {
	b := parameters.NewBuilder()
	for _, s := range steps {
		s(b)
	}
	t := b.Build()
	return &t
}

func computedSpeeds(kt float64) step {
	return func(b *parameters.Builder) *parameters.Builder { return b.ComputedSpeeds(kt, kt, kt) }
}

func radioHeights(ft float64) step {
	return func(b *parameters.Builder) *parameters.Builder { return b.RadioHeights(ft, ft) }
}

var (
	onGround              = (*parameters.Builder).OnGround
	oneEngineRunning      = (*parameters.Builder).OneEngineRunning
	enginesRunning        = (*parameters.Builder).EnginesRunning
	enginesAtTakeoffPower = (*parameters.Builder).EnginesAtTakeoffPower
	enginesAtIdle         = (*parameters.Builder).EnginesAtIdle
	autoCallOutPins       = (*parameters.Builder).AutoCallOutPins
)

func TestRuntime_IdleUntilFirstUpdate(t *testing.T) {
	r := NewRuntime()
	if r.State() != Idle {
		t.Errorf("expected IDLE, got %s", r.State())
	}

	r.Update(time.Second, table(onGround))
	if r.State() != Running {
		t.Errorf("expected RUNNING, got %s", r.State())
	}
}

func TestRuntime_NoActivePhaseFallsBackTo6(t *testing.T) {
	r := NewRuntime()
	if r.FlightPhase() != 6 {
		t.Errorf("expected phase 6, got %d", r.FlightPhase())
	}
}

func TestRuntime_FlightPhases(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
		want  int
	}{
		{"cold and dark", []step{onGround}, 1},
		{"first engine running", []step{onGround, oneEngineRunning}, 2},
		{"takeoff power", []step{onGround, enginesRunning, enginesAtTakeoffPower}, 3},
		{"above 80 kt", []step{onGround, enginesRunning, enginesAtTakeoffPower, computedSpeeds(85)}, 4},
		{"airborne", []step{enginesRunning, enginesAtTakeoffPower, radioHeights(10), computedSpeeds(157)}, 5},
		{"above 1500 ft", []step{enginesRunning, enginesAtTakeoffPower, radioHeights(1550), computedSpeeds(180)}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := 30 * time.Second
			if tt.want == 1 {
				delta = time.Second
			}

			r := NewRuntime()
			r.Update(delta, table(tt.steps...))
			if got := r.FlightPhase(); got != tt.want {
				t.Errorf("expected phase %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRuntime_FinalApproachIsPhase7(t *testing.T) {
	r := NewRuntime()
	cruise := []step{enginesRunning, enginesAtTakeoffPower, radioHeights(1550), computedSpeeds(180)}

	r.Update(30*time.Second, table(cruise...))
	r.Update(30*time.Second, table(append(cruise, enginesAtIdle, radioHeights(750))...))

	if got := r.FlightPhase(); got != 7 {
		t.Errorf("expected phase 7, got %d", got)
	}
	if !r.ShowLdgMemo() {
		t.Error("expected LDG memo in phase 7")
	}
}

func TestRuntime_AudioAttenuation(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
		want  bool
	}{
		{"on ground engines off", []step{onGround}, true},
		{"no parameters", nil, false},
		{"engines running", []step{onGround, enginesRunning}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRuntime()
			r.Update(30*time.Second, table(tt.steps...))
			if r.AudioAttenuation() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, r.AudioAttenuation())
			}
		})
	}
}

func TestRuntime_ToMemoAfterConfigTest(t *testing.T) {
	r := NewRuntime()
	r.Update(30*time.Second, table(onGround, oneEngineRunning))
	r.Update(100*time.Millisecond, table(onGround, oneEngineRunning, (*parameters.Builder).TakeoffConfigTestPressed))

	if !r.ShowToMemo() {
		t.Error("expected TO memo")
	}
}

func TestRuntime_InstinctiveDisconnect(t *testing.T) {
	r := NewRuntime()
	r.Update(100*time.Millisecond, table(func(b *parameters.Builder) *parameters.Builder { return b.ApEngaged(1) }))
	r.Update(100*time.Millisecond, table(func(b *parameters.Builder) *parameters.Builder {
		return b.ApDisengaged(1).SetDiscrete(parameters.InstincDiscnct1ApEngd, arinc429.Normal(true))
	}))

	if !r.CavalryCharge() {
		t.Error("expected cavalry charge")
	}
	if !r.ApOffText() || !r.ApOffWarning() {
		t.Error("expected AP OFF text and warning")
	}

	sounds := r.Sounds()
	if len(sounds) != 1 || sounds[0] != SoundCavalryCharge {
		t.Errorf("expected [CAVALRY_CHARGE], got %v", sounds)
	}
}

func TestRuntime_MasterWarningOnInstinctiveDisconnect(t *testing.T) {
	r := NewRuntime()
	r.Update(100*time.Millisecond, table(func(b *parameters.Builder) *parameters.Builder { return b.ApEngaged(1) }))
	r.Update(100*time.Millisecond, table(func(b *parameters.Builder) *parameters.Builder {
		return b.ApDisengaged(1).SetDiscrete(parameters.InstincDiscnct1ApEngd, arinc429.Normal(true))
	}))
	if !r.MasterWarning() || !r.Frame().MasterWarning {
		t.Fatal("expected master warning")
	}

	r.Update(3*time.Second, table())
	if r.MasterWarning() {
		t.Error("expected master warning to time out after 3s")
	}
}

type callOutHeard struct {
	Code   string
	Sound  string
	Height float64
}

func TestRuntime_CallOutsOnManualApproach(t *testing.T) {
	r := NewRuntime()

	var heard []callOutHeard
	for h := 600.0; h >= 0; h-- {
		r.Update(100*time.Millisecond, table(enginesRunning, enginesAtIdle, autoCallOutPins, radioHeights(h)))
		for _, w := range r.ActiveWarnings() {
			if w.IsCallOut() {
				heard = append(heard, callOutHeard{w.String(), callOutSounds[w].String(), h})
			}
		}
	}

	want := []callOutHeard{
		{"34-00-380", "FIVE_HUNDRED", 511},
		{"34-00-255", "FOUR_HUNDRED", 409},
		{"34-00-260", "THREE_HUNDRED", 309},
		{"34-00-270", "TWO_HUNDRED", 209},
		{"34-00-280", "ONE_HUNDRED", 109},
		{"34-00-290", "FIFTY", 52},
		{"34-00-300", "FORTY", 41},
		{"34-00-310", "THIRTY", 31},
		{"34-00-350", "RETARD", 21},
		{"34-00-330", "TEN", 11},
		{"34-00-340", "FIVE", 5},
	}
	if diff := cmp.Diff(want, heard); diff != "" {
		t.Errorf("call-outs mismatch (-want +got):\n%s", diff)
	}
}

func TestRuntime_CallOutsSilentWithoutPins(t *testing.T) {
	r := NewRuntime()
	for h := 600.0; h >= 0; h-- {
		r.Update(100*time.Millisecond, table(enginesRunning, enginesAtIdle, radioHeights(h)))
		for _, w := range r.ActiveWarnings() {
			if w.IsCallOut() {
				t.Fatalf("expected no programmed call-outs, got %s at %v ft", w, h)
			}
		}
	}
}

func TestRuntime_CallOutsInhibitedWithAltimetersLost(t *testing.T) {
	r := NewRuntime()
	for i := 0; i < 50; i++ {
		r.Update(100*time.Millisecond, table(enginesRunning, enginesAtIdle, autoCallOutPins))
		if !r.AutoCallOutInhibited() {
			t.Fatal("expected call-outs inhibited")
		}
		for _, w := range r.ActiveWarnings() {
			if w.IsCallOut() {
				t.Fatalf("expected no call-outs, got %s", w)
			}
		}
	}
}

func TestRuntime_Frame(t *testing.T) {
	r := NewRuntime()
	r.Update(time.Second, table(onGround))

	want := Frame{FlightPhase: 1, AudioAttenuation: true}
	if diff := cmp.Diff(want, r.Frame()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestWarningCode_String(t *testing.T) {
	tests := []struct {
		code WarningCode
		want string
	}{
		{WarningCode{0, 0, 10}, "00-00-010"},
		{WarningCode{21, 27, 10}, "21-27-010"},
		{CChordWarning, "22-00-050"},
		{WarningCode{77, 0, 80}, "77-00-080"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestSound_String(t *testing.T) {
	if SoundCchord.String() != "CCHORD" {
		t.Errorf("expected CCHORD, got %s", SoundCchord)
	}
	if Sound(42).String() != "Sound(42)" {
		t.Errorf("expected Sound(42), got %s", Sound(42))
	}
}
