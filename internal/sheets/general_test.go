package sheets

import (
	"testing"
	"time"

	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

func radioHeights(h1, h2 float64) *parameters.Table {
	return table(func(b *parameters.Builder) *parameters.Builder { return b.RadioHeights(h1, h2) })
}

func TestGeneralDhDtPositive(t *testing.T) {
	s := NewGeneralDhDtPositiveSheet()

	s.Update(radioHeights(100, 100))
	s.Update(radioHeights(200, 200))
	if !s.DhPositive() {
		t.Error("expected climbing")
	}

	s.Update(radioHeights(150, 150))
	if s.DhPositive() {
		t.Error("expected descending")
	}
}

func TestGeneralDhDtPositive_FallsBackToSecondAltimeter(t *testing.T) {
	s := NewGeneralDhDtPositiveSheet()
	p := table(func(b *parameters.Builder) *parameters.Builder {
		return b.RadioHeights(0, 300).SetNumeric(parameters.RadioHeight1, arinc429.Failed(0.0))
	})

	s.Update(p)
	if !s.DhPositive() {
		t.Error("expected radio altimeter 2 to be used")
	}
}

func TestGeneralCancel_PulsesOnPress(t *testing.T) {
	s := NewGeneralCancelSheet()
	pressed := table(func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.FoMcCancelOn, arinc429.Normal(true))
	})

	s.Update(pressed)
	if !s.McCancelPulseUp() {
		t.Error("expected master caution pulse")
	}
	if s.MwCancelPulseUp() {
		t.Error("expected no master warning pulse")
	}

	s.Update(pressed)
	if s.McCancelPulseUp() {
		t.Error("expected pulse to last one update")
	}
}

func TestGeneralCancel_BothSidesPressed(t *testing.T) {
	s := NewGeneralCancelSheet()
	s.Update(table(func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.CaptMwCancelOn, arinc429.Normal(true))
	}))

	s.Update(table(func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.CaptMwCancelOn, arinc429.Normal(true)).
			SetDiscrete(parameters.FoMwCancelOn, arinc429.Normal(true))
	}))
	if !s.MwCancelPulseUp() {
		t.Error("expected first officer press to pulse while captain holds")
	}
}

func TestLgDownlocked(t *testing.T) {
	s := NewLgDownlockedSheet()
	s.Update(table((*parameters.Builder).GearDownLocked))
	if !s.LgDownlocked() || !s.MainLgDownlocked() {
		t.Error("expected gear downlocked")
	}

	s.Update(table())
	if s.LgDownlocked() || s.MainLgDownlocked() {
		t.Error("expected gear not downlocked")
	}
}

func TestLgDownlocked_SingleLgciu(t *testing.T) {
	lgciu1 := func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.LhGearDownLock1, arinc429.Normal(true)).
			SetDiscrete(parameters.RhGearDownLock1, arinc429.Normal(true)).
			SetDiscrete(parameters.NoseGearDownLock1, arinc429.Normal(true))
	}

	s := NewLgDownlockedSheet()
	s.Update(table(lgciu1))
	if !s.LgDownlocked() {
		t.Error("expected a failed LGCIU 2 to be ignored")
	}

	s.Update(table(lgciu1, func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.NoseGearDownLock2, arinc429.Normal(false))
	}))
	if s.LgDownlocked() {
		t.Error("expected disagreeing LGCIUs to report not downlocked")
	}
	if !s.MainLgDownlocked() {
		t.Error("expected main gear still downlocked")
	}
}

func TestEng1StartSequence(t *testing.T) {
	s := NewEng1StartSequenceSheet()
	p := table(func(b *parameters.Builder) *parameters.Builder { return b.MasterLeverOn(1) })

	s.Update(29*time.Second, p)
	if s.Eng1TempoMasterLever1On() {
		t.Error("expected lever tempo after 30s only")
	}
	s.Update(time.Second, p)
	if !s.Eng1TempoMasterLever1On() {
		t.Error("expected lever tempo")
	}
}

func TestEng2StartSequence_Phase5To30s(t *testing.T) {
	s := NewEng2StartSequenceSheet()
	p := table()

	s.Update(time.Second, p, phase(4), fakePhases{})
	if s.Phase5To30s() {
		t.Error("expected nothing during phase 4")
	}

	s.Update(time.Second, p, fakePhases{}, phase(5))
	if !s.Phase5To30s() {
		t.Error("expected phase 5 start window")
	}

	s.Update(30*time.Second, p, fakePhases{}, phase(5))
	if s.Phase5To30s() {
		t.Error("expected window to close after 30s")
	}
}

func TestAudioAttenuation(t *testing.T) {
	tests := []struct {
		name string
		gnd  fakeGround
		eng  fakeEngNotRunning
		want bool
	}{
		{"ground engines off", onGround, fakeEngNotRunning{notRunning: [2]bool{true, true}}, true},
		{"ground one engine", onGround, fakeEngNotRunning{notRunning: [2]bool{true, false}}, false},
		{"airborne", fakeGround{}, fakeEngNotRunning{notRunning: [2]bool{true, true}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAudioAttenuationSheet()
			s.Update(tt.gnd, tt.eng)
			if s.AudioAttenuation() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, s.AudioAttenuation())
			}
		})
	}
}

type fakeCancel struct{ mw, mc bool }

func (f fakeCancel) MwCancelPulseUp() bool { return f.mw }
func (f fakeCancel) McCancelPulseUp() bool { return f.mc }

type fakeUnvoluntary struct{ audio, mw bool }

func (f fakeUnvoluntary) ApOffWarning() bool { return f.audio }
func (f fakeUnvoluntary) ApOffAudio() bool   { return f.audio }
func (f fakeUnvoluntary) ApUnvolOff() bool   { return f.audio }
func (f fakeUnvoluntary) ApOffReset() bool   { return false }
func (f fakeUnvoluntary) ApMw() bool         { return f.mw }

func TestMasterWarning_CancelledUntilRaisedAgain(t *testing.T) {
	s := NewMasterWarningSheet()
	vol := fakeAutopilot{}
	stall := fakeStallWarning{on: true}

	s.Update(fakeCancel{}, vol, fakeUnvoluntary{}, stall)
	if !s.MasterWarning() {
		t.Fatal("expected master warning on a stall")
	}

	s.Update(fakeCancel{}, vol, fakeUnvoluntary{}, stall)
	if !s.MasterWarning() {
		t.Error("expected master warning to stay on")
	}

	s.Update(fakeCancel{mw: true}, vol, fakeUnvoluntary{}, stall)
	if s.MasterWarning() {
		t.Error("expected cancel to put the light out")
	}

	s.Update(fakeCancel{}, vol, fakeUnvoluntary{}, stall)
	if s.MasterWarning() {
		t.Error("expected light to stay out while the same warning persists")
	}

	s.Update(fakeCancel{}, vol, fakeUnvoluntary{}, fakeStallWarning{})
	s.Update(fakeCancel{}, vol, fakeUnvoluntary{}, stall)
	if !s.MasterWarning() {
		t.Error("expected a new stall to light master warning again")
	}
}

func TestMasterWarning_UnvoluntaryAutopilotDisconnect(t *testing.T) {
	s := NewMasterWarningSheet()
	s.Update(fakeCancel{}, fakeAutopilot{}, fakeUnvoluntary{audio: true}, fakeStallWarning{})
	if !s.MasterWarning() {
		t.Fatal("expected master warning on an involuntary disconnect")
	}

	s.Update(fakeCancel{}, fakeAutopilot{}, fakeUnvoluntary{audio: true, mw: true}, fakeStallWarning{})
	if s.MasterWarning() {
		t.Error("expected acknowledgement to put the light out")
	}
}

func TestMasterWarning_OffWhenRequestDrops(t *testing.T) {
	s := NewMasterWarningSheet()
	s.Update(fakeCancel{}, fakeAutopilot{}, fakeUnvoluntary{}, fakeStallWarning{on: true})
	s.Update(fakeCancel{}, fakeAutopilot{}, fakeUnvoluntary{}, fakeStallWarning{})
	if s.MasterWarning() {
		t.Error("expected master warning off once nothing requests it")
	}
}
