package sheets

import "github.com/sweeney/fwc-sim/internal/parameters"

// table builds a parameter table from builder steps.
func table(steps ...func(*parameters.Builder) *parameters.Builder) *parameters.Table {
	b := parameters.NewBuilder()
	for _, step := range steps {
		step(b)
	}
	t := b.Build()
	return &t
}

type fakeNewGround struct{ newGround, inv bool }

func (f fakeNewGround) NewGround() bool  { return f.newGround }
func (f fakeNewGround) Lgciu12Inv() bool { return f.inv }

type fakeGround struct{ ground, immediate bool }

func (f fakeGround) Ground() bool          { return f.ground }
func (f fakeGround) GroundImmediate() bool { return f.immediate }

type fakeEngTakeOff struct{ toCfm [2]bool }

func (f fakeEngTakeOff) EngToCfm(eng int) bool      { return f.toCfm[eng-1] }
func (f fakeEngTakeOff) TlaIdlePwrCfm(eng int) bool { return false }

type fakeEngNotRunning struct{ notRunning [2]bool }

func (f fakeEngNotRunning) EngNotRunning(eng int) bool { return f.notRunning[eng-1] }

// fakePhases answers both ground and air phase queries. Index 0 is unused.
type fakePhases [11]bool

func phase(n int) fakePhases {
	var p fakePhases
	p[n] = true
	return p
}

func (f fakePhases) Phase1() bool  { return f[1] }
func (f fakePhases) Phase2() bool  { return f[2] }
func (f fakePhases) Phase3() bool  { return f[3] }
func (f fakePhases) Phase4() bool  { return f[4] }
func (f fakePhases) Phase5() bool  { return f[5] }
func (f fakePhases) Phase6() bool  { return f[6] }
func (f fakePhases) Phase7() bool  { return f[7] }
func (f fakePhases) Phase8() bool  { return f[8] }
func (f fakePhases) Phase9() bool  { return f[9] }
func (f fakePhases) Phase10() bool { return f[10] }

type fakeLg struct{ down bool }

func (f fakeLg) MainLgDownlocked() bool { return f.down }
func (f fakeLg) LgDownlocked() bool     { return f.down }

type fakeToMemo struct{ on bool }

func (f fakeToMemo) ToMemoComputed() bool { return f.on }

type fakeThresholds struct{ alt200, alt750 bool }

func (f fakeThresholds) Alt200() bool { return f.alt200 }
func (f fakeThresholds) Alt750() bool { return f.alt750 }

type fakeInhibit struct{ inhibit bool }

func (f fakeInhibit) GeneralInhibit() bool { return f.inhibit }

type fakeApTcas struct{ engaged, inhib bool }

func (f fakeApTcas) ApTcasModeEng() bool { return f.engaged }
func (f fakeApTcas) AltAlertInhib() bool { return f.inhib }

type fakeAutopilot struct{ oneEngd, offText bool }

func (f fakeAutopilot) Ap1Engd() bool    { return f.oneEngd }
func (f fakeAutopilot) Ap2Engd() bool    { return false }
func (f fakeAutopilot) OneApEngd() bool  { return f.oneEngd }
func (f fakeAutopilot) ApOffAudio() bool { return false }
func (f fakeAutopilot) ApOffMw() bool    { return false }
func (f fakeAutopilot) ApOffText() bool  { return f.offText }

type fakeStallWarn struct{ warn bool }

func (f fakeStallWarn) StallWarn() bool { return f.warn }

type fakeSpeed struct{ above80, testInhib bool }

func (f fakeSpeed) AcSpeedAbove80Kt() bool { return f.above80 }
func (f fakeSpeed) AdcTestInhib() bool     { return f.testInhib }

type fakeEngRunning struct{ bothNotRunning, running, oneRunning bool }

func (f fakeEngRunning) Eng1And2NotRunning() bool { return f.bothNotRunning }
func (f fakeEngRunning) Eng1Or2Running() bool     { return f.running }
func (f fakeEngRunning) OneEngRunning() bool      { return f.oneRunning }

type fakeTakeoffPower struct{ toPwr bool }

func (f fakeTakeoffPower) CfmFlex() bool      { return false }
func (f fakeTakeoffPower) Eng1Or2ToPwr() bool { return f.toPwr }

type fakeAltitude struct{ h800, h1500, fail bool }

func (f fakeAltitude) HGt800Ft() bool  { return f.h800 }
func (f fakeAltitude) HGt1500Ft() bool { return f.h1500 }
func (f fakeAltitude) HFail() bool     { return f.fail }
