// Package fwc runs the logic sheets of a flight warning computer and wraps
// them with the power and failure behaviour of the real unit.
package fwc

import (
	"fmt"
	"time"

	"github.com/sweeney/fwc-sim/internal/parameters"
	"github.com/sweeney/fwc-sim/internal/sheets"
)

// ReadyState tells whether a runtime has evaluated its sheets yet.
type ReadyState int

const (
	Idle ReadyState = iota
	Running
)

func (s ReadyState) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "IDLE"
}

// WarningCode identifies a warning by ATA chapter, section and number.
type WarningCode struct {
	ATA    uint8
	SubATA uint8
	ID     uint16
}

func (c WarningCode) String() string {
	return fmt.Sprintf("%02d-%02d-%03d", c.ATA, c.SubATA, c.ID)
}

// CChordWarning is the altitude alert C-chord.
var CChordWarning = WarningCode{ATA: 22, SubATA: 0, ID: 50}

// Sound is an aural alert requested from the audio playback system.
type Sound int

const (
	SoundCchord Sound = iota
	SoundCrc
	SoundClick
	SoundCavalryCharge
	SoundCricket
	SoundSc
	SoundStall
	SoundForty
	SoundFive
	SoundTen
	SoundTwenty
	SoundThirty
	SoundFifty
	SoundOneHundred
	SoundTwoHundred
	SoundThreeHundred
	SoundFourHundred
	SoundFiveHundred
	SoundOneThousand
	SoundTwoThousand
	SoundTwoThousandFiveHundred
	SoundTwentyFiveHundred
	SoundHundredAbove
	SoundMinimum
	SoundRetard
)

var soundNames = [...]string{
	"CCHORD", "CRC", "CLICK", "CAVALRY_CHARGE", "CRICKET", "SC", "STALL", "FORTY",
	"FIVE", "TEN", "TWENTY", "THIRTY", "FIFTY", "ONE_HUNDRED", "TWO_HUNDRED",
	"THREE_HUNDRED", "FOUR_HUNDRED", "FIVE_HUNDRED", "ONE_THOUSAND", "TWO_THOUSAND",
	"TWO_THOUSAND_FIVE_HUNDRED", "TWENTY_FIVE_HUNDRED", "HUNDRED_ABOVE", "MINIMUM", "RETARD",
}

func (s Sound) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return fmt.Sprintf("Sound(%d)", int(s))
	}
	return soundNames[s]
}

// Runtime is the software of one FWC. It owns every sheet and evaluates them
// in dependency order. Discarding a Runtime loses all latched and timed state.
type Runtime struct {
	state ReadyState

	newGround          *sheets.NewGroundSheet
	ground             *sheets.GroundDetectionSheet
	speed              *sheets.SpeedDetectionSheet
	enginesNotRunning  *sheets.EnginesNotRunningSheet
	engRunning         *sheets.EngRunningSheet
	altitudeDef        *sheets.AltitudeDefSheet
	neoEcu             *sheets.NeoEcuSheet
	tlaMct             *sheets.TlaAtMctOrFlexToCfmSheet
	engTakeOff         *sheets.EngTakeOffCfmSheet
	tlaPwrReverse      *sheets.TlaPwrReverseSheet
	tlaAtCl            *sheets.TlaAtClCfmSheet
	cfmFlightPhases    *sheets.CfmFlightPhasesSheet
	phasesGround       *sheets.FlightPhasesGroundSheet
	phasesAir          *sheets.FlightPhasesAirSheet
	dhDt               *sheets.GeneralDhDtPositiveSheet
	generalCancel      *sheets.GeneralCancelSheet
	lgDownlocked       *sheets.LgDownlockedSheet
	eng1Start          *sheets.Eng1StartSequenceSheet
	eng2Start          *sheets.Eng2StartSequenceSheet
	apOffVoluntary     *sheets.AutopilotOffVoluntarySheet
	apOffUnvoluntary   *sheets.AutopilotOffUnvoluntarySheet
	baroAltitude       *sheets.BaroAltitudeSheet
	altAlertThresholds *sheets.AltitudeAlertThresholdsSheet
	altAlertSlat       *sheets.AltitudeAlertSlatInhibitSheet
	altAlertFmgc       *sheets.AltitudeAlertFmgcInhibitSheet
	altAlertInhibit    *sheets.AltitudeAlertGeneralInhibitSheet
	altAlertApTcas     *sheets.AltitudeAlertApTcasInhibitSheet
	altAlert           *sheets.AltitudeAlertSheet
	altAlertCChord     *sheets.AltitudeAlertCChordSheet
	audioAttenuation   *sheets.AudioAttenuationSheet
	toMemo             *sheets.ToMemoSheet
	ldgMemo            *sheets.LdgMemoSheet
	stallWarn          *sheets.StallWarnSheet
	stallWarning       *sheets.StallWarningSheet
	masterWarning      *sheets.MasterWarningSheet

	gpwsInhibition  *sheets.GpwsInhibitionSheet
	radioAltitude   *sheets.RadioAltitudeSheet
	callOutInhibit  *sheets.AutoCallOutInhibitionSheet
	decisionHeight  *sheets.DecisionHeightSheet
	mdaMdhInhibit   *sheets.MdaMdhInhibitionSheet
	hundredAbove    *sheets.HundredAboveSheet
	minimum         *sheets.MinimumSheet
	callOutInhibits *sheets.CallOutInhibitsSheet
	callOutTriggers *sheets.CallOutTriggersSheet
	fiveFt          *sheets.FiveCallOutSheet
	tenFt           *sheets.TenCallOutSheet
	twentyFt        *sheets.TwentyCallOutSheet
	chained         map[sheets.CallOut]*sheets.ChainedCallOutSheet
	pulsed          map[sheets.CallOut]*sheets.PulseCallOutSheet
	fiveHundredFt   *sheets.FiveHundredCallOutSheet
	high            map[sheets.CallOut]*sheets.HighCallOutSheet
	twentyRetard    *sheets.TwentyRetardCallOutSheet
	tenRetard       *sheets.TenRetardCallOutSheet
	interAudio      *sheets.IntermediateAudioSheet

	monitor *monitor

	// cavalryEmitted is the cavalry charge output of the previous update,
	// fed back into the autopilot sheets.
	cavalryEmitted bool
}

// NewRuntime creates a runtime in the Idle state.
func NewRuntime() *Runtime {
	return &Runtime{
		newGround:          sheets.NewNewGroundSheet(),
		ground:             sheets.NewGroundDetectionSheet(),
		speed:              sheets.NewSpeedDetectionSheet(),
		enginesNotRunning:  sheets.NewEnginesNotRunningSheet(),
		engRunning:         sheets.NewEngRunningSheet(),
		altitudeDef:        sheets.NewAltitudeDefSheet(),
		neoEcu:             sheets.NewNeoEcuSheet(),
		tlaMct:             sheets.NewTlaAtMctOrFlexToCfmSheet(),
		engTakeOff:         sheets.NewEngTakeOffCfmSheet(),
		tlaPwrReverse:      sheets.NewTlaPwrReverseSheet(),
		tlaAtCl:            sheets.NewTlaAtClCfmSheet(),
		cfmFlightPhases:    sheets.NewCfmFlightPhasesSheet(),
		phasesGround:       sheets.NewFlightPhasesGroundSheet(),
		phasesAir:          sheets.NewFlightPhasesAirSheet(),
		dhDt:               sheets.NewGeneralDhDtPositiveSheet(),
		generalCancel:      sheets.NewGeneralCancelSheet(),
		lgDownlocked:       sheets.NewLgDownlockedSheet(),
		eng1Start:          sheets.NewEng1StartSequenceSheet(),
		eng2Start:          sheets.NewEng2StartSequenceSheet(),
		apOffVoluntary:     sheets.NewAutopilotOffVoluntarySheet(),
		apOffUnvoluntary:   sheets.NewAutopilotOffUnvoluntarySheet(),
		baroAltitude:       sheets.NewBaroAltitudeSheet(),
		altAlertThresholds: sheets.NewAltitudeAlertThresholdsSheet(),
		altAlertSlat:       sheets.NewAltitudeAlertSlatInhibitSheet(),
		altAlertFmgc:       sheets.NewAltitudeAlertFmgcInhibitSheet(),
		altAlertInhibit:    sheets.NewAltitudeAlertGeneralInhibitSheet(),
		altAlertApTcas:     sheets.NewAltitudeAlertApTcasInhibitSheet(),
		altAlert:           sheets.NewAltitudeAlertSheet(),
		altAlertCChord:     sheets.NewAltitudeAlertCChordSheet(),
		audioAttenuation:   sheets.NewAudioAttenuationSheet(),
		toMemo:             sheets.NewToMemoSheet(),
		ldgMemo:            sheets.NewLdgMemoSheet(),
		stallWarn:          sheets.NewStallWarnSheet(),
		stallWarning:       sheets.NewStallWarningSheet(),
		masterWarning:      sheets.NewMasterWarningSheet(),

		gpwsInhibition:  sheets.NewGpwsInhibitionSheet(),
		radioAltitude:   sheets.NewRadioAltitudeSheet(),
		callOutInhibit:  sheets.NewAutoCallOutInhibitionSheet(),
		decisionHeight:  sheets.NewDecisionHeightSheet(),
		mdaMdhInhibit:   sheets.NewMdaMdhInhibitionSheet(),
		hundredAbove:    sheets.NewHundredAboveSheet(),
		minimum:         sheets.NewMinimumSheet(),
		callOutInhibits: sheets.NewCallOutInhibitsSheet(),
		callOutTriggers: sheets.NewCallOutTriggersSheet(),
		fiveFt:          sheets.NewFiveCallOutSheet(),
		tenFt:           sheets.NewTenCallOutSheet(),
		twentyFt:        sheets.NewTwentyCallOutSheet(),
		chained: map[sheets.CallOut]*sheets.ChainedCallOutSheet{
			sheets.CallOut30Ft: sheets.NewChainedCallOutSheet(sheets.CallOut30Ft),
			sheets.CallOut40Ft: sheets.NewChainedCallOutSheet(sheets.CallOut40Ft),
			sheets.CallOut50Ft: sheets.NewChainedCallOutSheet(sheets.CallOut50Ft),
		},
		pulsed: map[sheets.CallOut]*sheets.PulseCallOutSheet{
			sheets.CallOut100Ft: sheets.NewPulseCallOutSheet(sheets.CallOut100Ft),
			sheets.CallOut200Ft: sheets.NewPulseCallOutSheet(sheets.CallOut200Ft),
			sheets.CallOut300Ft: sheets.NewPulseCallOutSheet(sheets.CallOut300Ft),
			sheets.CallOut400Ft: sheets.NewPulseCallOutSheet(sheets.CallOut400Ft),
		},
		fiveHundredFt: sheets.NewFiveHundredCallOutSheet(),
		high: map[sheets.CallOut]*sheets.HighCallOutSheet{
			sheets.CallOut1000Ft: sheets.NewHighCallOutSheet(sheets.CallOut1000Ft),
			sheets.CallOut2000Ft: sheets.NewHighCallOutSheet(sheets.CallOut2000Ft),
			sheets.CallOut2500Ft: sheets.NewHighCallOutSheet(sheets.CallOut2500Ft),
			sheets.CallOut2500B:  sheets.NewHighCallOutSheet(sheets.CallOut2500B),
		},
		twentyRetard: sheets.NewTwentyRetardCallOutSheet(),
		tenRetard:    sheets.NewTenRetardCallOutSheet(),
		interAudio:   sheets.NewIntermediateAudioSheet(),

		monitor: newMonitor(),
	}
}

// State returns Idle until the first Update.
func (r *Runtime) State() ReadyState { return r.state }

// Update evaluates every sheet once, advancing their timers by delta.
func (r *Runtime) Update(delta time.Duration, p *parameters.Table) {
	r.updateFlightPhase(delta, p)
	r.updateGeneral(delta, p)
	r.updateAutoFlight(delta, p)
	r.updateMemos(delta, p)
	r.updateCallOuts(delta, p)
	r.updateMonitor()

	r.cavalryEmitted = r.CavalryCharge()
	r.state = Running
}

func (r *Runtime) updateFlightPhase(delta time.Duration, p *parameters.Table) {
	r.newGround.Update(delta, p)
	r.ground.Update(delta, p, r.newGround)
	r.speed.Update(delta, p)
	r.enginesNotRunning.Update(delta, p, r.ground)
	r.engRunning.Update(delta, p, r.enginesNotRunning)
	r.altitudeDef.Update(delta, p)

	r.neoEcu.Update(p)
	r.tlaMct.Update(p)
	r.engTakeOff.Update(p)
	r.tlaPwrReverse.Update(delta, p, r.engTakeOff)
	r.tlaAtCl.Update(p)
	r.cfmFlightPhases.Update(delta, p, r.neoEcu, r.tlaMct, r.tlaPwrReverse, r.altitudeDef, r.tlaAtCl)

	r.phasesGround.Update(delta, p, r.ground, r.speed, r.engRunning, r.cfmFlightPhases)
	r.phasesAir.Update(delta, r.ground, r.altitudeDef, r.cfmFlightPhases, r.phasesGround)
}

func (r *Runtime) updateGeneral(delta time.Duration, p *parameters.Table) {
	r.dhDt.Update(p)
	r.generalCancel.Update(p)
	r.lgDownlocked.Update(p)
	r.eng1Start.Update(delta, p)
	r.eng2Start.Update(delta, p, r.phasesGround, r.phasesAir)
}

func (r *Runtime) updateAutoFlight(delta time.Duration, p *parameters.Table) {
	r.apOffVoluntary.Update(delta, p, r.cavalryEmitted)
	r.apOffUnvoluntary.Update(delta, p, r.apOffVoluntary, r.phasesGround, r.cavalryEmitted)

	r.baroAltitude.Update(p)
	r.altAlertThresholds.Update(p, r.baroAltitude)
	r.altAlertSlat.Update(r.lgDownlocked)
	r.altAlertFmgc.Update(p)
	r.altAlertInhibit.Update(p, r.altAlertSlat, r.altAlertFmgc)
	r.altAlertApTcas.Update(delta, p, r.lgDownlocked, r.altAlertThresholds, r.altAlertInhibit)
	r.altAlert.Update(
		delta, p, r.ground, r.apOffVoluntary, r.altAlertApTcas,
		r.altAlertThresholds, r.altAlertInhibit, r.lgDownlocked,
	)
	r.altAlertCChord.Update(r.altAlert)
}

func (r *Runtime) updateMemos(delta time.Duration, p *parameters.Table) {
	r.audioAttenuation.Update(r.ground, r.enginesNotRunning)

	r.toMemo.Update(delta, p, r.enginesNotRunning, r.phasesGround, r.phasesAir)
	r.ldgMemo.Update(delta, p, r.phasesGround, r.phasesAir, r.lgDownlocked, r.toMemo)

	r.stallWarn.Update(p)
	r.stallWarning.Update(p, r.stallWarn, r.phasesGround, r.phasesAir)

	r.masterWarning.Update(r.generalCancel, r.apOffVoluntary, r.apOffUnvoluntary, r.stallWarning)
}

// updateCallOuts runs the radio altitude call-outs. The lower call-outs go
// first so each chained sheet sees the one below it.
func (r *Runtime) updateCallOuts(delta time.Duration, p *parameters.Table) {
	m := r.monitor

	r.gpwsInhibition.Update(delta, p)
	r.radioAltitude.Update(delta, p)
	r.callOutInhibit.Update(
		p, r.radioAltitude, r.stallWarning, r.ground, r.cfmFlightPhases,
		r.phasesGround, r.eng1Start, r.eng2Start,
	)
	r.decisionHeight.Update(p)
	r.mdaMdhInhibit.Update(delta, p, r.stallWarning, r.gpwsInhibition, r.decisionHeight, r.callOutInhibit)
	r.hundredAbove.Update(delta, p, r.decisionHeight, r.mdaMdhInhibit, m.hundredAboveGenerated)
	r.minimum.Update(
		delta, p, r.decisionHeight, r.mdaMdhInhibit, r.hundredAbove,
		r.radioAltitude, m.minimumGenerated,
	)
	r.callOutInhibits.Update(r.radioAltitude, r.gpwsInhibition, r.dhDt, r.minimum)
	r.callOutTriggers.Update(delta, p, r.radioAltitude, r.gpwsInhibition, r.callOutInhibits)

	inhib, trig := r.callOutInhibit, r.callOutTriggers
	r.twentyRetard.Update(delta, p, inhib, r.tlaMct, r.phasesGround, trig, r.apOffVoluntary)
	r.tenRetard.Update(delta, p, inhib, r.twentyRetard, trig, r.apOffVoluntary)

	r.fiveFt.Update(delta, inhib, trig)
	r.tenFt.Update(delta, p, inhib, trig, r.apOffVoluntary, r.fiveFt)
	r.twentyFt.Update(delta, p, inhib, trig, r.apOffVoluntary, r.tenFt)
	r.chained[sheets.CallOut30Ft].Update(delta, inhib, trig, r.twentyFt)
	r.chained[sheets.CallOut40Ft].Update(delta, inhib, trig, r.chained[sheets.CallOut30Ft])
	r.chained[sheets.CallOut50Ft].Update(delta, inhib, trig, r.chained[sheets.CallOut40Ft])
	for _, s := range r.pulsed {
		s.Update(delta, inhib, trig)
	}
	r.fiveHundredFt.Update(delta, p, inhib, trig)
	for _, s := range r.high {
		s.Update(r.radioAltitude, inhib, trig)
	}

	r.interAudio.Update(
		delta, r.radioAltitude, r.callOutInhibits, r.gpwsInhibition, trig, r.minimum,
		m.callOutGenerated, false,
	)
}

// callOutOrder is the priority order of the aural call-outs.
var callOutOrder = []sheets.CallOut{
	sheets.CallOut5Ft, sheets.CallOut10Ft, sheets.CallOut20Ft, sheets.CallOut30Ft,
	sheets.CallOut40Ft, sheets.CallOut50Ft, sheets.CallOut100Ft, sheets.CallOut200Ft,
	sheets.CallOut300Ft, sheets.CallOut400Ft, sheets.CallOut500Ft, sheets.CallOut1000Ft,
	sheets.CallOut2000Ft, sheets.CallOut2500Ft, sheets.CallOut2500B,
}

func (r *Runtime) callOutSheet(c sheets.CallOut) sheets.CallOutWarning {
	switch c {
	case sheets.CallOut5Ft:
		return r.fiveFt
	case sheets.CallOut10Ft:
		return r.tenFt
	case sheets.CallOut20Ft:
		return r.twentyFt
	case sheets.CallOut500Ft:
		return r.fiveHundredFt
	}
	if s, ok := r.chained[c]; ok {
		return s
	}
	if s, ok := r.pulsed[c]; ok {
		return s
	}
	return r.high[c]
}

func (r *Runtime) updateMonitor() {
	var raised []WarningCode
	if r.tenRetard.Warning() {
		raised = append(raised, TenRetardWarning)
	}
	if r.twentyRetard.Warning() {
		raised = append(raised, TwentyRetardWarning)
	}
	if r.hundredAbove.Warning() {
		raised = append(raised, HundredAboveWarning)
	}
	if r.minimum.Warning() {
		raised = append(raised, MinimumWarning)
	}
	for _, c := range callOutOrder {
		if r.callOutSheet(c).Warning() {
			raised = append(raised, CallOutWarning(c))
		}
	}
	if r.altAlertCChord.Warning() {
		raised = append(raised, CChordWarning)
	}
	r.monitor.update(r.generalCancel, raised)
}

// FlightPhase returns the first active phase in numeric order. An
// inconsistent set of parameters that activates no phase reads as phase 6.
func (r *Runtime) FlightPhase() int {
	g, a := r.phasesGround, r.phasesAir
	for phase, active := range []bool{
		1: g.Phase1(), 2: g.Phase2(), 3: g.Phase3(), 4: g.Phase4(), 5: a.Phase5(),
		6: a.Phase6(), 7: a.Phase7(), 8: g.Phase8(), 9: g.Phase9(), 10: g.Phase10(),
	} {
		if active {
			return phase
		}
	}
	return 6
}

func (r *Runtime) ShowToMemo() bool       { return r.toMemo.ToMemoComputed() }
func (r *Runtime) ShowLdgMemo() bool      { return r.ldgMemo.LdgMemo() }
func (r *Runtime) AudioAttenuation() bool { return r.audioAttenuation.AudioAttenuation() }

// CChord is the altitude alert C-chord as let through by the monitor.
func (r *Runtime) CChord() bool { return r.monitor.playing(CChordWarning) }

// AltAlertLightOn lights the altitude window, steady or flashing.
func (r *Runtime) AltAlertLightOn() bool {
	return r.altAlert.SteadyLight() || r.altAlert.FlashingLight()
}

func (r *Runtime) AltAlertFlashingLight() bool {
	return r.altAlert.FlashingLight() && !r.altAlert.SteadyLight()
}

// CavalryCharge is the autopilot disconnect aural alert.
func (r *Runtime) CavalryCharge() bool {
	return r.apOffVoluntary.ApOffAudio() || r.apOffUnvoluntary.ApOffAudio()
}

func (r *Runtime) ApOffText() bool    { return r.apOffVoluntary.ApOffText() }
func (r *Runtime) ApOffWarning() bool { return r.apOffUnvoluntary.ApOffWarning() }
func (r *Runtime) StallWarning() bool { return r.stallWarning.StallWarnOn() }

func (r *Runtime) MasterWarning() bool { return r.masterWarning.MasterWarning() }

// AutoCallOutInhibited reports the radio altitude call-outs inhibited.
func (r *Runtime) AutoCallOutInhibited() bool { return r.callOutInhibit.AutoCallOutInhib() }

// IntermediateCallOut reports that a radio height readout between call-outs
// would be held off.
func (r *Runtime) IntermediateCallOut() bool { return r.interAudio.IntermediateCallOut() }

// ActiveWarnings lists the warning codes the monitor let through this update,
// call-outs first.
func (r *Runtime) ActiveWarnings() []WarningCode { return r.monitor.warnings() }

// Sounds lists the aural alerts requested this update.
func (r *Runtime) Sounds() []Sound {
	var sounds []Sound
	for _, w := range r.ActiveWarnings() {
		if s, ok := callOutSounds[w]; ok {
			sounds = append(sounds, s)
		}
	}
	if r.CChord() {
		sounds = append(sounds, SoundCchord)
	}
	if r.CavalryCharge() {
		sounds = append(sounds, SoundCavalryCharge)
	}
	if r.stallWarning.StallOn() {
		sounds = append(sounds, SoundStall)
	}
	return sounds
}
