package sheets

import (
	"math"
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// BaroAltitude is the barometric altitude chosen from the first usable ADR.
type BaroAltitude interface {
	AltiBasic() float64
	AltiInvalid() bool
}

type BaroAltitudeSheet struct {
	altiBasic   float64
	altiInvalid bool
}

func NewBaroAltitudeSheet() *BaroAltitudeSheet { return &BaroAltitudeSheet{} }

func (s *BaroAltitudeSheet) Update(p altitudeSignals) {
	a1, a2, a3 := p.Altitude(1), p.Altitude(2), p.Altitude(3)
	bad1, bad2, bad3 := invOrNcd(a1), invOrNcd(a2), invOrNcd(a3)

	switch {
	case bad1 && bad2:
		s.altiBasic = a3.Value()
	case bad1:
		s.altiBasic = a2.Value()
	default:
		s.altiBasic = a1.Value()
	}
	s.altiInvalid = bad1 && bad2 && bad3
}

// AltiBasic is in feet and meaningless when AltiInvalid is set.
func (s *BaroAltitudeSheet) AltiBasic() float64 { return s.altiBasic }
func (s *BaroAltitudeSheet) AltiInvalid() bool  { return s.altiInvalid }

// AutopilotOffVoluntary covers an autopilot disconnected with the
// instinctive pushbutton.
type AutopilotOffVoluntary interface {
	Ap1Engd() bool
	Ap2Engd() bool
	OneApEngd() bool
	ApOffAudio() bool
	ApOffMw() bool
	ApOffText() bool
}

// AutopilotOffVoluntarySheet starts the cavalry charge, master warning and
// AP OFF text when an autopilot drops out within 1.3s of an instinctive
// disconnect. A second press or a master warning cancel, once no autopilot
// has been engaged for 0.2s, silences them early.
type AutopilotOffVoluntarySheet struct {
	disengage      *logic.Pulse
	audioTimeout   *logic.Pulse
	cavalryTimeout *logic.Pulse
	instincPress   *logic.Pulse
	allowCancel    *logic.Confirmation
	instinc1       *logic.MonostableTrigger
	instinc2       *logic.MonostableTrigger
	audioMax       *logic.MonostableTrigger
	cavalryMin     *logic.MonostableTrigger
	mwDuration     *logic.MonostableTrigger
	mwCancel       *logic.MonostableTrigger
	textDuration   *logic.MonostableTrigger
	textCancel     *logic.MonostableTrigger
	audioCancelIn  *logic.MonostableTrigger
	audioCancel    *logic.MonostableTrigger
	audioMem       *logic.Memory

	ap1Engd, ap2Engd, oneApEngd bool
	apOffAudio, apOffMw         bool
	apOffText                   bool
}

func NewAutopilotOffVoluntarySheet() *AutopilotOffVoluntarySheet {
	return &AutopilotOffVoluntarySheet{
		disengage:      logic.NewPulse(false),
		audioTimeout:   logic.NewPulse(false),
		cavalryTimeout: logic.NewPulse(false),
		instincPress:   logic.NewPulse(true),
		allowCancel:    logic.NewConfirmation(true, 200*time.Millisecond),
		instinc1:       logic.NewMonostable(true, 1300*time.Millisecond),
		instinc2:       logic.NewMonostable(true, 1300*time.Millisecond),
		audioMax:       logic.NewMonostable(true, 5*time.Second),
		cavalryMin:     logic.NewMonostable(true, 1500*time.Millisecond),
		mwDuration:     logic.NewMonostable(true, 3*time.Second),
		mwCancel:       logic.NewMonostable(true, 3*time.Second),
		textDuration:   logic.NewMonostable(true, 9*time.Second),
		textCancel:     logic.NewMonostable(true, 9*time.Second),
		audioCancelIn:  logic.NewMonostable(true, 500*time.Millisecond),
		audioCancel:    logic.NewMonostable(false, 1500*time.Millisecond),
		audioMem:       logic.NewMemory(true),
	}
}

func (s *AutopilotOffVoluntarySheet) Update(delta time.Duration, p autopilotSignals, cavalryChargeEmitted bool) {
	s.ap1Engd = p.ApEngdCom(1).Value() && p.ApEngdMon(1).Value()
	s.ap2Engd = p.ApEngdCom(2).Value() && p.ApEngdMon(2).Value()
	s.oneApEngd = s.ap1Engd || s.ap2Engd

	allowCancel := s.allowCancel.Update(!s.oneApEngd, delta)

	instinc1 := p.InstincDiscnct(1).Value()
	instinc2 := p.InstincDiscnct(2).Value()
	pressed := s.instincPress.Update(instinc1 || instinc2)

	mwCancel := p.CaptMwCancelOn().Value() || p.FoMwCancelOn().Value()
	doCancel := allowCancel && (mwCancel || pressed)

	recent1 := s.instinc1.Update(instinc1, delta)
	recent2 := s.instinc2.Update(instinc2, delta)
	disengaged := s.disengage.Update(s.ap1Engd || s.ap2Engd)
	instinctive := disengaged && (recent1 || recent2)

	resetAudio := s.audioTimeout.Update(s.audioMax.Update(instinctive, delta))
	resetCavalry := s.cavalryTimeout.Update(s.cavalryMin.Update(cavalryChargeEmitted, delta))
	audio := s.audioMem.Update(instinctive, resetAudio || resetCavalry)

	mw := s.mwDuration.Update(instinctive, delta)
	text := s.textDuration.Update(instinctive, delta)

	cancelAudio := s.audioCancel.Update(s.audioCancelIn.Update(doCancel, delta), delta)
	cancelMw := s.mwCancel.Update(doCancel, delta)
	cancelText := s.textCancel.Update(doCancel, delta)

	s.apOffAudio = audio && !s.oneApEngd && !cancelAudio
	s.apOffMw = mw && !s.oneApEngd && !cancelMw
	s.apOffText = text && !s.oneApEngd && !cancelText
}

func (s *AutopilotOffVoluntarySheet) Ap1Engd() bool    { return s.ap1Engd }
func (s *AutopilotOffVoluntarySheet) Ap2Engd() bool    { return s.ap2Engd }
func (s *AutopilotOffVoluntarySheet) OneApEngd() bool  { return s.oneApEngd }
func (s *AutopilotOffVoluntarySheet) ApOffAudio() bool { return s.apOffAudio }
func (s *AutopilotOffVoluntarySheet) ApOffMw() bool    { return s.apOffMw }
func (s *AutopilotOffVoluntarySheet) ApOffText() bool  { return s.apOffText }

// AutopilotOffUnvoluntary covers an autopilot that dropped out on its own.
type AutopilotOffUnvoluntary interface {
	ApOffWarning() bool
	ApOffAudio() bool
	ApUnvolOff() bool
	ApOffReset() bool
	ApMw() bool
}

// AutopilotOffUnvoluntarySheet latches an involuntary disconnect until an
// autopilot is re-engaged or phase 1 is reached. The aural part runs until
// the crew acknowledges it, but not during the first 1.5s.
type AutopilotOffUnvoluntarySheet struct {
	disengage    *logic.Pulse
	unvolOff     *logic.Pulse
	instincPress *logic.Pulse
	phase1       *logic.Pulse
	engage       *logic.Pulse
	mwCancel     *logic.Pulse
	instinc1     *logic.MonostableTrigger
	instinc2     *logic.MonostableTrigger
	recentOff    *logic.MonostableTrigger
	memUnvolOff  *logic.Memory
	memWarning   *logic.Memory

	apOffWarning, apUnvolOff, apOffReset bool
	apMw, audio                          bool
}

func NewAutopilotOffUnvoluntarySheet() *AutopilotOffUnvoluntarySheet {
	return &AutopilotOffUnvoluntarySheet{
		disengage:    logic.NewPulse(false),
		unvolOff:     logic.NewPulse(true),
		instincPress: logic.NewPulse(true),
		phase1:       logic.NewPulse(true),
		engage:       logic.NewPulse(true),
		mwCancel:     logic.NewPulse(true),
		instinc1:     logic.NewMonostable(true, 1300*time.Millisecond),
		instinc2:     logic.NewMonostable(true, 1300*time.Millisecond),
		recentOff:    logic.NewMonostable(true, 1500*time.Millisecond),
		memUnvolOff:  logic.NewMemory(false),
		memWarning:   logic.NewMemory(false),
	}
}

func (s *AutopilotOffUnvoluntarySheet) Update(
	delta time.Duration,
	p autopilotUnvoluntarySignals,
	vol AutopilotOffVoluntary,
	phases FlightPhasesGround,
	cavalryChargeEmitted bool,
) {
	phase1 := phases.Phase1()
	inhibitedOnGround := phase1 &&
		p.BlueSysLoPr().Value() && p.YellowSysLoPr().Value() && p.GreenSysLoPr().Value()

	instinc1 := p.InstincDiscnct(1).Value()
	instinc2 := p.InstincDiscnct(2).Value()
	recent1 := s.instinc1.Update(instinc1, delta)
	recent2 := s.instinc2.Update(instinc2, delta)
	recentVoluntary := recent1 || recent2

	anyApEngd := (p.ApEngdCom(1).Value() && p.ApEngdMon(1).Value()) ||
		(p.ApEngdCom(2).Value() && p.ApEngdMon(2).Value())
	disengaged := s.disengage.Update(anyApEngd)
	phase1Pulse := s.phase1.Update(phase1)
	engaged := s.engage.Update(anyApEngd)
	resetWarnings := engaged || phase1Pulse

	unvolOff := s.memUnvolOff.Update(!inhibitedOnGround && !recentVoluntary && disengaged, resetWarnings)

	// The pulse sees the latch as it stood at the end of the previous cycle.
	unvolOffPulse := s.unvolOff.Update(s.apUnvolOff)
	recentlyOff := s.recentOff.Update(unvolOffPulse, delta)

	anyMwCancel := (p.CaptMwCancelOn().Value() || p.FoMwCancelOn().Value()) && cavalryChargeEmitted
	apMw := s.mwCancel.Update(!anyApEngd && anyMwCancel)
	instincPressed := s.instincPress.Update(instinc1 || instinc2) && !anyApEngd

	offReset := resetWarnings || (!recentlyOff && (instincPressed || apMw))
	s.audio = s.memWarning.Update(unvolOffPulse, offReset)

	s.apOffWarning = vol.ApOffText() || unvolOff
	s.apUnvolOff = unvolOff
	s.apOffReset = offReset
	s.apMw = apMw
}

func (s *AutopilotOffUnvoluntarySheet) ApOffWarning() bool { return s.apOffWarning }
func (s *AutopilotOffUnvoluntarySheet) ApOffAudio() bool   { return s.audio }
func (s *AutopilotOffUnvoluntarySheet) ApUnvolOff() bool   { return s.apUnvolOff }
func (s *AutopilotOffUnvoluntarySheet) ApOffReset() bool   { return s.apOffReset }
func (s *AutopilotOffUnvoluntarySheet) ApMw() bool         { return s.apMw }

// AltitudeAlertThresholds compares the aircraft to the selected altitude.
type AltitudeAlertThresholds interface {
	Alt200() bool
	Alt750() bool
}

type AltitudeAlertThresholdsSheet struct {
	alt200, alt750 bool
}

func NewAltitudeAlertThresholdsSheet() *AltitudeAlertThresholdsSheet {
	return &AltitudeAlertThresholdsSheet{}
}

func (s *AltitudeAlertThresholdsSheet) Update(p altiSelectSignals, baro BaroAltitude) {
	d := math.Abs(baro.AltiBasic() - p.AltiSelect().Value())
	s.alt200 = d < 200
	s.alt750 = d < 750
}

func (s *AltitudeAlertThresholdsSheet) Alt200() bool { return s.alt200 }
func (s *AltitudeAlertThresholdsSheet) Alt750() bool { return s.alt750 }

// AltitudeAlertSlatInhibit is the landing configuration inhibition.
type AltitudeAlertSlatInhibit interface {
	SlatInhibit() bool
}

// AltitudeAlertSlatInhibitSheet inhibits the alert with the gear down.
type AltitudeAlertSlatInhibitSheet struct {
	inhibit bool
}

func NewAltitudeAlertSlatInhibitSheet() *AltitudeAlertSlatInhibitSheet {
	return &AltitudeAlertSlatInhibitSheet{}
}

func (s *AltitudeAlertSlatInhibitSheet) Update(lg LgDownlocked) { s.inhibit = lg.LgDownlocked() }

func (s *AltitudeAlertSlatInhibitSheet) SlatInhibit() bool { return s.inhibit }

// AltitudeAlertFmgcInhibit is the glide slope inhibition.
type AltitudeAlertFmgcInhibit interface {
	FmgcInhibit() bool
}

// AltitudeAlertFmgcInhibitSheet inhibits the alert with glide slope captured
// on FMGC 1.
type AltitudeAlertFmgcInhibitSheet struct {
	inhibit bool
}

func NewAltitudeAlertFmgcInhibitSheet() *AltitudeAlertFmgcInhibitSheet {
	return &AltitudeAlertFmgcInhibitSheet{}
}

func (s *AltitudeAlertFmgcInhibitSheet) Update(p fmgcSignals) { s.inhibit = p.GsModeOn(1).Value() }

func (s *AltitudeAlertFmgcInhibitSheet) FmgcInhibit() bool { return s.inhibit }

// AltitudeAlertGeneralInhibit combines the altitude alert inhibitions.
type AltitudeAlertGeneralInhibit interface {
	GeneralInhibit() bool
}

type AltitudeAlertGeneralInhibitSheet struct {
	inhibit bool
}

func NewAltitudeAlertGeneralInhibitSheet() *AltitudeAlertGeneralInhibitSheet {
	return &AltitudeAlertGeneralInhibitSheet{}
}

func (s *AltitudeAlertGeneralInhibitSheet) Update(
	p generalInhibitSignals,
	slat AltitudeAlertSlatInhibit,
	fmgc AltitudeAlertFmgcInhibit,
) {
	s.inhibit = invOrNcd(p.AltiSelect()) ||
		p.AltSelectChg().Value() ||
		slat.SlatInhibit() ||
		fmgc.FmgcInhibit()
}

func (s *AltitudeAlertGeneralInhibitSheet) GeneralInhibit() bool { return s.inhibit }

// AltitudeAlertApTcasInhibit tracks the TCAS vertical guidance mode.
type AltitudeAlertApTcasInhibit interface {
	ApTcasModeEng() bool
	AltAlertInhib() bool
}

// AltitudeAlertApTcasInhibitSheet suppresses the C-chord for a deviation that
// begins while AP/TCAS is flying the aircraft.
type AltitudeAlertApTcasInhibitSheet struct {
	within200Left *logic.Pulse
	outside750In  *logic.Pulse
	outside750Out *logic.Pulse
	lgDown        *logic.Pulse
	lgTrig        *logic.MonostableTrigger
	altSelChgTrig *logic.MonostableTrigger
	mem           *logic.Memory

	apTcasModeEng, altAlertInhib bool
}

func NewAltitudeAlertApTcasInhibitSheet() *AltitudeAlertApTcasInhibitSheet {
	return &AltitudeAlertApTcasInhibitSheet{
		within200Left: logic.NewPulse(false),
		outside750In:  logic.NewPulse(true),
		outside750Out: logic.NewPulse(false),
		lgDown:        logic.NewPulse(false),
		lgTrig:        logic.NewRetriggerableMonostable(true, time.Second),
		altSelChgTrig: logic.NewRetriggerableMonostable(true, time.Second),
		mem:           logic.NewMemory(true),
	}
}

func (s *AltitudeAlertApTcasInhibitSheet) Update(
	delta time.Duration,
	p tcasSignals,
	lg LgDownlocked,
	thresholds AltitudeAlertThresholds,
	inhibit AltitudeAlertGeneralInhibit,
) {
	s.apTcasModeEng = p.TcasEngaged().Value()

	alt200, alt750 := thresholds.Alt200(), thresholds.Alt750()
	inh := inhibit.GeneralInhibit()
	lgDownlocked := lg.LgDownlocked()

	leftWithin200 := s.within200Left.Update(alt200 && alt750 && !inh)
	outside750 := !alt200 && !alt750 && !inh
	enteredOutside750 := s.outside750In.Update(outside750)
	set := s.apTcasModeEng && (leftWithin200 || enteredOutside750)

	leftOutside750 := s.outside750Out.Update(outside750)
	lgPulse := s.lgDown.Update(lgDownlocked)
	lgRecent := s.lgTrig.Update(lgDownlocked, delta)
	altSelChg := s.altSelChgTrig.Update(p.AltSelectChg().Value(), delta)
	reset := leftOutside750 || lgPulse || lgRecent || altSelChg

	s.altAlertInhib = s.mem.Update(set, reset)
}

func (s *AltitudeAlertApTcasInhibitSheet) ApTcasModeEng() bool { return s.apTcasModeEng }
func (s *AltitudeAlertApTcasInhibitSheet) AltAlertInhib() bool { return s.altAlertInhib }

// AltitudeAlert drives the altitude alert C-chord and the PFD altitude box.
type AltitudeAlert interface {
	CChord() bool
	SteadyLight() bool
	FlashingLight() bool
}

// AltitudeAlertSheet lights the altitude window steadily while approaching
// the selected altitude and flashes it when the aircraft deviates from it.
type AltitudeAlertSheet struct {
	tcasDisengaged *logic.Pulse
	altSelChgTrig  *logic.MonostableTrigger
	lgTrig         *logic.MonostableTrigger
	approachTrig   *logic.MonostableTrigger
	tcasTrig       *logic.MonostableTrigger
	memWithin200   *logic.Memory
	memWithin750   *logic.Memory

	cChord, steadyLight, flashingLight bool
}

func NewAltitudeAlertSheet() *AltitudeAlertSheet {
	return &AltitudeAlertSheet{
		tcasDisengaged: logic.NewPulse(false),
		altSelChgTrig:  logic.NewMonostable(true, time.Second),
		lgTrig:         logic.NewMonostable(true, time.Second),
		approachTrig:   logic.NewMonostable(true, 1500*time.Millisecond),
		tcasTrig:       logic.NewMonostable(true, 1500*time.Millisecond),
		memWithin200:   logic.NewMemory(false),
		memWithin750:   logic.NewMemory(false),
	}
}

func (s *AltitudeAlertSheet) Update(
	delta time.Duration,
	p altSelectChgSignals,
	gnd Ground,
	ap AutopilotOffVoluntary,
	tcas AltitudeAlertApTcasInhibit,
	thresholds AltitudeAlertThresholds,
	inhibit AltitudeAlertGeneralInhibit,
	lg LgDownlocked,
) {
	apTcasModeEng := tcas.ApTcasModeEng()
	groundOrApTcas := gnd.Ground() || apTcasModeEng

	altSelChg := s.altSelChgTrig.Update(p.AltSelectChg().Value(), delta)
	lgDown := s.lgTrig.Update(lg.LgDownlocked(), delta)
	resetMems := altSelChg || lgDown

	alt200, alt750 := thresholds.Alt200(), thresholds.Alt750()
	inh := inhibit.GeneralInhibit()
	within200 := alt200 && alt750 && !inh
	within750 := !alt200 && alt750 && !inh
	outside750 := !alt200 && !alt750 && !inh

	wasWithin200 := s.memWithin200.Update(within200, outside750 || resetMems)
	wasWithin750 := s.memWithin750.Update(within750, resetMems)

	left200 := within750 && wasWithin200
	left750 := outside750 && wasWithin750
	deviation := left200 || left750

	s.flashingLight = !groundOrApTcas && deviation
	s.steadyLight = !groundOrApTcas && within750 && !left200

	oneApEngd := ap.OneApEngd()
	approaching := s.approachTrig.Update(!oneApEngd && within750, delta)
	tcasEnded := s.tcasDisengaged.Update(apTcasModeEng)
	afterTcas := s.tcasTrig.Update(!oneApEngd && tcasEnded && !inh, delta)

	s.cChord = !groundOrApTcas &&
		(approaching || afterTcas || (!tcas.AltAlertInhib() && deviation))
}

func (s *AltitudeAlertSheet) CChord() bool        { return s.cChord }
func (s *AltitudeAlertSheet) SteadyLight() bool   { return s.steadyLight }
func (s *AltitudeAlertSheet) FlashingLight() bool { return s.flashingLight }

// AltitudeAlertCChordSheet is the warning activation for the C-chord.
type AltitudeAlertCChordSheet struct {
	warning bool
}

func NewAltitudeAlertCChordSheet() *AltitudeAlertCChordSheet { return &AltitudeAlertCChordSheet{} }

func (s *AltitudeAlertCChordSheet) Update(alert AltitudeAlert) { s.warning = alert.CChord() }

func (s *AltitudeAlertCChordSheet) Warning() bool { return s.warning }
