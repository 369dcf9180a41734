package sheets

import (
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// DhDtPositive reports a radio height increasing since the previous cycle.
type DhDtPositive interface {
	DhPositive() bool
}

// GeneralDhDtPositiveSheet reports a climbing radio height, preferring RA 1.
type GeneralDhDtPositiveSheet struct {
	lastRh     float64
	dhPositive bool
}

func NewGeneralDhDtPositiveSheet() *GeneralDhDtPositiveSheet { return &GeneralDhDtPositiveSheet{} }

func (s *GeneralDhDtPositiveSheet) Update(p radioHeightSignals) {
	rh := p.RadioHeight(1)
	if invOrNcd(rh) {
		rh = p.RadioHeight(2)
	}
	s.dhPositive = rh.Value()-s.lastRh > 0
	s.lastRh = rh.Value()
}

func (s *GeneralDhDtPositiveSheet) DhPositive() bool { return s.dhPositive }

// GeneralCancel turns the master warning and master caution pushbuttons into
// single-cycle pulses.
type GeneralCancel interface {
	MwCancelPulseUp() bool
	McCancelPulseUp() bool
}

// GeneralCancelSheet combines the captain and first officer pushbuttons.
type GeneralCancelSheet struct {
	captMw, foMw, captMc, foMc *logic.Pulse
	mwPulse, mcPulse           bool
}

func NewGeneralCancelSheet() *GeneralCancelSheet {
	return &GeneralCancelSheet{
		captMw: logic.NewPulse(true),
		foMw:   logic.NewPulse(true),
		captMc: logic.NewPulse(true),
		foMc:   logic.NewPulse(true),
	}
}

func (s *GeneralCancelSheet) Update(p cancelSignals) {
	captMw := s.captMw.Update(p.CaptMwCancelOn().Value())
	foMw := s.foMw.Update(p.FoMwCancelOn().Value())
	captMc := s.captMc.Update(p.CaptMcCancelOn().Value())
	foMc := s.foMc.Update(p.FoMcCancelOn().Value())

	s.mwPulse = captMw || foMw
	s.mcPulse = captMc || foMc
}

func (s *GeneralCancelSheet) MwCancelPulseUp() bool { return s.mwPulse }
func (s *GeneralCancelSheet) McCancelPulseUp() bool { return s.mcPulse }

// LgDownlocked reports the landing gear down and locked.
type LgDownlocked interface {
	MainLgDownlocked() bool
	LgDownlocked() bool
}

// LgDownlockedSheet accepts a gear as downlocked when both LGCIUs agree, or
// when one of them is failed and the other reports downlocked.
type LgDownlockedSheet struct {
	main bool
	all  bool
}

func NewLgDownlockedSheet() *LgDownlockedSheet { return &LgDownlockedSheet{} }

func downlocked(l1, l2 boolParam) bool {
	normal := l1.Value() && l2.Value()
	abnormal := (l1.IsInv() || l2.IsInv()) && (l1.Value() || l2.Value())
	return normal || abnormal
}

func (s *LgDownlockedSheet) Update(p gearDownLockSignals) {
	lh := downlocked(p.LhGearDownLock(1), p.LhGearDownLock(2))
	rh := downlocked(p.RhGearDownLock(1), p.RhGearDownLock(2))
	nose := downlocked(p.NoseGearDownLock(1), p.NoseGearDownLock(2))

	s.main = lh && rh
	s.all = s.main && nose
}

func (s *LgDownlockedSheet) MainLgDownlocked() bool { return s.main }
func (s *LgDownlockedSheet) LgDownlocked() bool     { return s.all }

// Eng1StartSequence tracks the engine 1 master lever held on for 30s.
type Eng1StartSequence interface {
	Eng1TempoMasterLever1On() bool
}

// Eng1StartSequenceSheet confirms the engine 1 master lever on for 30s.
type Eng1StartSequenceSheet struct {
	conf       *logic.Confirmation
	leverTempo bool
}

func NewEng1StartSequenceSheet() *Eng1StartSequenceSheet {
	return &Eng1StartSequenceSheet{conf: logic.NewConfirmation(true, 30*time.Second)}
}

func (s *Eng1StartSequenceSheet) Update(delta time.Duration, p masterLeverSignals) {
	s.leverTempo = s.conf.Update(p.MasterLeverSelectOn(1).Value(), delta)
}

func (s *Eng1StartSequenceSheet) Eng1TempoMasterLever1On() bool { return s.leverTempo }

// Eng2StartSequence tracks the engine 2 master lever held on for 30s.
type Eng2StartSequence interface {
	Eng2TempoMasterLever1On() bool
	Phase5To30s() bool
}

// Eng2StartSequenceSheet also tracks the first 30s after the transition from
// phase 4 to phase 5.
type Eng2StartSequenceSheet struct {
	conf        *logic.Confirmation
	phase4Ended *logic.Pulse
	mtrig       *logic.MonostableTrigger
	leverTempo  bool
	phase5To30s bool
}

func NewEng2StartSequenceSheet() *Eng2StartSequenceSheet {
	return &Eng2StartSequenceSheet{
		conf:        logic.NewConfirmation(true, 30*time.Second),
		phase4Ended: logic.NewPulse(false),
		mtrig:       logic.NewMonostable(true, 30*time.Second),
	}
}

func (s *Eng2StartSequenceSheet) Update(delta time.Duration, p masterLeverSignals, gnd FlightPhasesGround, air FlightPhasesAir) {
	s.leverTempo = s.conf.Update(p.MasterLeverSelectOn(2).Value(), delta)
	ended := s.phase4Ended.Update(gnd.Phase4())
	s.phase5To30s = s.mtrig.Update(ended && air.Phase5(), delta)
}

func (s *Eng2StartSequenceSheet) Eng2TempoMasterLever1On() bool { return s.leverTempo }
func (s *Eng2StartSequenceSheet) Phase5To30s() bool             { return s.phase5To30s }

// AudioAttenuation lowers the aural warning volume.
type AudioAttenuation interface {
	AudioAttenuation() bool
}

// AudioAttenuationSheet lowers the aural warning volume on the ground with
// both engines shut down.
type AudioAttenuationSheet struct {
	attenuation bool
}

func NewAudioAttenuationSheet() *AudioAttenuationSheet { return &AudioAttenuationSheet{} }

func (s *AudioAttenuationSheet) Update(gnd Ground, eng EngineNotRunning) {
	s.attenuation = gnd.Ground() && eng.EngNotRunning(1) && eng.EngNotRunning(2)
}

func (s *AudioAttenuationSheet) AudioAttenuation() bool { return s.attenuation }

// MasterWarning is the red MASTER WARNING light.
type MasterWarning interface {
	MasterWarning() bool
}

// MasterWarningSheet lights the master warning on an autopilot disconnect or
// a stall warning. A master warning cancel puts it out until a new warning
// appears.
type MasterWarningSheet struct {
	rising *logic.Pulse
	mem    *logic.Memory
	on     bool
}

func NewMasterWarningSheet() *MasterWarningSheet {
	return &MasterWarningSheet{
		rising: logic.NewPulse(true),
		mem:    logic.NewMemory(false),
	}
}

// Update lights the master warning on a new request and puts it out on a
// cancel or once no request remains.
func (s *MasterWarningSheet) Update(
	cancel GeneralCancel,
	vol AutopilotOffVoluntary,
	unvol AutopilotOffUnvoluntary,
	stall StallWarning,
) {
	requested := vol.ApOffMw() || unvol.ApOffAudio() || stall.StallOn()
	cancelled := cancel.MwCancelPulseUp() || unvol.ApMw()
	s.on = s.mem.Update(s.rising.Update(requested), cancelled || !requested)
}

func (s *MasterWarningSheet) MasterWarning() bool { return s.on }
