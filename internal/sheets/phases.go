package sheets

import (
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// FlightPhasesGround exposes the ground flight phases.
type FlightPhasesGround interface {
	Phase1() bool
	Phase2() bool
	Phase3() bool
	Phase4() bool
	Phase8() bool
	Phase9() bool
	Phase10() bool
}

// FlightPhasesGroundSheet derives phases 1 (electrical power), 2 (engine
// start), 3 (takeoff power), 4 (above 80 kt), 8 (rollout), 9 (below 80 kt
// after landing) and 10 (5 minutes after engine shutdown).
//
// Phase 9 is held in a latch that is set by takeoff or landing and released a
// short while after takeoff power is removed, so that an aborted takeoff
// returns to phase 2 rather than 9.
type FlightPhasesGroundSheet struct {
	firePbTransient *logic.TransientDetection
	firePbConf      *logic.Confirmation
	toPwrRemoved    *logic.MonostableTrigger
	phase9Ended     *logic.MonostableTrigger
	shutdownTimer   *logic.MonostableTrigger
	belowSpeed      *logic.MonostableTrigger
	firePbTrig      *logic.MonostableTrigger
	groundTrig      *logic.MonostableTrigger
	memPhase9       *logic.Memory
	memPhase10      *logic.Memory
	precPhase9      *logic.PrecedingValue

	phase1, phase2, phase3, phase4, phase8, phase9, phase10 bool
}

func NewFlightPhasesGroundSheet() *FlightPhasesGroundSheet {
	return &FlightPhasesGroundSheet{
		firePbTransient: logic.NewTransientDetection(false),
		firePbConf:      logic.NewConfirmation(true, 200*time.Millisecond),
		toPwrRemoved:    logic.NewMonostable(false, time.Second),
		phase9Ended:     logic.NewMonostable(false, 3*time.Second),
		shutdownTimer:   logic.NewMonostable(true, 300*time.Second),
		belowSpeed:      logic.NewMonostable(true, 2*time.Second),
		firePbTrig:      logic.NewMonostable(true, 2*time.Second),
		groundTrig:      logic.NewMonostable(true, 2*time.Second),
		memPhase9:       logic.NewNonVolatileMemory(true),
		memPhase10:      logic.NewMemory(false),
		precPhase9:      logic.NewPrecedingValue(),
	}
}

func (s *FlightPhasesGroundSheet) Update(
	delta time.Duration,
	p phaseGroundSignals,
	gnd Ground,
	spd Speed,
	eng EngRunning,
	pwr TakeoffPower,
) {
	ground := gnd.Ground()
	groundImmediate := gnd.GroundImmediate()
	above80 := spd.AcSpeedAbove80Kt()
	running := eng.Eng1Or2Running()
	toPwr := pwr.Eng1Or2ToPwr()

	firePb := s.firePbConf.Update(s.firePbTransient.Update(p.Eng1FirePbOut().Value()), delta)
	resetMem10 := ground && s.firePbTrig.Update(firePb, delta)

	groundAndToPwr := ground && toPwr
	s.phase3 = !above80 && running && groundAndToPwr
	s.phase4 = above80 && groundAndToPwr

	rollout := s.groundTrig.Update(groundImmediate, delta) || groundImmediate
	s.phase8 = rollout && !toPwr && above80

	prevPhase9 := s.precPhase9.Value()
	toPwrRemoved := s.toPwrRemoved.Update(toPwr, delta)
	phase9Ended := s.phase9Ended.Update(prevPhase9, delta)
	belowSpeed := s.belowSpeed.Update(!above80, delta)

	phase29 := ground && !toPwr && !above80
	oneRunning := eng.OneEngRunning()

	resetNvm := (ground && phase9Ended) || resetMem10 || (ground && toPwrRemoved)
	inhibitedResetNvm := !belowSpeed && resetNvm && !prevPhase9
	toConfigReset := p.ToConfigTest().Value() && phase29 && oneRunning

	phase9Mem := s.memPhase9.Update(s.phase3 || s.phase8, inhibitedResetNvm || spd.AdcTestInhib() || toConfigReset)
	s.phase2 = phase29 && !phase9Mem && running
	s.phase9 = oneRunning && phase9Mem && phase29
	s.precPhase9.Update(s.phase9)

	mem10 := s.memPhase10.Update(s.phase9, resetMem10)
	phase110 := !s.phase9 && eng.Eng1And2NotRunning() && groundImmediate
	shutdownElapsed := s.shutdownTimer.Update(mem10 && phase110, delta)
	s.phase1 = phase110 && !shutdownElapsed
	s.phase10 = phase110 && shutdownElapsed
}

func (s *FlightPhasesGroundSheet) Phase1() bool  { return s.phase1 }
func (s *FlightPhasesGroundSheet) Phase2() bool  { return s.phase2 }
func (s *FlightPhasesGroundSheet) Phase3() bool  { return s.phase3 }
func (s *FlightPhasesGroundSheet) Phase4() bool  { return s.phase4 }
func (s *FlightPhasesGroundSheet) Phase8() bool  { return s.phase8 }
func (s *FlightPhasesGroundSheet) Phase9() bool  { return s.phase9 }
func (s *FlightPhasesGroundSheet) Phase10() bool { return s.phase10 }

// FlightPhasesAir exposes the airborne flight phases.
type FlightPhasesAir interface {
	Phase5() bool
	Phase6() bool
	Phase7() bool
}

// FlightPhasesAirSheet derives phases 5 (liftoff to 1500 ft), 6 (flight) and
// 7 (final approach below 800 ft).
type FlightPhasesAirSheet struct {
	h800Conf      *logic.Confirmation
	takeoffTimer  *logic.MonostableTrigger
	approachTimer *logic.MonostableTrigger
	groundTrig    *logic.MonostableTrigger
	h800Transient *logic.TransientDetection
	h800Pulse     *logic.Pulse

	phase5, phase6, phase7 bool
}

func NewFlightPhasesAirSheet() *FlightPhasesAirSheet {
	return &FlightPhasesAirSheet{
		h800Conf:      logic.NewConfirmation(true, 200*time.Millisecond),
		takeoffTimer:  logic.NewMonostable(true, 120*time.Second),
		approachTimer: logic.NewMonostable(true, 180*time.Second),
		groundTrig:    logic.NewMonostable(true, 2*time.Second),
		h800Transient: logic.NewTransientDetection(false),
		h800Pulse:     logic.NewPulse(true),
	}
}

func (s *FlightPhasesAirSheet) Update(
	delta time.Duration,
	gnd Ground,
	alt AltitudeDef,
	pwr TakeoffPower,
	phasesGnd FlightPhasesGround,
) {
	groundImmediate := s.groundTrig.Update(gnd.GroundImmediate(), delta) || gnd.GroundImmediate()
	toPwr := pwr.Eng1Or2ToPwr()
	hFail := alt.HFail()
	h1500 := alt.HGt1500Ft()
	h800 := alt.HGt800Ft()

	h800Pulse := s.h800Pulse.Update(s.h800Conf.Update(s.h800Transient.Update(h800), delta))

	takeoffIn := !h1500 && toPwr && !hFail && !groundImmediate
	takeoff := s.takeoffTimer.Update(takeoffIn, delta) && takeoffIn

	approachIn := !groundImmediate && !hFail && !toPwr && !h1500 && !h800 && !h800Pulse
	approach := s.approachTimer.Update(approachIn, delta) && approachIn

	s.phase5 = takeoff
	s.phase6 = !takeoff && !groundImmediate && !approach
	s.phase7 = approach && !phasesGnd.Phase8()
}

func (s *FlightPhasesAirSheet) Phase5() bool { return s.phase5 }
func (s *FlightPhasesAirSheet) Phase6() bool { return s.phase6 }
func (s *FlightPhasesAirSheet) Phase7() bool { return s.phase7 }
