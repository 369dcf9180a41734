package sheets

import "github.com/sweeney/fwc-sim/internal/logic"

// StallWarn is the raw stall warning from the flight augmentation computers.
type StallWarn interface {
	StallWarn() bool
}

// StallWarnSheet merges the stall warning discretes of both flight
// augmentation computers. A failed computer does not contribute.
type StallWarnSheet struct {
	stallWarn bool
}

func NewStallWarnSheet() *StallWarnSheet { return &StallWarnSheet{} }

func (s *StallWarnSheet) Update(p stallWarnSignals) {
	w1, w2 := p.StallWarn(1), p.StallWarn(2)
	s.stallWarn = (w1.IsVal() && w1.Value()) || (w2.IsVal() && w2.Value())
}

func (s *StallWarnSheet) StallWarn() bool { return s.stallWarn }

// StallWarning is the stall warning after the FWC inhibitions.
type StallWarning interface {
	StallWarnOn() bool
	StallOn() bool
	StallSteadyOn() bool
}

// StallWarningSheet activates the stall warning in flight. It is inhibited
// in normal law close to the ground just after takeoff or on final approach.
// The ECP emergency cancel pushbutton re-triggers an active warning so the
// aural part restarts.
type StallWarningSheet struct {
	phase8Ended *logic.Pulse
	phase4Ended *logic.Pulse
	phase5Ended *logic.Pulse
	cancel      *logic.Pulse
	mem         *logic.Memory
	prec        *logic.PrecedingValue

	warnOn, on, steadyOn bool
}

func NewStallWarningSheet() *StallWarningSheet {
	return &StallWarningSheet{
		phase8Ended: logic.NewPulse(false),
		phase4Ended: logic.NewPulse(false),
		phase5Ended: logic.NewPulse(false),
		cancel:      logic.NewPulse(true),
		mem:         logic.NewMemory(false),
		prec:        logic.NewPrecedingValue(),
	}
}

func (s *StallWarningSheet) Update(
	p stallWarningSignals,
	warn StallWarn,
	gnd FlightPhasesGround,
	air FlightPhasesAir,
) {
	phase5, phase6, phase7 := air.Phase5(), air.Phase6(), air.Phase7()

	enteredPhase7 := s.phase8Ended.Update(gnd.Phase8()) && phase7
	enteredPhase5 := s.phase4Ended.Update(gnd.Phase4()) && phase5
	endOfPhase5 := s.phase5Ended.Update(phase5)

	lowAfterTransition := s.mem.Update(enteredPhase5 || enteredPhase7, endOfPhase5 || phase6)

	normalLaw := p.PitchLawCode1(1).Value() || p.PitchLawCode1(2).Value()
	rh1, rh2 := p.RadioHeight(1), p.RadioHeight(2)
	rh1Below1500 := rh1.Value() <= 1500 && !invOrNcd(rh1)
	rh2Below1500 := rh2.Value() <= 1500 && !invOrNcd(rh2)
	inhibit := normalLaw && lowAfterTransition && rh1Below1500 && rh2Below1500

	cancelPulse := s.cancel.Update(p.EcpEmerCancelOn().Value() && s.prec.Value())

	airborne := phase5 || phase6 || phase7
	on := airborne && (warn.StallWarn() || cancelPulse) && !inhibit
	s.prec.Update(on)

	s.warnOn = on
	s.on = on
	s.steadyOn = on
}

func (s *StallWarningSheet) StallWarnOn() bool { return s.warnOn }
func (s *StallWarningSheet) StallOn() bool     { return s.on }

// StallSteadyOn is used to inhibit the GPWS.
func (s *StallWarningSheet) StallSteadyOn() bool { return s.steadyOn }
