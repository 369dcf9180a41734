package sheets

import (
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// ToMemo is the takeoff memo display request.
type ToMemo interface {
	ToMemoComputed() bool
}

// ToMemoSheet shows the takeoff memo after a TO CONFIG test in phase 2 or 9,
// or automatically two minutes after both engines are started.
type ToMemoSheet struct {
	conf     *logic.Confirmation
	mem      *logic.Memory
	computed bool
}

func NewToMemoSheet() *ToMemoSheet {
	return &ToMemoSheet{
		conf: logic.NewConfirmation(true, 120*time.Second),
		mem:  logic.NewMemory(false),
	}
}

func (s *ToMemoSheet) Update(
	delta time.Duration,
	p toConfigSignals,
	eng EngineNotRunning,
	gnd FlightPhasesGround,
	air FlightPhasesAir,
) {
	phase2 := gnd.Phase2()
	set := (phase2 || gnd.Phase9()) && p.ToConfigTest().Value()
	reset := gnd.Phase1() || gnd.Phase3() || air.Phase6() || gnd.Phase10()
	latched := s.mem.Update(set, reset)

	bothRunning := s.conf.Update(!eng.EngNotRunning(1) && !eng.EngNotRunning(2), delta)
	s.computed = latched || (phase2 && bothRunning)
}

func (s *ToMemoSheet) ToMemoComputed() bool { return s.computed }

// LdgMemo is the landing memo display request.
type LdgMemo interface {
	LdgMemo() bool
	ConfigMemoComputed() bool
}

// LdgMemoSheet shows the landing memo below 2000 ft after having flown above
// 2200 ft, and throughout phases 7 and 8.
type LdgMemoSheet struct {
	abv2200Conf *logic.Confirmation
	dualInvConf *logic.Confirmation
	memAbv2200  *logic.Memory
	memBlw2000  *logic.Memory
	ldgMemo     bool
	configMemo  bool
}

func NewLdgMemoSheet() *LdgMemoSheet {
	return &LdgMemoSheet{
		abv2200Conf: logic.NewConfirmation(true, time.Second),
		dualInvConf: logic.NewConfirmation(true, 10*time.Second),
		memAbv2200:  logic.NewMemory(false),
		memBlw2000:  logic.NewMemory(true),
	}
}

func (s *LdgMemoSheet) Update(
	delta time.Duration,
	p radioHeightSignals,
	gnd FlightPhasesGround,
	air FlightPhasesAir,
	lg LgDownlocked,
	to ToMemo,
) {
	rh1, rh2 := p.RadioHeight(1), p.RadioHeight(2)
	rh1Ion, rh2Ion := invOrNcd(rh1), invOrNcd(rh2)

	dualIon := rh1Ion && rh2Ion
	dualAbv2200OrIon := (rh1.Value() > 2200 || rh1Ion) && (rh2.Value() > 2200 || rh2Ion)
	anyBlw2000 := (!rh1Ion && rh1.Value() < 2000) || (!rh2Ion && rh2.Value() < 2000)

	phase6, phase7, phase8 := air.Phase6(), air.Phase7(), gnd.Phase8()

	abv2200 := s.memAbv2200.Update(
		s.abv2200Conf.Update(!dualIon && dualAbv2200OrIon, delta),
		!(phase6 || phase7 || phase8),
	)
	blw2000 := s.memBlw2000.Update(anyBlw2000, dualAbv2200OrIon)

	dualInvLgDown := s.dualInvConf.Update(rh1.IsInv() && rh2.IsInv() && lg.LgDownlocked() && phase6, delta)

	s.ldgMemo = (abv2200 && blw2000 && phase6) || phase7 || phase8 || dualInvLgDown
	s.configMemo = to.ToMemoComputed() || s.ldgMemo
}

func (s *LdgMemoSheet) LdgMemo() bool            { return s.ldgMemo }
func (s *LdgMemoSheet) ConfigMemoComputed() bool { return s.configMemo }
