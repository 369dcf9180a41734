package sheets

import (
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// EngineNotRunning reports each engine as shut down.
type EngineNotRunning interface {
	EngNotRunning(eng int) bool
}

// EnginesNotRunningSheet considers an engine shut down when its master lever
// is validly off, or when neither core speed channel has been at idle for 30s
// and the engine has not just been seen running in flight.
type EnginesNotRunningSheet struct {
	firePbTransient *logic.TransientDetection
	coreConf        [2][2]*logic.Confirmation
	notRunning      [2]bool
}

func NewEnginesNotRunningSheet() *EnginesNotRunningSheet {
	s := &EnginesNotRunningSheet{firePbTransient: logic.NewTransientDetection(true)}
	for eng := range s.coreConf {
		for ch := range s.coreConf[eng] {
			s.coreConf[eng][ch] = logic.NewConfirmation(true, 30*time.Second)
		}
	}
	return s
}

func (s *EnginesNotRunningSheet) Update(delta time.Duration, p engineRunningSignals, gnd Ground) {
	firePbChanged := s.firePbTransient.Update(p.Eng1FirePbOut().Value())

	for i := 0; i < 2; i++ {
		eng := i + 1
		a := p.CoreSpeedAtOrAboveIdle(eng, 1).Value()
		b := p.CoreSpeedAtOrAboveIdle(eng, 2).Value()

		confA := s.coreConf[i][0].Update(a, delta)
		confB := s.coreConf[i][1].Update(b, delta)
		notRunningConfirmed := !confA && !confB
		runningImmediate := a && b && firePbChanged && !gnd.Ground()

		lever := p.MasterLeverSelectOn(eng)
		s.notRunning[i] = (lever.IsVal() && !lever.Value()) || (notRunningConfirmed && !runningImmediate)
	}
}

func (s *EnginesNotRunningSheet) EngNotRunning(eng int) bool { return s.notRunning[eng-1] }

// EngRunning summarises the engine running state for the phase logic.
type EngRunning interface {
	Eng1And2NotRunning() bool
	Eng1Or2Running() bool
	OneEngRunning() bool
}

type EngRunningSheet struct {
	conf           *logic.Confirmation
	bothNotRunning bool
	eng1Or2Running bool
	oneEngRunning  bool
}

func NewEngRunningSheet() *EngRunningSheet {
	return &EngRunningSheet{conf: logic.NewConfirmation(true, 30*time.Second)}
}

func (s *EngRunningSheet) Update(delta time.Duration, p coreSpeedSignals, notRunning EngineNotRunning) {
	s.bothNotRunning = notRunning.EngNotRunning(1) && notRunning.EngNotRunning(2)
	s.oneEngRunning = p.CoreSpeedAtOrAboveIdle(1, 1).Value() ||
		p.CoreSpeedAtOrAboveIdle(1, 2).Value() ||
		p.CoreSpeedAtOrAboveIdle(2, 1).Value() ||
		p.CoreSpeedAtOrAboveIdle(2, 2).Value()
	s.eng1Or2Running = s.conf.Update(s.oneEngRunning, delta)
}

func (s *EngRunningSheet) Eng1And2NotRunning() bool { return s.bothNotRunning }
func (s *EngRunningSheet) Eng1Or2Running() bool     { return s.eng1Or2Running }
func (s *EngRunningSheet) OneEngRunning() bool      { return s.oneEngRunning }

// EngTakeOffCfm reports engines at takeoff N1 and thrust levers at idle.
type EngTakeOffCfm interface {
	EngToCfm(eng int) bool
	TlaIdlePwrCfm(eng int) bool
}

type EngTakeOffCfmSheet struct {
	toCfm   [2]bool
	idlePwr [2]bool
}

func NewEngTakeOffCfmSheet() *EngTakeOffCfmSheet { return &EngTakeOffCfmSheet{} }

func (s *EngTakeOffCfmSheet) Update(p takeoffSignals) {
	for i := 0; i < 2; i++ {
		eng := i + 1
		above95 := false
		for ch := 1; ch <= 2; ch++ {
			n1 := p.N1SelectedActual(eng, ch)
			above95 = above95 || (!invOrNcd(n1) && n1.Value() > 95)
		}
		s.toCfm[i] = above95

		s.idlePwr[i] = (p.ChannelInControl(eng, 1).Value() && p.TlaIdlePwr(eng, 1).Value()) ||
			(p.ChannelInControl(eng, 2).Value() && p.TlaIdlePwr(eng, 2).Value())
	}
}

func (s *EngTakeOffCfmSheet) EngToCfm(eng int) bool      { return s.toCfm[eng-1] }
func (s *EngTakeOffCfmSheet) TlaIdlePwrCfm(eng int) bool { return s.idlePwr[eng-1] }

// NeoEcu carries the go-around modes reported by the engine control units.
type NeoEcu interface {
	AutoToga(eng int) bool
	LimitModeSoftGa(eng int) bool
}

type NeoEcuSheet struct {
	autoToga [2]bool
	softGa   [2]bool
}

func NewNeoEcuSheet() *NeoEcuSheet { return &NeoEcuSheet{} }

func (s *NeoEcuSheet) Update(p neoEcuSignals) {
	for i := 0; i < 2; i++ {
		eng := i + 1
		s.autoToga[i] = p.AutoToga(eng, 1).Value() || p.AutoToga(eng, 2).Value()
		s.softGa[i] = p.LimitModeSoftGa(eng, 1).Value() || p.LimitModeSoftGa(eng, 2).Value()
	}
}

func (s *NeoEcuSheet) AutoToga(eng int) bool        { return s.autoToga[eng-1] }
func (s *NeoEcuSheet) LimitModeSoftGa(eng int) bool { return s.softGa[eng-1] }

// TlaAtMctOrFlexToCfm reports thrust levers in or above the MCT/FLX detent.
type TlaAtMctOrFlexToCfm interface {
	TlaMctCfm(eng int) bool
	EndMct(eng int) bool
	SupMctCfm(eng int) bool
}

type TlaAtMctOrFlexToCfmSheet struct {
	mct    [2]bool
	endMct [2]bool
	supMct [2]bool
}

func NewTlaAtMctOrFlexToCfmSheet() *TlaAtMctOrFlexToCfmSheet { return &TlaAtMctOrFlexToCfmSheet{} }

func (s *TlaAtMctOrFlexToCfmSheet) Update(p tlaSignals) {
	for i := 0; i < 2; i++ {
		s.mct[i], s.endMct[i], s.supMct[i] = false, false, false
		for ch := 1; ch <= 2; ch++ {
			tla := p.Tla(i+1, ch)
			below := tla.Value() < 36.7
			valid := tla.IsVal()

			s.mct[i] = s.mct[i] || (below && valid && tla.Value() > 33.3)
			s.endMct[i] = s.endMct[i] || (below && valid && tla.Value() > 36.6)
			s.supMct[i] = s.supMct[i] || (!below && valid)
		}
	}
}

func (s *TlaAtMctOrFlexToCfmSheet) TlaMctCfm(eng int) bool { return s.mct[eng-1] }
func (s *TlaAtMctOrFlexToCfmSheet) EndMct(eng int) bool    { return s.endMct[eng-1] }
func (s *TlaAtMctOrFlexToCfmSheet) SupMctCfm(eng int) bool { return s.supMct[eng-1] }

// TlaPwrReverse reports thrust levers at full power or in reverse.
type TlaPwrReverse interface {
	TlaFullPwrCfm(eng int) bool
	TlaReverseCfm(eng int) bool
}

// TlaPwrReverseSheet treats takeoff N1 as full power unless the lever is, or
// was within the last 10s, in reverse.
type TlaPwrReverseSheet struct {
	conf    [2]*logic.Confirmation
	fullPwr [2]bool
	reverse [2]bool
}

func NewTlaPwrReverseSheet() *TlaPwrReverseSheet {
	return &TlaPwrReverseSheet{conf: [2]*logic.Confirmation{
		logic.NewConfirmation(false, 10*time.Second),
		logic.NewConfirmation(false, 10*time.Second),
	}}
}

func (s *TlaPwrReverseSheet) Update(delta time.Duration, p tlaSignals, to EngTakeOffCfm) {
	for i := 0; i < 2; i++ {
		eng := i + 1
		a, b := p.Tla(eng, 1), p.Tla(eng, 2)

		reverse := (a.Value() < -4.3 && !invOrNcd(a)) || (b.Value() < -4.3 && !invOrNcd(b))
		s.reverse[i] = reverse

		recentReverse := s.conf[i].Update(reverse, delta) || reverse
		toConf := to.EngToCfm(eng) && !recentReverse
		s.fullPwr[i] = a.Value() > 43.3 || toConf || b.Value() > 43.3
	}
}

func (s *TlaPwrReverseSheet) TlaFullPwrCfm(eng int) bool { return s.fullPwr[eng-1] }
func (s *TlaPwrReverseSheet) TlaReverseCfm(eng int) bool { return s.reverse[eng-1] }

// TlaAtClCfm reports thrust levers in the climb detent.
type TlaAtClCfm interface {
	TlaClCfm(eng int) bool
	Eng12MclCfm() bool
}

type TlaAtClCfmSheet struct {
	cl  [2]bool
	mcl bool
}

func NewTlaAtClCfmSheet() *TlaAtClCfmSheet { return &TlaAtClCfmSheet{} }

func (s *TlaAtClCfmSheet) Update(p tlaSignals) {
	var atOrAboveCl [2]bool
	for i := 0; i < 2; i++ {
		s.cl[i] = false
		for ch := 1; ch <= 2; ch++ {
			tla := p.Tla(i+1, ch)
			aboveLower := tla.Value() > 22.9 && tla.IsVal()
			s.cl[i] = s.cl[i] || (aboveLower && tla.Value() < 27.1)
			atOrAboveCl[i] = atOrAboveCl[i] || aboveLower
		}
	}
	s.mcl = atOrAboveCl[0] && atOrAboveCl[1]
}

func (s *TlaAtClCfmSheet) TlaClCfm(eng int) bool { return s.cl[eng-1] }
func (s *TlaAtClCfmSheet) Eng12MclCfm() bool     { return s.mcl }

// TakeoffPower is the takeoff power determination used by the phase logic.
type TakeoffPower interface {
	CfmFlex() bool
	Eng1Or2ToPwr() bool
}

// CfmFlightPhasesSheet holds takeoff power for a minute after the levers leave
// the takeoff range, as long as the aircraft is below 1500 ft with both levers
// at or above climb.
type CfmFlightPhasesSheet struct {
	conf    *logic.Confirmation
	cfmFlex bool
	toPwr   bool
}

func NewCfmFlightPhasesSheet() *CfmFlightPhasesSheet {
	return &CfmFlightPhasesSheet{conf: logic.NewConfirmation(false, 60*time.Second)}
}

func (s *CfmFlightPhasesSheet) Update(
	delta time.Duration,
	p tlaFtoSignals,
	neo NeoEcu,
	mct TlaAtMctOrFlexToCfm,
	pwr TlaPwrReverse,
	alt AltitudeDef,
	cl TlaAtClCfm,
) {
	var flex [2]bool
	for i := 0; i < 2; i++ {
		eng := i + 1
		flex[i] = mct.TlaMctCfm(eng) &&
			(neo.AutoToga(eng) || neo.LimitModeSoftGa(eng) || p.TlaFto(eng, 1).Value() || p.TlaFto(eng, 2).Value())
	}
	s.cfmFlex = flex[0] || flex[1]

	takeoffRange := s.cfmFlex ||
		mct.SupMctCfm(1) || mct.SupMctCfm(2) ||
		pwr.TlaFullPwrCfm(1) || pwr.TlaFullPwrCfm(2)
	held := s.conf.Update(takeoffRange, delta) && !alt.HGt1500Ft() && cl.Eng12MclCfm()

	s.toPwr = takeoffRange || held
}

func (s *CfmFlightPhasesSheet) CfmFlex() bool      { return s.cfmFlex }
func (s *CfmFlightPhasesSheet) Eng1Or2ToPwr() bool { return s.toPwr }

// AltitudeDef is the radio altitude band determination.
type AltitudeDef interface {
	HGt800Ft() bool
	HGt1500Ft() bool
	HFail() bool
}

// AltitudeDefSheet treats dual NCD radio altimeters, confirmed for 4s, as
// being above 1500 ft.
type AltitudeDefSheet struct {
	conf  *logic.Confirmation
	mem   *logic.Memory
	hFail bool
	h800  bool
	h1500 bool
}

func NewAltitudeDefSheet() *AltitudeDefSheet {
	return &AltitudeDefSheet{
		conf: logic.NewConfirmation(true, 4*time.Second),
		mem:  logic.NewMemory(false),
	}
}

func (s *AltitudeDefSheet) Update(delta time.Duration, p radioHeightSignals) {
	rh1, rh2 := p.RadioHeight(1), p.RadioHeight(2)
	dualInv := rh1.IsInv() && rh2.IsInv()
	s.hFail = dualInv

	noData := s.conf.Update(!dualInv && invOrNcd(rh1) && invOrNcd(rh2), delta)

	s.h1500 = (rh1.Value() > 1500 && !rh1.IsInv()) || (rh2.Value() > 1500 && !rh2.IsInv()) || noData

	below800 := (rh1.Value() < 800 && !invOrNcd(rh1)) || (rh2.Value() < 800 && !invOrNcd(rh2))
	s.h800 = s.mem.Update(s.h1500, below800 && !noData)
}

func (s *AltitudeDefSheet) HGt800Ft() bool  { return s.h800 }
func (s *AltitudeDefSheet) HGt1500Ft() bool { return s.h1500 }
func (s *AltitudeDefSheet) HFail() bool     { return s.hFail }
