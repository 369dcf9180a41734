package sheets

import (
	"fmt"
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// CallOut identifies a radio altitude call-out.
type CallOut int

const (
	CallOut2500Ft CallOut = iota
	CallOut2500B
	CallOut2000Ft
	CallOut1000Ft
	CallOut500Ft
	CallOut400Ft
	CallOut300Ft
	CallOut200Ft
	CallOut100Ft
	CallOut50Ft
	CallOut40Ft
	CallOut30Ft
	CallOut20Ft
	CallOut10Ft
	CallOut5Ft

	numCallOuts
)

var callOutFeet = [numCallOuts]int{2500, 2500, 2000, 1000, 500, 400, 300, 200, 100, 50, 40, 30, 20, 10, 5}

// Feet is the radio height the call-out announces.
func (c CallOut) Feet() int { return callOutFeet[c] }

func (c CallOut) String() string {
	if c == CallOut2500B {
		return "2500B"
	}
	return fmt.Sprintf("%dFT", c.Feet())
}

// callOutBands are the [low, high) radio height windows of each call-out.
// 2500B shares the 2500 ft window.
var callOutBands = [numCallOuts][2]float64{
	CallOut2500Ft: {2500, 2530},
	CallOut2500B:  {2500, 2530},
	CallOut2000Ft: {2000, 2020},
	CallOut1000Ft: {1000, 1020},
	CallOut500Ft:  {500, 513},
	CallOut400Ft:  {400, 410},
	CallOut300Ft:  {300, 310},
	CallOut200Ft:  {200, 210},
	CallOut100Ft:  {100, 110},
	CallOut50Ft:   {50, 53},
	CallOut40Ft:   {40, 42},
	CallOut30Ft:   {30, 32},
	CallOut20Ft:   {20, 22},
	CallOut10Ft:   {10, 12},
	CallOut5Ft:    {5, 6},
}

func pinProgrammed(p autoCallOutSignals, c CallOut) bool {
	if c == CallOut2500B {
		return p.AutoCallOut2500B().Value()
	}
	return p.AutoCallOut(c.Feet()).Value()
}

// CallOutWarning is implemented by every sheet that raises an aural call-out.
type CallOutWarning interface {
	Warning() bool
}

// DecisionHeight is the radio height and decision height compared by the
// HUNDRED ABOVE and MINIMUM call-outs.
type DecisionHeight interface {
	RadioHeightVal() float64
	DecisionHeightVal() float64
	DecisionInv() bool
}

// DecisionHeightSheet prefers RA 1, and the lower decision height when both
// sides are valid.
type DecisionHeightSheet struct {
	rh, dh float64
	inv    bool
}

func NewDecisionHeightSheet() *DecisionHeightSheet { return &DecisionHeightSheet{} }

func (s *DecisionHeightSheet) Update(p decisionHeightSignals) {
	rh := p.RadioHeight(1)
	if invOrNcd(rh) {
		rh = p.RadioHeight(2)
	}
	s.rh = rh.Value()

	dh1, dh2 := p.DecisionHeight(1), p.DecisionHeight(2)
	dh1Lost, dh2Lost := invOrNcd(dh1), invOrNcd(dh2)
	if dh1Lost || (!dh2Lost && dh1.Value() > dh2.Value()) {
		s.dh = dh2.Value()
	} else {
		s.dh = dh1.Value()
	}
	s.inv = dh1Lost && dh2Lost
}

func (s *DecisionHeightSheet) RadioHeightVal() float64    { return s.rh }
func (s *DecisionHeightSheet) DecisionHeightVal() float64 { return s.dh }
func (s *DecisionHeightSheet) DecisionInv() bool          { return s.inv }

// GpwsInhibition holds off call-outs while the GPWS is talking.
type GpwsInhibition interface {
	GpwsInhibition() bool
}

type GpwsInhibitionSheet struct {
	mtrig   *logic.MonostableTrigger
	inhibit bool
}

func NewGpwsInhibitionSheet() *GpwsInhibitionSheet {
	return &GpwsInhibitionSheet{mtrig: logic.NewMonostable(true, 2*time.Second)}
}

func (s *GpwsInhibitionSheet) Update(delta time.Duration, p gpwsSignals) {
	s.inhibit = s.mtrig.Update(p.GpwsModesOn().Value() || p.GsVisualAlertOn().Value(), delta)
}

func (s *GpwsInhibitionSheet) GpwsInhibition() bool { return s.inhibit }

// RadioAltitude is the radio height selected for the call-outs and the bands
// derived from it.
type RadioAltitude interface {
	RadioHeight() float64
	RaInvalid() bool
	RaNcd() bool
	RaFunctionalTest() bool
	Above50Ft() bool
	AtOrAbove410Ft() bool
	Below3Ft() bool
	NotDescending() bool
	InBand(c CallOut) bool
}

// RadioAltitudeSheet selects RA 1 unless it is failed or NCD. NotDescending
// stays true until the radio height has been decreasing for 0.3s.
type RadioAltitudeSheet struct {
	conf   *logic.Confirmation
	lastRh float64

	rh            float64
	invalid       bool
	ncd           bool
	functional    bool
	notDescending bool
}

func NewRadioAltitudeSheet() *RadioAltitudeSheet {
	return &RadioAltitudeSheet{conf: logic.NewConfirmation(false, 300*time.Millisecond)}
}

func (s *RadioAltitudeSheet) Update(delta time.Duration, p radioHeightSignals) {
	rh1, rh2 := p.RadioHeight(1), p.RadioHeight(2)
	selected := rh1
	if invOrNcd(rh1) {
		selected = rh2
	}

	s.rh = selected.Value()
	s.invalid = invOrNcd(rh1) && rh2.IsInv()
	s.ncd = selected.IsNoComputedData()
	s.functional = selected.IsFunctionalTest()
	s.notDescending = s.conf.Update(s.rh-s.lastRh > 0, delta)
	s.lastRh = s.rh
}

func (s *RadioAltitudeSheet) RadioHeight() float64   { return s.rh }
func (s *RadioAltitudeSheet) RaInvalid() bool        { return s.invalid }
func (s *RadioAltitudeSheet) RaNcd() bool            { return s.ncd }
func (s *RadioAltitudeSheet) RaFunctionalTest() bool { return s.functional }
func (s *RadioAltitudeSheet) Above50Ft() bool        { return s.rh > 50 }
func (s *RadioAltitudeSheet) AtOrAbove410Ft() bool   { return s.rh >= 410 }
func (s *RadioAltitudeSheet) Below3Ft() bool         { return !s.invalid && s.rh <= 3 }
func (s *RadioAltitudeSheet) NotDescending() bool    { return s.notDescending }

// InBand reports the radio height inside the call-out's window.
func (s *RadioAltitudeSheet) InBand(c CallOut) bool {
	band := callOutBands[c]
	return band[0] <= s.rh && s.rh < band[1]
}

// AutoCallOutInhibition inhibits the call-outs with the radio altimeters
// lost, at takeoff power, or on the ground with both engines started. A
// radio altimeter test on the ground overrides it.
type AutoCallOutInhibition interface {
	AutoCallOutInhib() bool
	RetardInhib() bool
}

type AutoCallOutInhibitionSheet struct {
	autoCallOut bool
	retard      bool
}

func NewAutoCallOutInhibitionSheet() *AutoCallOutInhibitionSheet {
	return &AutoCallOutInhibitionSheet{}
}

func (s *AutoCallOutInhibitionSheet) Update(
	p gearCompressedSignals,
	ra RadioAltitude,
	stall StallWarning,
	gnd Ground,
	pwr TakeoffPower,
	phases FlightPhasesGround,
	eng1 Eng1StartSequence,
	eng2 Eng2StartSequence,
) {
	groundTest := ra.RaFunctionalTest() &&
		(p.EssLhLgCompressed().Value() || p.NormLhLgCompressed().Value())
	lost := stall.StallOn() || ra.RaInvalid() || ra.RaNcd() || pwr.CfmFlex()
	leversOn := eng1.Eng1TempoMasterLever1On() && eng2.Eng2TempoMasterLever1On()

	s.autoCallOut = (lost || (leversOn && gnd.Ground())) && !groundTest
	s.retard = (lost || (leversOn && gnd.Ground() && !phases.Phase8())) && !groundTest
}

func (s *AutoCallOutInhibitionSheet) AutoCallOutInhib() bool { return s.autoCallOut }
func (s *AutoCallOutInhibitionSheet) RetardInhib() bool      { return s.retard }

// MdaMdhInhibition holds the HUNDRED ABOVE and MINIMUM call-outs.
type MdaMdhInhibition interface {
	MdaMdhInhib() bool
	DhInhib() bool
}

// MdaMdhInhibitionSheet inhibits the descent altitude call-outs during a
// stall warning, a GPWS alert or for 5s after a TCAS advisory. The decision
// height call-outs also need a usable decision height and radio height.
type MdaMdhInhibitionSheet struct {
	tcas   *logic.MonostableTrigger
	mdaMdh bool
	dh     bool
}

func NewMdaMdhInhibitionSheet() *MdaMdhInhibitionSheet {
	return &MdaMdhInhibitionSheet{tcas: logic.NewRetriggerableMonostable(true, 5*time.Second)}
}

func (s *MdaMdhInhibitionSheet) Update(
	delta time.Duration,
	p mdaMdhInhibitionSignals,
	stall StallWarning,
	gpws GpwsInhibition,
	dh DecisionHeight,
	aco AutoCallOutInhibition,
) {
	tcas := s.tcas.Update(p.TcasAuralAdvisoryOutput().Value(), delta)
	s.mdaMdh = stall.StallOn() || gpws.GpwsInhibition() || tcas

	raLost := invOrNcd(p.RadioHeight(1)) && invOrNcd(p.RadioHeight(2))
	s.dh = dh.DecisionHeightVal() <= 3 || dh.DecisionInv() || aco.AutoCallOutInhib() || raLost
}

func (s *MdaMdhInhibitionSheet) MdaMdhInhib() bool { return s.mdaMdh }
func (s *MdaMdhInhibitionSheet) DhInhib() bool     { return s.dh }

// minimumsCallOut is the logic HUNDRED ABOVE and MINIMUM share. The decision
// height path fires when the radio height drops into a band above the
// decision height; the descent altitude path fires on a request discrete
// from either side. Each path goes quiet once the monitor has played the
// call-out, and re-arms when its 3s window ends.
type minimumsCallOut struct {
	lowMargin, margin float64

	conf    *logic.Confirmation
	dhTrig  *logic.MonostableTrigger
	mdaTrig *logic.MonostableTrigger
	dhMem   *logic.Memory
	mdaMem  *logic.Memory
}

func newMinimumsCallOut(lowMargin, margin float64) minimumsCallOut {
	return minimumsCallOut{
		lowMargin: lowMargin,
		margin:    margin,
		conf:      logic.NewConfirmation(true, 100*time.Millisecond),
		dhTrig:    logic.NewMonostable(true, 3*time.Second),
		mdaTrig:   logic.NewMonostable(true, 3*time.Second),
		dhMem:     logic.NewMemory(false),
		mdaMem:    logic.NewMemory(false),
	}
}

func descentAltitudeRequest(v boolParam) bool { return v.IsNormal() && v.Value() }

func (c *minimumsCallOut) update(
	delta time.Duration,
	dh DecisionHeight,
	inhib MdaMdhInhibition,
	pin bool,
	capt, fo boolParam,
	generated bool,
) bool {
	margin := c.margin
	if dh.DecisionHeightVal() < 90 {
		margin = c.lowMargin
	}
	inBand := dh.RadioHeightVal() < dh.DecisionHeightVal()+margin

	dhTrig := c.dhTrig.Update(c.conf.Update(inBand, delta), delta)
	dhPlayed := c.dhMem.Update(generated, !dhTrig)
	dhCond := !dhPlayed && dhTrig && pin && !inhib.DhInhib()

	mdaTrig := c.mdaTrig.Update(descentAltitudeRequest(capt) || descentAltitudeRequest(fo), delta)
	mdaPlayed := c.mdaMem.Update(generated, !mdaTrig)
	mdaCond := !mdaPlayed && mdaTrig && pin && !inhib.MdaMdhInhib()

	return dhCond || mdaCond
}

// HundredAbove reports HUNDRED ABOVE raised this cycle or played on the
// last one.
type HundredAbove interface {
	DhHundredAbove() bool
	HaGenerated() bool
}

// HundredAboveSheet calls HUNDRED ABOVE 100ft above the decision height, or
// 90ft when the decision height is below 90ft.
type HundredAboveSheet struct {
	callOut        minimumsCallOut
	haGenerated    bool
	dhHundredAbove bool
}

func NewHundredAboveSheet() *HundredAboveSheet {
	return &HundredAboveSheet{callOut: newMinimumsCallOut(105, 115)}
}

// Update takes whether the monitor played HUNDRED ABOVE on the previous cycle.
func (s *HundredAboveSheet) Update(
	delta time.Duration,
	p hundredAboveSignals,
	dh DecisionHeight,
	inhib MdaMdhInhibition,
	generated bool,
) {
	pin := p.DecisionHeightPlus100FtCode(1).Value() && p.DecisionHeightPlus100FtCode(2).Value()
	s.haGenerated = s.callOut.update(delta, dh, inhib, pin,
		p.HundredAboveForMdaMdhRequest(1), p.HundredAboveForMdaMdhRequest(2), generated)
	s.dhHundredAbove = s.haGenerated || generated
}

func (s *HundredAboveSheet) DhHundredAbove() bool { return s.dhHundredAbove }
func (s *HundredAboveSheet) HaGenerated() bool    { return s.haGenerated }
func (s *HundredAboveSheet) Warning() bool        { return s.haGenerated }

// Minimum reports that the minimums have been called on this approach.
type Minimum interface {
	DhGenerated() bool
}

// MinimumSheet calls MINIMUM at the decision height. Once either minimums
// call-out has been played the lower altitude call-outs are held until the
// aircraft climbs back through 410ft.
type MinimumSheet struct {
	callOut     minimumsCallOut
	played      *logic.Memory
	warning     bool
	dhGenerated bool
}

func NewMinimumSheet() *MinimumSheet {
	return &MinimumSheet{
		callOut: newMinimumsCallOut(5, 15),
		played:  logic.NewMemory(true),
	}
}

// Update takes whether the monitor played MINIMUM on the previous cycle.
func (s *MinimumSheet) Update(
	delta time.Duration,
	p minimumSignals,
	dh DecisionHeight,
	inhib MdaMdhInhibition,
	ha HundredAbove,
	ra RadioAltitude,
	generated bool,
) {
	pin := p.DecisionHeightCode(1).Value() && p.DecisionHeightCode(2).Value()
	s.warning = s.callOut.update(delta, dh, inhib, pin,
		p.MinimumForMdaMdhRequest(1), p.MinimumForMdaMdhRequest(2), generated)
	s.dhGenerated = s.played.Update(generated || ha.DhHundredAbove(), ra.AtOrAbove410Ft())
}

func (s *MinimumSheet) DhGenerated() bool { return s.dhGenerated }
func (s *MinimumSheet) Warning() bool     { return s.warning }

// CallOutInhibits groups the call-outs by the conditions that silence them.
// UpperInhibit holds 1000ft down to 50ft, MiddleInhibit 40ft to 20ft and
// LowerInhibit 10ft and 5ft.
type CallOutInhibits interface {
	ThresholdDetection() bool
	ToAndGroundDetection() bool
	UpperInhibit() bool
	MiddleInhibit() bool
	LowerInhibit() bool
}

type CallOutInhibitsSheet struct {
	thresholdDetection bool
	toAndGround        bool
	upper              bool
	middle             bool
	lower              bool
}

func NewCallOutInhibitsSheet() *CallOutInhibitsSheet { return &CallOutInhibitsSheet{} }

func (s *CallOutInhibitsSheet) Update(ra RadioAltitude, gpws GpwsInhibition, dhDt DhDtPositive, min Minimum) {
	s.thresholdDetection = false
	for c := CallOut400Ft; c < numCallOuts; c++ {
		s.thresholdDetection = s.thresholdDetection || ra.InBand(c)
	}

	s.toAndGround = ra.Below3Ft() || dhDt.DhPositive()
	s.upper = s.toAndGround || gpws.GpwsInhibition() || min.DhGenerated()
	s.middle = s.toAndGround || min.DhGenerated()
	s.lower = s.toAndGround || ra.Below3Ft() || ra.NotDescending()
}

func (s *CallOutInhibitsSheet) ThresholdDetection() bool   { return s.thresholdDetection }
func (s *CallOutInhibitsSheet) ToAndGroundDetection() bool { return s.toAndGround }
func (s *CallOutInhibitsSheet) UpperInhibit() bool         { return s.upper }
func (s *CallOutInhibitsSheet) MiddleInhibit() bool        { return s.middle }
func (s *CallOutInhibitsSheet) LowerInhibit() bool         { return s.lower }

// CallOutTriggers reports a call-out whose window has been reached with its
// pin programmed and no inhibition. NonInhibitedDetection covers 400ft down
// to 10ft.
type CallOutTriggers interface {
	Triggered(c CallOut) bool
	NonInhibitedDetection() bool
}

// CallOutTriggersSheet confirms the 2500ft to 500ft windows for 0.2s. The
// 500ft trigger ignores the pin programming, which the announce sheet checks
// with the glide slope option.
type CallOutTriggersSheet struct {
	conf      map[CallOut]*logic.Confirmation
	tcas      *logic.MonostableTrigger
	triggered [numCallOuts]bool
	detection bool
}

func NewCallOutTriggersSheet() *CallOutTriggersSheet {
	conf := make(map[CallOut]*logic.Confirmation)
	for _, c := range []CallOut{CallOut2500Ft, CallOut2000Ft, CallOut1000Ft, CallOut500Ft} {
		conf[c] = logic.NewConfirmation(true, 200*time.Millisecond)
	}
	return &CallOutTriggersSheet{
		conf: conf,
		tcas: logic.NewMonostable(true, 5*time.Second),
	}
}

// Update raises the trigger of each pin-programmed call-out whose window the
// radio height is in, unless its band is inhibited.
func (s *CallOutTriggersSheet) Update(
	delta time.Duration,
	p callOutTriggerSignals,
	ra RadioAltitude,
	gpws GpwsInhibition,
	inh CallOutInhibits,
) {
	tcas := s.tcas.Update(p.TcasAuralAdvisoryOutput().Value(), delta)
	highInhibit := gpws.GpwsInhibition() || tcas
	lowInhibit := inh.UpperInhibit() || tcas

	confirmed := make(map[CallOut]bool, len(s.conf))
	for c, conf := range s.conf {
		confirmed[c] = conf.Update(ra.InBand(c), delta)
	}

	s.triggered[CallOut2500Ft] = pinProgrammed(p, CallOut2500Ft) && confirmed[CallOut2500Ft] && !highInhibit
	s.triggered[CallOut2500B] = pinProgrammed(p, CallOut2500B) && confirmed[CallOut2500Ft] && !highInhibit
	s.triggered[CallOut2000Ft] = pinProgrammed(p, CallOut2000Ft) && confirmed[CallOut2000Ft] && !highInhibit
	s.triggered[CallOut1000Ft] = pinProgrammed(p, CallOut1000Ft) && confirmed[CallOut1000Ft] && !lowInhibit
	s.triggered[CallOut500Ft] = confirmed[CallOut500Ft] && !lowInhibit

	for c := CallOut400Ft; c <= CallOut50Ft; c++ {
		s.triggered[c] = pinProgrammed(p, c) && ra.InBand(c) && !inh.UpperInhibit()
	}

	s.triggered[CallOut40Ft] = ra.InBand(CallOut40Ft) &&
		(ra.RaFunctionalTest() || (!inh.MiddleInhibit() && pinProgrammed(p, CallOut40Ft)))
	for _, c := range []CallOut{CallOut30Ft, CallOut20Ft} {
		s.triggered[c] = pinProgrammed(p, c) && ra.InBand(c) && !inh.MiddleInhibit()
	}
	for _, c := range []CallOut{CallOut10Ft, CallOut5Ft} {
		s.triggered[c] = pinProgrammed(p, c) && ra.InBand(c) && !inh.LowerInhibit()
	}

	s.detection = false
	for c := CallOut400Ft; c <= CallOut10Ft; c++ {
		s.detection = s.detection || s.triggered[c]
	}
}

func (s *CallOutTriggersSheet) Triggered(c CallOut) bool   { return s.triggered[c] }
func (s *CallOutTriggersSheet) NonInhibitedDetection() bool { return s.detection }

var highCallOutHysteresis = map[CallOut][2]float64{
	CallOut2500Ft: {2500, 3000},
	CallOut2500B:  {2500, 3000},
	CallOut2000Ft: {2000, 2400},
	CallOut1000Ft: {1000, 1100},
}

// HighCallOutSheet announces 2500ft, 2000ft or 1000ft once per descent. The
// call-out is armed by climbing above its hysteresis band and disarmed when
// the radio height drops below it.
type HighCallOutSheet struct {
	callOut CallOut
	hyst    *logic.Hysteresis[float64]
	mem     *logic.Memory
	reset   *logic.Pulse
	active  *logic.Pulse
	prec    *logic.PrecedingValue
	warning bool
}

// NewHighCallOutSheet panics for a call-out below 1000ft.
func NewHighCallOutSheet(c CallOut) *HighCallOutSheet {
	band, ok := highCallOutHysteresis[c]
	if !ok {
		panic(fmt.Sprintf("high call out: %v has no arming band", c))
	}
	return &HighCallOutSheet{
		callOut: c,
		hyst:    logic.NewHysteresis(band[0], band[1]),
		mem:     logic.NewMemory(false),
		reset:   logic.NewPulse(false),
		active:  logic.NewPulse(true),
		prec:    logic.NewPrecedingValue(),
	}
}

// Update arms the call-out above its height and fires it once on the way down.
func (s *HighCallOutSheet) Update(ra RadioAltitude, inhib AutoCallOutInhibition, trig CallOutTriggers) {
	armed := s.hyst.Update(ra.RadioHeight())
	played := s.mem.Update(s.prec.Value(), s.reset.Update(armed))

	s.warning = armed && trig.Triggered(s.callOut) && !inhib.AutoCallOutInhib() && !played
	s.prec.Update(s.active.Update(s.warning))
}

func (s *HighCallOutSheet) Warning() bool { return s.warning }

// FiveHundredCallOutSheet announces 500ft, either unconditionally or, with the
// glide slope option, only when off the glide slope.
type FiveHundredCallOutSheet struct {
	onGs      [2]*logic.Confirmation
	gsTrig    *logic.MonostableTrigger
	plainTrig *logic.MonostableTrigger
	gsPrec    *logic.PrecedingValue
	plainPrec *logic.PrecedingValue
	warning   bool
}

func NewFiveHundredCallOutSheet() *FiveHundredCallOutSheet {
	return &FiveHundredCallOutSheet{
		onGs: [2]*logic.Confirmation{
			logic.NewConfirmation(false, 500*time.Millisecond),
			logic.NewConfirmation(false, 500*time.Millisecond),
		},
		gsTrig:    logic.NewMonostable(true, 11*time.Second),
		plainTrig: logic.NewMonostable(true, 11*time.Second),
		gsPrec:    logic.NewPrecedingValue(),
		plainPrec: logic.NewPrecedingValue(),
	}
}

func (s *FiveHundredCallOutSheet) Update(
	delta time.Duration,
	p glideDeviationSignals,
	inhib AutoCallOutInhibition,
	trig CallOutTriggers,
) {
	var onGs, lost [2]bool
	for i := range onGs {
		gd := p.GlideDeviation(i + 1)
		lost[i] = invOrNcd(gd)
		onGs[i] = lost[i] || s.onGs[i].Update(gd.Value() < 0.175, delta)
	}
	offGs := !onGs[0] || !onGs[1] || (lost[0] && lost[1])

	armed := trig.Triggered(CallOut500Ft) && !inhib.AutoCallOutInhib()

	gs := offGs && p.AutoCallOut500FtGlideDeviation().Value() && armed && !s.gsPrec.Value()
	s.gsPrec.Update(s.gsTrig.Update(gs, delta))

	plain := p.AutoCallOut(500).Value() && armed && !s.plainPrec.Value()
	s.plainPrec.Update(s.plainTrig.Update(plain, delta))

	s.warning = gs || plain
}

func (s *FiveHundredCallOutSheet) Warning() bool { return s.warning }

// callOutNodes is the edge and hold-off logic of the low altitude
// call-outs. A played call-out cannot repeat until hold has elapsed.
type callOutNodes struct {
	pulse   *logic.Pulse
	mtrig   *logic.MonostableTrigger
	prec    *logic.PrecedingValue
	warning bool
}

func newCallOutNodes(hold time.Duration) callOutNodes {
	return callOutNodes{
		pulse: logic.NewPulse(true),
		mtrig: logic.NewMonostable(true, hold),
		prec:  logic.NewPrecedingValue(),
	}
}

func (n *callOutNodes) hold(delta time.Duration) { n.prec.Update(n.mtrig.Update(n.warning, delta)) }

func (n *callOutNodes) Warning() bool { return n.warning }

// PulseCallOutSheet announces 400ft down to 100ft on entering the window, at
// most once every 5s.
type PulseCallOutSheet struct {
	callOutNodes
	callOut CallOut
}

func NewPulseCallOutSheet(c CallOut) *PulseCallOutSheet {
	return &PulseCallOutSheet{callOutNodes: newCallOutNodes(5 * time.Second), callOut: c}
}

func (s *PulseCallOutSheet) Update(delta time.Duration, inhib AutoCallOutInhibition, trig CallOutTriggers) {
	s.warning = s.pulse.Update(trig.Triggered(s.callOut)) && !inhib.AutoCallOutInhib() && !s.prec.Value()
	s.hold(delta)
}

// ChainedCallOutSheet announces 50ft, 40ft or 30ft unless the next lower
// call-out is already playing, so a fast descent skips to the lowest one.
type ChainedCallOutSheet struct {
	callOutNodes
	callOut CallOut
}

func NewChainedCallOutSheet(c CallOut) *ChainedCallOutSheet {
	return &ChainedCallOutSheet{callOutNodes: newCallOutNodes(2 * time.Second), callOut: c}
}

// Update must run after the sheet of the next lower call-out.
func (s *ChainedCallOutSheet) Update(
	delta time.Duration,
	inhib AutoCallOutInhibition,
	trig CallOutTriggers,
	lower CallOutWarning,
) {
	entered := s.pulse.Update(trig.Triggered(s.callOut) && !inhib.AutoCallOutInhib())
	s.warning = entered && !s.prec.Value() && !lower.Warning()
	s.hold(delta)
}

func anyApInLand(p landingModeSignals, ap AutopilotOffVoluntary) bool {
	return (ap.Ap1Engd() && p.LandTrkModeOn(1).Value()) || (ap.Ap2Engd() && p.LandTrkModeOn(2).Value())
}

// TwentyCallOutSheet announces 20ft during an autoland with autothrust,
// where RETARD replaces it otherwise.
type TwentyCallOutSheet struct {
	callOutNodes
}

func NewTwentyCallOutSheet() *TwentyCallOutSheet {
	return &TwentyCallOutSheet{newCallOutNodes(2 * time.Second)}
}

func (s *TwentyCallOutSheet) Update(
	delta time.Duration,
	p landingModeSignals,
	inhib AutoCallOutInhibition,
	trig CallOutTriggers,
	ap AutopilotOffVoluntary,
	ten CallOutWarning,
) {
	entered := s.pulse.Update(trig.Triggered(CallOut20Ft) && !inhib.AutoCallOutInhib())
	autoland := anyApInLand(p, ap) && p.AThrEngaged().Value()
	s.warning = autoland && entered && !s.prec.Value() && !ten.Warning()
	s.hold(delta)
}

// TenCallOutSheet announces 10ft unless an autoland with autothrust calls
// RETARD instead.
type TenCallOutSheet struct {
	callOutNodes
}

func NewTenCallOutSheet() *TenCallOutSheet {
	return &TenCallOutSheet{newCallOutNodes(2 * time.Second)}
}

func (s *TenCallOutSheet) Update(
	delta time.Duration,
	p landingModeSignals,
	inhib AutoCallOutInhibition,
	trig CallOutTriggers,
	ap AutopilotOffVoluntary,
	five CallOutWarning,
) {
	entered := s.pulse.Update(trig.Triggered(CallOut10Ft) && !inhib.AutoCallOutInhib())
	athr := p.AThrEngaged().Value()
	manualThrust := (!anyApInLand(p, ap) && athr) || !athr
	s.warning = manualThrust && entered && !s.prec.Value() && !five.Warning()
	s.hold(delta)
}

// FiveCallOutSheet announces 5ft.
type FiveCallOutSheet struct {
	callOutNodes
}

func NewFiveCallOutSheet() *FiveCallOutSheet {
	return &FiveCallOutSheet{newCallOutNodes(2 * time.Second)}
}

func (s *FiveCallOutSheet) Update(delta time.Duration, inhib AutoCallOutInhibition, trig CallOutTriggers) {
	s.warning = s.pulse.Update(trig.Triggered(CallOut5Ft) && !inhib.AutoCallOutInhib() && !s.prec.Value())
	s.hold(delta)
}

// TogaCondition reports thrust levers in the go-around range, which
// suppresses RETARD.
type TogaCondition interface {
	Toga() bool
	RetardToga() bool
}

// TwentyRetardCallOutSheet calls RETARD at 20ft when the landing is not an
// autoland with autothrust.
type TwentyRetardCallOutSheet struct {
	callOutNodes
	toga       bool
	retardToga bool
}

func NewTwentyRetardCallOutSheet() *TwentyRetardCallOutSheet {
	return &TwentyRetardCallOutSheet{callOutNodes: newCallOutNodes(2 * time.Second)}
}

func (s *TwentyRetardCallOutSheet) Update(
	delta time.Duration,
	p retardSignals,
	inhib AutoCallOutInhibition,
	mct TlaAtMctOrFlexToCfm,
	phases FlightPhasesGround,
	trig CallOutTriggers,
	ap AutopilotOffVoluntary,
) {
	togaLever := p.Tla(1, 1).Value() > 43.3 || p.Tla(2, 1).Value() > 43.3
	goAround := phases.Phase8() && (mct.SupMctCfm(1) || mct.SupMctCfm(2))
	toga := togaLever || goAround

	s.retardToga = inhib.RetardInhib() || toga
	s.toga = toga || inhib.AutoCallOutInhib()

	autoland := p.AThrEngaged().Value() && anyApInLand(p, ap)
	s.warning = s.pulse.Update(!s.toga && trig.Triggered(CallOut20Ft) && !autoland && !s.prec.Value())
	s.hold(delta)
}

func (s *TwentyRetardCallOutSheet) Toga() bool       { return s.toga }
func (s *TwentyRetardCallOutSheet) RetardToga() bool { return s.retardToga }

// TenRetardCallOutSheet calls RETARD at 10ft during an autoland with
// autothrust.
type TenRetardCallOutSheet struct {
	callOutNodes
}

func NewTenRetardCallOutSheet() *TenRetardCallOutSheet {
	return &TenRetardCallOutSheet{newCallOutNodes(2 * time.Second)}
}

func (s *TenRetardCallOutSheet) Update(
	delta time.Duration,
	p landingModeSignals,
	inhib AutoCallOutInhibition,
	toga TogaCondition,
	trig CallOutTriggers,
	ap AutopilotOffVoluntary,
) {
	autoland := p.AThrEngaged().Value() && anyApInLand(p, ap)
	s.warning = s.pulse.Update(!(toga.Toga() || inhib.AutoCallOutInhib()) &&
		trig.Triggered(CallOut10Ft) && autoland && !s.prec.Value())
	s.hold(delta)
}

// IntermediateAudio tells the monitor when it may fill the gaps between
// call-outs with a radio height readout.
type IntermediateAudio interface {
	IntermediateCallOut() bool
}

// IntermediateAudioSheet holds the readout off above 410ft, on the ground,
// during a GPWS alert and after the minimums, and for 4s (11s above 50ft)
// after each call-out threshold.
type IntermediateAudioSheet struct {
	threshold *logic.Pulse
	interAud  *logic.Pulse
	low       *logic.MonostableTrigger
	high      *logic.MonostableTrigger
	mem       *logic.Memory
	callOut   bool
}

func NewIntermediateAudioSheet() *IntermediateAudioSheet {
	return &IntermediateAudioSheet{
		threshold: logic.NewPulse(true),
		interAud:  logic.NewPulse(true),
		low:       logic.NewRetriggerableMonostable(true, 4*time.Second),
		high:      logic.NewRetriggerableMonostable(true, 11*time.Second),
		mem:       logic.NewMemory(true),
	}
}

// Update takes whether the monitor played a call-out and an intermediate
// readout on the previous cycle.
func (s *IntermediateAudioSheet) Update(
	delta time.Duration,
	ra RadioAltitude,
	inh CallOutInhibits,
	gpws GpwsInhibition,
	trig CallOutTriggers,
	min Minimum,
	callOutGenerated bool,
	interAudio bool,
) {
	inhibited := s.mem.Update(
		ra.AtOrAbove410Ft() || inh.ToAndGroundDetection() || gpws.GpwsInhibition(),
		trig.NonInhibitedDetection() && callOutGenerated,
	)

	edge := s.threshold.Update(inh.ThresholdDetection()) || s.interAud.Update(interAudio)
	low := s.low.Update(edge && !ra.Above50Ft(), delta)
	high := s.high.Update(edge && ra.Above50Ft(), delta)

	s.callOut = inhibited || min.DhGenerated() || low || high
}

func (s *IntermediateAudioSheet) IntermediateCallOut() bool { return s.callOut }
