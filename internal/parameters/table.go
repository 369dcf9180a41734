package parameters

import (
	"fmt"

	"github.com/sweeney/fwc-sim/internal/arinc429"
)

// Table is one computation cycle's worth of acquired parameters. The zero
// value holds every parameter as failure warning.
type Table struct {
	discretes [numDiscretes]arinc429.Value[bool]
	numerics  [numNumerics]arinc429.Value[float64]
}

// Discrete returns a boolean parameter by identifier.
func (t *Table) Discrete(d Discrete) arinc429.Value[bool] { return t.discretes[d] }

// Numeric returns a numeric parameter by identifier.
func (t *Table) Numeric(n Numeric) arinc429.Value[float64] { return t.numerics[n] }

// offset maps a 1-based channel index to an offset from the first channel.
// Out-of-range indices are programming errors.
func offset(param string, index, count int) int {
	if index < 1 || index > count {
		panic(fmt.Sprintf("%s: invalid index %d (want 1..%d)", param, index, count))
	}
	return index - 1
}

// engine picks between the engine 1 and engine 2 identifier.
func engine[T any](param string, eng int, eng1, eng2 T) T {
	if offset(param, eng, 2) == 0 {
		return eng1
	}
	return eng2
}

func (t *Table) FwcIdentSide(side int) arinc429.Value[bool] {
	return t.discretes[FwcIdentSide1+Discrete(offset("fwc ident side", side, 2))]
}

// LhLgCompressed is the left main gear compressed signal from LGCIU 1 or 2.
func (t *Table) LhLgCompressed(lgciu int) arinc429.Value[bool] {
	return t.discretes[LhLgCompressed1+Discrete(offset("lh lg compressed", lgciu, 2))]
}

// EssLhLgCompressed is the hardwired discrete on the essential side.
func (t *Table) EssLhLgCompressed() arinc429.Value[bool] { return t.discretes[EssLhLgCompressed] }

// NormLhLgCompressed is the hardwired discrete on the normal side.
func (t *Table) NormLhLgCompressed() arinc429.Value[bool] { return t.discretes[NormLhLgCompressed] }

func (t *Table) LhGearDownLock(lgciu int) arinc429.Value[bool] {
	return t.discretes[LhGearDownLock1+Discrete(offset("lh gear down lock", lgciu, 2))]
}

func (t *Table) RhGearDownLock(lgciu int) arinc429.Value[bool] {
	return t.discretes[RhGearDownLock1+Discrete(offset("rh gear down lock", lgciu, 2))]
}

func (t *Table) NoseGearDownLock(lgciu int) arinc429.Value[bool] {
	return t.discretes[NoseGearDownLock1+Discrete(offset("nose gear down lock", lgciu, 2))]
}

// RadioHeight is in feet.
func (t *Table) RadioHeight(index int) arinc429.Value[float64] {
	return t.numerics[RadioHeight1+Numeric(offset("radio height", index, 2))]
}

// ComputedSpeed is in knots, from ADC 1 to 3.
func (t *Table) ComputedSpeed(index int) arinc429.Value[float64] {
	return t.numerics[ComputedSpeed1+Numeric(offset("computed speed", index, 3))]
}

func (t *Table) MasterLeverSelectOn(eng int) arinc429.Value[bool] {
	return t.discretes[engine("master lever", eng, Eng1MasterLeverSelectOn, Eng2MasterLeverSelectOn)]
}

// CoreSpeedAtOrAboveIdle returns channel 1 (A) or 2 (B) of an engine's N2
// at-or-above-idle signal.
func (t *Table) CoreSpeedAtOrAboveIdle(eng, channel int) arinc429.Value[bool] {
	base := engine("core speed", eng, Eng1CoreSpeedAtOrAboveIdleA, Eng2CoreSpeedAtOrAboveIdleA)
	return t.discretes[base+Discrete(offset("core speed channel", channel, 2))]
}

func (t *Table) Eng1FirePbOut() arinc429.Value[bool] { return t.discretes[Eng1FirePbOut] }

func (t *Table) ToConfigTest() arinc429.Value[bool] { return t.discretes[ToConfigTest] }

// Tla is the thrust lever angle in degrees.
func (t *Table) Tla(eng, channel int) arinc429.Value[float64] {
	base := engine("tla", eng, Eng1TlaA, Eng2TlaA)
	return t.numerics[base+Numeric(offset("tla channel", channel, 2))]
}

// TlaFto reports the flex takeoff detent.
func (t *Table) TlaFto(eng, channel int) arinc429.Value[bool] {
	base := engine("tla fto", eng, Eng1TlaFtoA, Eng2TlaFtoA)
	return t.discretes[base+Discrete(offset("tla fto channel", channel, 2))]
}

func (t *Table) AutoToga(eng, channel int) arinc429.Value[bool] {
	base := engine("auto toga", eng, Eng1AutoTogaA, Eng2AutoTogaA)
	return t.discretes[base+Discrete(offset("auto toga channel", channel, 2))]
}

func (t *Table) LimitModeSoftGa(eng, channel int) arinc429.Value[bool] {
	base := engine("soft ga", eng, Eng1LimitModeSoftGaA, Eng2LimitModeSoftGaA)
	return t.discretes[base+Discrete(offset("soft ga channel", channel, 2))]
}

// N1SelectedActual is in percent.
func (t *Table) N1SelectedActual(eng, channel int) arinc429.Value[float64] {
	base := engine("n1", eng, Eng1N1SelectedActualA, Eng2N1SelectedActualA)
	return t.numerics[base+Numeric(offset("n1 channel", channel, 2))]
}

func (t *Table) TlaIdlePwr(eng, channel int) arinc429.Value[bool] {
	base := engine("tla idle pwr", eng, Tla1IdlePwrA, Tla2IdlePwrA)
	return t.discretes[base+Discrete(offset("tla idle pwr channel", channel, 2))]
}

// ChannelInControl reports whether ECU channel A (1) or B (2) controls the
// engine. Each channel has its own storage.
func (t *Table) ChannelInControl(eng, channel int) arinc429.Value[bool] {
	base := engine("channel in control", eng, Eng1ChannelAInControl, Eng2ChannelAInControl)
	return t.discretes[base+Discrete(offset("channel in control", channel, 2))]
}

// Altitude is the barometric altitude in feet from ADC 1 to 3.
func (t *Table) Altitude(index int) arinc429.Value[float64] {
	return t.numerics[Altitude1+Numeric(offset("altitude", index, 3))]
}

// AltiSelect is the FCU selected altitude in feet.
func (t *Table) AltiSelect() arinc429.Value[float64] { return t.numerics[AltiSelect] }

func (t *Table) AltSelectChg() arinc429.Value[bool] { return t.discretes[AltSelectChg] }

func (t *Table) ApEngdCom(ap int) arinc429.Value[bool] {
	return t.discretes[engine("ap engd com", ap, Ap1EngdCom, Ap2EngdCom)]
}

func (t *Table) ApEngdMon(ap int) arinc429.Value[bool] {
	return t.discretes[engine("ap engd mon", ap, Ap1EngdMon, Ap2EngdMon)]
}

// InstincDiscnct returns the instinctive disconnect pushbutton discrete for
// the side with one (1) or two (2) autopilots engaged.
func (t *Table) InstincDiscnct(n int) arinc429.Value[bool] {
	return t.discretes[engine("instinctive disconnect", n, InstincDiscnct1ApEngd, InstincDiscnct2ApEngd)]
}

func (t *Table) CaptMwCancelOn() arinc429.Value[bool] { return t.discretes[CaptMwCancelOn] }
func (t *Table) FoMwCancelOn() arinc429.Value[bool]   { return t.discretes[FoMwCancelOn] }
func (t *Table) CaptMcCancelOn() arinc429.Value[bool] { return t.discretes[CaptMcCancelOn] }
func (t *Table) FoMcCancelOn() arinc429.Value[bool]   { return t.discretes[FoMcCancelOn] }

func (t *Table) BlueSysLoPr() arinc429.Value[bool]   { return t.discretes[BlueSysLoPr] }
func (t *Table) YellowSysLoPr() arinc429.Value[bool] { return t.discretes[YellowSysLoPr] }
func (t *Table) GreenSysLoPr() arinc429.Value[bool]  { return t.discretes[GreenSysLoPr] }

func (t *Table) TcasEngaged() arinc429.Value[bool] { return t.discretes[TcasEngaged] }

func (t *Table) GsModeOn(index int) arinc429.Value[bool] {
	return t.discretes[GsModeOn1+Discrete(offset("gs mode on", index, 2))]
}

// PitchLawCode1 is true while the flight controls are in normal law.
func (t *Table) PitchLawCode1(index int) arinc429.Value[bool] {
	return t.discretes[PitchLawCode1Ch1+Discrete(offset("pitch law code 1", index, 2))]
}

func (t *Table) StallWarn(index int) arinc429.Value[bool] {
	return t.discretes[StallWarn1+Discrete(offset("stall warn", index, 2))]
}

func (t *Table) EcpEmerCancelOn() arinc429.Value[bool] { return t.discretes[EcpEmerCancelOn] }

func (t *Table) TcasAuralAdvisoryOutput() arinc429.Value[bool] {
	return t.discretes[TcasAuralAdvisoryOutput]
}

func (t *Table) GpwsModesOn() arinc429.Value[bool]     { return t.discretes[GpwsModesOn] }
func (t *Table) GsVisualAlertOn() arinc429.Value[bool] { return t.discretes[GsVisualAlertOn] }

// LandTrkModeOn is true while FMGC 1 or 2 is in LAND, FLARE or ROLL OUT mode.
func (t *Table) LandTrkModeOn(fmgc int) arinc429.Value[bool] {
	return t.discretes[LandTrkModeOn1+Discrete(offset("land trk mode on", fmgc, 2))]
}

func (t *Table) AThrEngaged() arinc429.Value[bool] { return t.discretes[AThrEngaged] }

func (t *Table) HundredAboveForMdaMdhRequest(side int) arinc429.Value[bool] {
	return t.discretes[HundredAboveForMdaMdhRequest1+Discrete(offset("hundred above request", side, 2))]
}

func (t *Table) MinimumForMdaMdhRequest(side int) arinc429.Value[bool] {
	return t.discretes[MinimumForMdaMdhRequest1+Discrete(offset("minimum request", side, 2))]
}

// DecisionHeight is the decision height in feet from the captain (1) or
// first officer (2) side.
func (t *Table) DecisionHeight(side int) arinc429.Value[float64] {
	return t.numerics[DecisionHeight1+Numeric(offset("decision height", side, 2))]
}

// GlideDeviation is the glide slope deviation from ILS receiver 1 or 2.
func (t *Table) GlideDeviation(index int) arinc429.Value[float64] {
	return t.numerics[GlideDeviation1+Numeric(offset("glide deviation", index, 2))]
}

// DecisionHeightCode is pin programming code A (1) or B (2) of the MINIMUM
// call-out.
func (t *Table) DecisionHeightCode(code int) arinc429.Value[bool] {
	return t.discretes[DecisionHeightCodeA+Discrete(offset("decision height code", code, 2))]
}

// DecisionHeightPlus100FtCode is pin programming code A (1) or B (2) of the
// HUNDRED ABOVE call-out.
func (t *Table) DecisionHeightPlus100FtCode(code int) arinc429.Value[bool] {
	return t.discretes[DecisionHeightPlus100FtCodeA+Discrete(offset("decision height plus 100 ft code", code, 2))]
}

var callOutPins = map[int]Discrete{
	2500: AutoCallOut2500Ft,
	2000: AutoCallOut2000Ft,
	1000: AutoCallOut1000Ft,
	500:  AutoCallOut500Ft,
	400:  AutoCallOut400Ft,
	300:  AutoCallOut300Ft,
	200:  AutoCallOut200Ft,
	100:  AutoCallOut100Ft,
	50:   AutoCallOut50Ft,
	40:   AutoCallOut40Ft,
	30:   AutoCallOut30Ft,
	20:   AutoCallOut20Ft,
	10:   AutoCallOut10Ft,
	5:    AutoCallOut5Ft,
}

func callOutPin(feet int) Discrete {
	d, ok := callOutPins[feet]
	if !ok {
		panic(fmt.Sprintf("auto call out: no pin programming for %d ft", feet))
	}
	return d
}

// AutoCallOut is the pin programming of the radio altitude call-out at feet.
func (t *Table) AutoCallOut(feet int) arinc429.Value[bool] { return t.discretes[callOutPin(feet)] }

// AutoCallOut2500B selects the TWENTY FIVE HUNDRED wording at 2500 ft.
func (t *Table) AutoCallOut2500B() arinc429.Value[bool] { return t.discretes[AutoCallOut2500B] }

func (t *Table) AutoCallOut500FtGlideDeviation() arinc429.Value[bool] {
	return t.discretes[AutoCallOut500FtGlideDeviation]
}
