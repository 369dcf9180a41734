// Package sheets implements the FWC logic sheets. Each sheet owns the timing
// nodes it needs, reads acquired parameters and the outputs of upstream
// sheets, and latches its own outputs once per Update.
//
// Sheets never look at each other directly; they depend on the small
// interfaces declared next to the sheet that produces them, and on the
// parameter accessors they actually read. *parameters.Table satisfies every
// parameter interface in this package.
package sheets

import "github.com/sweeney/fwc-sim/internal/arinc429"

type (
	boolParam    = arinc429.Value[bool]
	numericParam = arinc429.Value[float64]
)

type radioHeightSignals interface {
	RadioHeight(index int) numericParam
}

type gearCompressedSignals interface {
	LhLgCompressed(lgciu int) boolParam
	EssLhLgCompressed() boolParam
	NormLhLgCompressed() boolParam
}

type groundSignals interface {
	radioHeightSignals
	EssLhLgCompressed() boolParam
	NormLhLgCompressed() boolParam
}

type computedSpeedSignals interface {
	ComputedSpeed(index int) numericParam
}

type engineRunningSignals interface {
	MasterLeverSelectOn(eng int) boolParam
	CoreSpeedAtOrAboveIdle(eng, channel int) boolParam
	Eng1FirePbOut() boolParam
}

type coreSpeedSignals interface {
	CoreSpeedAtOrAboveIdle(eng, channel int) boolParam
}

type takeoffSignals interface {
	N1SelectedActual(eng, channel int) numericParam
	TlaIdlePwr(eng, channel int) boolParam
	ChannelInControl(eng, channel int) boolParam
}

type neoEcuSignals interface {
	AutoToga(eng, channel int) boolParam
	LimitModeSoftGa(eng, channel int) boolParam
}

type tlaSignals interface {
	Tla(eng, channel int) numericParam
}

type tlaFtoSignals interface {
	TlaFto(eng, channel int) boolParam
}

type phaseGroundSignals interface {
	Eng1FirePbOut() boolParam
	ToConfigTest() boolParam
}

type cancelSignals interface {
	CaptMwCancelOn() boolParam
	FoMwCancelOn() boolParam
	CaptMcCancelOn() boolParam
	FoMcCancelOn() boolParam
}

type gearDownLockSignals interface {
	LhGearDownLock(lgciu int) boolParam
	RhGearDownLock(lgciu int) boolParam
	NoseGearDownLock(lgciu int) boolParam
}

type masterLeverSignals interface {
	MasterLeverSelectOn(eng int) boolParam
}

type autopilotSignals interface {
	ApEngdCom(ap int) boolParam
	ApEngdMon(ap int) boolParam
	InstincDiscnct(n int) boolParam
	CaptMwCancelOn() boolParam
	FoMwCancelOn() boolParam
}

type autopilotUnvoluntarySignals interface {
	autopilotSignals
	BlueSysLoPr() boolParam
	YellowSysLoPr() boolParam
	GreenSysLoPr() boolParam
}

type altitudeSignals interface {
	Altitude(index int) numericParam
}

type altiSelectSignals interface {
	AltiSelect() numericParam
}

type altSelectChgSignals interface {
	AltSelectChg() boolParam
}

type generalInhibitSignals interface {
	AltiSelect() numericParam
	AltSelectChg() boolParam
}

type fmgcSignals interface {
	GsModeOn(index int) boolParam
}

type tcasSignals interface {
	TcasEngaged() boolParam
	AltSelectChg() boolParam
}

type toConfigSignals interface {
	ToConfigTest() boolParam
}

type stallWarnSignals interface {
	StallWarn(index int) boolParam
}

type stallWarningSignals interface {
	radioHeightSignals
	PitchLawCode1(index int) boolParam
	EcpEmerCancelOn() boolParam
}

type decisionHeightSignals interface {
	radioHeightSignals
	DecisionHeight(side int) numericParam
}

type gpwsSignals interface {
	GpwsModesOn() boolParam
	GsVisualAlertOn() boolParam
}

type tcasAdvisorySignals interface {
	TcasAuralAdvisoryOutput() boolParam
}

type mdaMdhInhibitionSignals interface {
	radioHeightSignals
	tcasAdvisorySignals
}

type autoCallOutSignals interface {
	AutoCallOut(feet int) boolParam
	AutoCallOut2500B() boolParam
}

type callOutTriggerSignals interface {
	autoCallOutSignals
	tcasAdvisorySignals
}

type hundredAboveSignals interface {
	DecisionHeightPlus100FtCode(code int) boolParam
	HundredAboveForMdaMdhRequest(side int) boolParam
}

type minimumSignals interface {
	DecisionHeightCode(code int) boolParam
	MinimumForMdaMdhRequest(side int) boolParam
}

type glideDeviationSignals interface {
	AutoCallOut(feet int) boolParam
	AutoCallOut500FtGlideDeviation() boolParam
	GlideDeviation(index int) numericParam
}

type landingModeSignals interface {
	LandTrkModeOn(fmgc int) boolParam
	AThrEngaged() boolParam
}

type retardSignals interface {
	landingModeSignals
	tlaSignals
}

// invOrNcd is the usual test for a numeric parameter the logic cannot use.
func invOrNcd[T any](v arinc429.Value[T]) bool {
	return v.IsInv() || v.IsNoComputedData()
}

func countTrue(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
