// Package parameters holds the snapshot of aircraft signals the FWC reads on
// each computation cycle.
//
// A Table is a frozen value produced by a Builder. Every entry defaults to a
// failure warning with a zero payload, so a signal that was never acquired is
// seen as invalid by the logic. Units are fixed per parameter: feet for
// heights and altitudes, knots for speeds, degrees for thrust lever angles,
// percent for N1 and the difference in depth of modulation for glide slope
// deviation.
package parameters

// Discrete identifies a boolean parameter.
type Discrete int

const (
	FwcIdentSide1 Discrete = iota
	FwcIdentSide2
	LhLgCompressed1
	LhLgCompressed2
	EssLhLgCompressed
	NormLhLgCompressed
	LhGearDownLock1
	LhGearDownLock2
	RhGearDownLock1
	RhGearDownLock2
	NoseGearDownLock1
	NoseGearDownLock2
	Eng1MasterLeverSelectOn
	Eng2MasterLeverSelectOn
	Eng1CoreSpeedAtOrAboveIdleA
	Eng1CoreSpeedAtOrAboveIdleB
	Eng2CoreSpeedAtOrAboveIdleA
	Eng2CoreSpeedAtOrAboveIdleB
	Eng1FirePbOut
	ToConfigTest
	Eng1TlaFtoA
	Eng1TlaFtoB
	Eng2TlaFtoA
	Eng2TlaFtoB
	Eng1AutoTogaA
	Eng1AutoTogaB
	Eng2AutoTogaA
	Eng2AutoTogaB
	Eng1LimitModeSoftGaA
	Eng1LimitModeSoftGaB
	Eng2LimitModeSoftGaA
	Eng2LimitModeSoftGaB
	Tla1IdlePwrA
	Tla1IdlePwrB
	Tla2IdlePwrA
	Tla2IdlePwrB
	Eng1ChannelAInControl
	Eng1ChannelBInControl
	Eng2ChannelAInControl
	Eng2ChannelBInControl
	AltSelectChg
	Ap1EngdCom
	Ap1EngdMon
	Ap2EngdCom
	Ap2EngdMon
	InstincDiscnct1ApEngd
	InstincDiscnct2ApEngd
	CaptMwCancelOn
	FoMwCancelOn
	CaptMcCancelOn
	FoMcCancelOn
	BlueSysLoPr
	YellowSysLoPr
	GreenSysLoPr
	TcasEngaged
	GsModeOn1
	GsModeOn2
	PitchLawCode1Ch1
	PitchLawCode1Ch2
	StallWarn1
	StallWarn2
	EcpEmerCancelOn
	TcasAuralAdvisoryOutput
	GpwsModesOn
	GsVisualAlertOn
	LandTrkModeOn1
	LandTrkModeOn2
	AThrEngaged
	HundredAboveForMdaMdhRequest1
	HundredAboveForMdaMdhRequest2
	MinimumForMdaMdhRequest1
	MinimumForMdaMdhRequest2
	DecisionHeightCodeA
	DecisionHeightCodeB
	DecisionHeightPlus100FtCodeA
	DecisionHeightPlus100FtCodeB
	AutoCallOut2500Ft
	AutoCallOut2500B
	AutoCallOut2000Ft
	AutoCallOut1000Ft
	AutoCallOut500Ft
	AutoCallOut500FtGlideDeviation
	AutoCallOut400Ft
	AutoCallOut300Ft
	AutoCallOut200Ft
	AutoCallOut100Ft
	AutoCallOut50Ft
	AutoCallOut40Ft
	AutoCallOut30Ft
	AutoCallOut20Ft
	AutoCallOut10Ft
	AutoCallOut5Ft

	numDiscretes
)

// Numeric identifies a floating point parameter.
type Numeric int

const (
	RadioHeight1 Numeric = iota
	RadioHeight2
	ComputedSpeed1
	ComputedSpeed2
	ComputedSpeed3
	Eng1TlaA
	Eng1TlaB
	Eng2TlaA
	Eng2TlaB
	Eng1N1SelectedActualA
	Eng1N1SelectedActualB
	Eng2N1SelectedActualA
	Eng2N1SelectedActualB
	Altitude1
	Altitude2
	Altitude3
	AltiSelect
	DecisionHeight1
	DecisionHeight2
	GlideDeviation1
	GlideDeviation2

	numNumerics
)

// Kind distinguishes the storage of a named parameter.
type Kind int

const (
	KindDiscrete Kind = iota
	KindNumeric
)

var discreteNames = [numDiscretes]string{
	FwcIdentSide1:               "fwc_ident_side_1",
	FwcIdentSide2:               "fwc_ident_side_2",
	LhLgCompressed1:             "lh_lg_compressed_1",
	LhLgCompressed2:             "lh_lg_compressed_2",
	EssLhLgCompressed:           "ess_lh_lg_compressed",
	NormLhLgCompressed:          "norm_lh_lg_compressed",
	LhGearDownLock1:             "lh_gear_down_lock_1",
	LhGearDownLock2:             "lh_gear_down_lock_2",
	RhGearDownLock1:             "rh_gear_down_lock_1",
	RhGearDownLock2:             "rh_gear_down_lock_2",
	NoseGearDownLock1:           "nose_gear_down_lock_1",
	NoseGearDownLock2:           "nose_gear_down_lock_2",
	Eng1MasterLeverSelectOn:     "eng1_master_lever_select_on",
	Eng2MasterLeverSelectOn:     "eng2_master_lever_select_on",
	Eng1CoreSpeedAtOrAboveIdleA: "eng1_core_speed_at_or_above_idle_a",
	Eng1CoreSpeedAtOrAboveIdleB: "eng1_core_speed_at_or_above_idle_b",
	Eng2CoreSpeedAtOrAboveIdleA: "eng2_core_speed_at_or_above_idle_a",
	Eng2CoreSpeedAtOrAboveIdleB: "eng2_core_speed_at_or_above_idle_b",
	Eng1FirePbOut:               "eng1_fire_pb_out",
	ToConfigTest:                "to_config_test",
	Eng1TlaFtoA:                 "eng1_tla_fto_a",
	Eng1TlaFtoB:                 "eng1_tla_fto_b",
	Eng2TlaFtoA:                 "eng2_tla_fto_a",
	Eng2TlaFtoB:                 "eng2_tla_fto_b",
	Eng1AutoTogaA:               "eng1_auto_toga_a",
	Eng1AutoTogaB:               "eng1_auto_toga_b",
	Eng2AutoTogaA:               "eng2_auto_toga_a",
	Eng2AutoTogaB:               "eng2_auto_toga_b",
	Eng1LimitModeSoftGaA:        "eng1_limit_mode_soft_ga_a",
	Eng1LimitModeSoftGaB:        "eng1_limit_mode_soft_ga_b",
	Eng2LimitModeSoftGaA:        "eng2_limit_mode_soft_ga_a",
	Eng2LimitModeSoftGaB:        "eng2_limit_mode_soft_ga_b",
	Tla1IdlePwrA:                "tla1_idle_pwr_a",
	Tla1IdlePwrB:                "tla1_idle_pwr_b",
	Tla2IdlePwrA:                "tla2_idle_pwr_a",
	Tla2IdlePwrB:                "tla2_idle_pwr_b",
	Eng1ChannelAInControl:       "eng1_channel_a_in_control",
	Eng1ChannelBInControl:       "eng1_channel_b_in_control",
	Eng2ChannelAInControl:       "eng2_channel_a_in_control",
	Eng2ChannelBInControl:       "eng2_channel_b_in_control",
	AltSelectChg:                "alt_select_chg",
	Ap1EngdCom:                  "ap1_engd_com",
	Ap1EngdMon:                  "ap1_engd_mon",
	Ap2EngdCom:                  "ap2_engd_com",
	Ap2EngdMon:                  "ap2_engd_mon",
	InstincDiscnct1ApEngd:       "instinc_discnct_1ap_engd",
	InstincDiscnct2ApEngd:       "instinc_discnct_2ap_engd",
	CaptMwCancelOn:              "capt_mw_cancel_on",
	FoMwCancelOn:                "fo_mw_cancel_on",
	CaptMcCancelOn:              "capt_mc_cancel_on",
	FoMcCancelOn:                "fo_mc_cancel_on",
	BlueSysLoPr:                 "blue_sys_lo_pr",
	YellowSysLoPr:               "yellow_sys_lo_pr",
	GreenSysLoPr:                "green_sys_lo_pr",
	TcasEngaged:                 "tcas_engaged",
	GsModeOn1:                   "gs_mode_on_1",
	GsModeOn2:                   "gs_mode_on_2",
	PitchLawCode1Ch1:            "pitch_law_code_1_1",
	PitchLawCode1Ch2:            "pitch_law_code_1_2",
	StallWarn1:                  "stall_warn_1",
	StallWarn2:                  "stall_warn_2",
	EcpEmerCancelOn:             "ecp_emer_cancel_on",

	TcasAuralAdvisoryOutput:        "tcas_aural_advisory_output",
	GpwsModesOn:                    "gpws_modes_on",
	GsVisualAlertOn:                "gs_visual_alert_on",
	LandTrkModeOn1:                 "land_trk_mode_on_1",
	LandTrkModeOn2:                 "land_trk_mode_on_2",
	AThrEngaged:                    "athr_engaged",
	HundredAboveForMdaMdhRequest1:  "hundred_above_for_mda_mdh_request_1",
	HundredAboveForMdaMdhRequest2:  "hundred_above_for_mda_mdh_request_2",
	MinimumForMdaMdhRequest1:       "minimum_for_mda_mdh_request_1",
	MinimumForMdaMdhRequest2:       "minimum_for_mda_mdh_request_2",
	DecisionHeightCodeA:            "decision_height_code_a",
	DecisionHeightCodeB:            "decision_height_code_b",
	DecisionHeightPlus100FtCodeA:   "decision_height_plus_100_ft_code_a",
	DecisionHeightPlus100FtCodeB:   "decision_height_plus_100_ft_code_b",
	AutoCallOut2500Ft:              "auto_call_out_2500_ft",
	AutoCallOut2500B:               "auto_call_out_2500b",
	AutoCallOut2000Ft:              "auto_call_out_2000_ft",
	AutoCallOut1000Ft:              "auto_call_out_1000_ft",
	AutoCallOut500Ft:               "auto_call_out_500_ft",
	AutoCallOut500FtGlideDeviation: "auto_call_out_500_ft_glide_deviation",
	AutoCallOut400Ft:               "auto_call_out_400_ft",
	AutoCallOut300Ft:               "auto_call_out_300_ft",
	AutoCallOut200Ft:               "auto_call_out_200_ft",
	AutoCallOut100Ft:               "auto_call_out_100_ft",
	AutoCallOut50Ft:                "auto_call_out_50_ft",
	AutoCallOut40Ft:                "auto_call_out_40_ft",
	AutoCallOut30Ft:                "auto_call_out_30_ft",
	AutoCallOut20Ft:                "auto_call_out_20_ft",
	AutoCallOut10Ft:                "auto_call_out_10_ft",
	AutoCallOut5Ft:                 "auto_call_out_5_ft",
}

var numericNames = [numNumerics]string{
	RadioHeight1:          "radio_height_1",
	RadioHeight2:          "radio_height_2",
	ComputedSpeed1:        "computed_speed_1",
	ComputedSpeed2:        "computed_speed_2",
	ComputedSpeed3:        "computed_speed_3",
	Eng1TlaA:              "eng1_tla_a",
	Eng1TlaB:              "eng1_tla_b",
	Eng2TlaA:              "eng2_tla_a",
	Eng2TlaB:              "eng2_tla_b",
	Eng1N1SelectedActualA: "eng1_n1_selected_actual_a",
	Eng1N1SelectedActualB: "eng1_n1_selected_actual_b",
	Eng2N1SelectedActualA: "eng2_n1_selected_actual_a",
	Eng2N1SelectedActualB: "eng2_n1_selected_actual_b",
	Altitude1:             "altitude_1",
	Altitude2:             "altitude_2",
	Altitude3:             "altitude_3",
	AltiSelect:            "alti_select",
	DecisionHeight1:       "decision_height_1",
	DecisionHeight2:       "decision_height_2",
	GlideDeviation1:       "glide_deviation_1",
	GlideDeviation2:       "glide_deviation_2",
}

type ref struct {
	kind Kind
	id   int
}

var byName = func() map[string]ref {
	m := make(map[string]ref, int(numDiscretes)+int(numNumerics))
	for i, n := range discreteNames {
		m[n] = ref{KindDiscrete, i}
	}
	for i, n := range numericNames {
		m[n] = ref{KindNumeric, i}
	}
	return m
}()

func (d Discrete) String() string { return discreteNames[d] }
func (n Numeric) String() string  { return numericNames[n] }

// Lookup resolves a parameter name as used in scenario files.
func Lookup(name string) (Kind, int, bool) {
	r, ok := byName[name]
	return r.kind, r.id, ok
}

// Names returns every known parameter name, discretes first.
func Names() []string {
	out := make([]string, 0, len(byName))
	out = append(out, discreteNames[:]...)
	return append(out, numericNames[:]...)
}
