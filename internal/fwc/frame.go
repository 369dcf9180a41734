package fwc

// Frame is the output of one FWC after an update. A computer without a
// running runtime reports phase 0 and every flag off.
type Frame struct {
	FWC              int      `json:"fwc"`
	State            string   `json:"state"`
	FlightPhase      int      `json:"flight_phase"`
	ToMemo           bool     `json:"to_memo"`
	LdgMemo          bool     `json:"ldg_memo"`
	AudioAttenuation bool     `json:"audio_attenuation"`
	CChord           bool     `json:"c_chord"`
	AltAlertLight    bool     `json:"alt_alert_light"`
	AltAlertFlashing bool     `json:"alt_alert_flashing"`
	CavalryCharge    bool     `json:"cavalry_charge"`
	ApOffText        bool     `json:"ap_off_text"`
	ApOffWarning     bool     `json:"ap_off_warning"`
	StallWarning     bool     `json:"stall_warning"`
	MasterWarning    bool     `json:"master_warning"`
	Warnings         []string `json:"warnings,omitempty"`
	Sounds           []string `json:"sounds,omitempty"`
}

// Powered reports whether the frame came from a live runtime.
func (f Frame) Powered() bool {
	return f.State == PoweredRunning.String() || f.State == TransientHold.String()
}

// Variables returns the values the FWC pair writes to the cockpit.
func (f Frame) Variables() map[string]float64 {
	return map[string]float64{
		"FWC_FLIGHT_PHASE":      float64(f.FlightPhase),
		"FWC_TOMEMO":            boolToFloat(f.ToMemo),
		"FWC_LDGMEMO":           boolToFloat(f.LdgMemo),
		"FWC_AUDIO_ATTENUATION": boolToFloat(f.AudioAttenuation),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Frame snapshots the runtime outputs.
func (r *Runtime) Frame() Frame {
	f := Frame{
		FlightPhase:      r.FlightPhase(),
		ToMemo:           r.ShowToMemo(),
		LdgMemo:          r.ShowLdgMemo(),
		AudioAttenuation: r.AudioAttenuation(),
		CChord:           r.CChord(),
		AltAlertLight:    r.AltAlertLightOn(),
		AltAlertFlashing: r.AltAlertFlashingLight(),
		CavalryCharge:    r.CavalryCharge(),
		ApOffText:        r.ApOffText(),
		ApOffWarning:     r.ApOffWarning(),
		StallWarning:     r.StallWarning(),
		MasterWarning:    r.MasterWarning(),
	}
	for _, w := range r.ActiveWarnings() {
		f.Warnings = append(f.Warnings, w.String())
	}
	for _, s := range r.Sounds() {
		f.Sounds = append(f.Sounds, s.String())
	}
	return f
}
