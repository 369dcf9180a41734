package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

type StatusInner struct {
	Event         string         `json:"event,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	RunID         string         `json:"run_id"`
	Ready         bool           `json:"ready"`
	FlightPhase   int            `json:"flight_phase"`
	Ticks         uint64         `json:"ticks"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	StartTime     string         `json:"start_time"`
	Timestamp     string         `json:"timestamp"`
	Computers     []ComputerJSON `json:"computers"`
	MQTT          MQTTStatus     `json:"mqtt"`
	Counts        map[string]int `json:"event_counts"`
	Network       *NetworkJSON   `json:"network,omitempty"`
	Config        ConfigJSON     `json:"config"`
}

// ComputerJSON summarises one FWC.
type ComputerJSON struct {
	FWC         int      `json:"fwc"`
	State       string   `json:"state"`
	FlightPhase int      `json:"flight_phase"`
	ToMemo      bool     `json:"to_memo"`
	LdgMemo     bool     `json:"ldg_memo"`
	Warnings    []string `json:"warnings"`
	Sounds      []string `json:"sounds"`
}

type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	ToleranceMs int64  `json:"tolerance_ms"`
	Scenario    string `json:"scenario"`
	Broker      string `json:"broker"`
	KafkaTopic  string `json:"kafka_topic,omitempty"`
	HTTPAddr    string `json:"http_addr"`
	GPIO        bool   `json:"gpio"`
}

// computerJSON renders a frame. Empty lists are kept as [] for the UI.
func computerJSON(f fwc.Frame) ComputerJSON {
	c := ComputerJSON{
		FWC:         f.FWC,
		State:       f.State,
		FlightPhase: f.FlightPhase,
		ToMemo:      f.ToMemo,
		LdgMemo:     f.LdgMemo,
		Warnings:    []string{},
		Sounds:      []string{},
	}
	c.Warnings = append(c.Warnings, f.Warnings...)
	c.Sounds = append(c.Sounds, f.Sounds...)
	return c
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		RunID:         snap.RunID,
		Ready:         snap.Baselined,
		FlightPhase:   snap.Combined.FlightPhase,
		Ticks:         snap.Ticks,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Computers:     make([]ComputerJSON, 0, len(snap.Frames)),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts:        make(map[string]int, len(fwc.EventTypes)),
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			ToleranceMs: snap.Config.ToleranceMs,
			Scenario:    snap.Config.Scenario,
			Broker:      snap.Config.Broker,
			KafkaTopic:  snap.Config.KafkaTopic,
			HTTPAddr:    snap.Config.HTTPAddr,
			GPIO:        snap.Config.GPIO,
		},
	}
	for _, f := range snap.Frames {
		inner.Computers = append(inner.Computers, computerJSON(f))
	}
	// Every type is listed so consumers see zeros.
	for _, et := range fwc.EventTypes {
		inner.Counts[string(et)] = snap.Counts[et]
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

// FormatComputerJSON returns the detailed JSON for one FWC.
func FormatComputerJSON(f fwc.Frame) []byte {
	data, _ := json.MarshalIndent(f, "", "  ")
	return data
}
