package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

var t0 = time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC)

func phaseChange(from, to int) fwc.Event {
	return fwc.Event{
		Timestamp:     t0,
		FWC:           1,
		Type:          fwc.EventPhaseChange,
		FlightPhase:   to,
		PreviousPhase: from,
	}
}

func TestFormatPayload(t *testing.T) {
	payload, err := FormatPayload(phaseChange(2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.FWC.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.FWC.Timestamp)
	}
	if parsed.FWC.Event != "PHASE_CHANGE" {
		t.Errorf("unexpected event: %s", parsed.FWC.Event)
	}
	if parsed.FWC.Computer != 1 || parsed.FWC.FlightPhase != 3 || parsed.FWC.PreviousPhase != 2 {
		t.Errorf("unexpected payload: %+v", parsed.FWC)
	}
}

func TestFormatPayloadExactJSON(t *testing.T) {
	event := fwc.Event{Timestamp: t0, FWC: 2, Type: fwc.EventCavalryCharge, FlightPhase: 6}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"fwc":{"timestamp":"2026-02-02T22:18:12Z","event":"CAVALRY_CHARGE","computer":2,"flight_phase":6}}`
	if string(payload) != want {
		t.Errorf("expected %s, got %s", want, payload)
	}
}

func TestFormatPayloadTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	event := fwc.Event{Timestamp: time.Date(2026, 2, 2, 23, 18, 12, 0, loc), Type: fwc.EventStall}

	payload, _ := FormatPayload(event)
	var parsed Payload
	json.Unmarshal(payload, &parsed)

	if parsed.FWC.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("expected UTC timestamp, got %s", parsed.FWC.Timestamp)
	}
}

func TestFormatFramePayload(t *testing.T) {
	frame := fwc.Frame{FWC: 1, State: "RUNNING", FlightPhase: 2, ToMemo: true}

	payload, err := FormatFramePayload(frame, t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed FramePayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Frame.FlightPhase != 2 || !parsed.Frame.ToMemo {
		t.Errorf("unexpected frame: %+v", parsed.Frame)
	}
	if parsed.Variables["FWC_FLIGHT_PHASE"] != 2 || parsed.Variables["FWC_TOMEMO"] != 1 {
		t.Errorf("unexpected variables: %v", parsed.Variables)
	}
	if parsed.Variables["FWC_LDGMEMO"] != 0 {
		t.Errorf("expected FWC_LDGMEMO 0, got %v", parsed.Variables["FWC_LDGMEMO"])
	}
}

func TestTopics(t *testing.T) {
	topics := map[string]string{
		"events": TopicEvents,
		"frame":  TopicFrame,
		"system": TopicSystem,
	}
	for name, topic := range topics {
		if want := "avionics/fwc/" + name; topic != want {
			t.Errorf("expected %s, got %s", want, topic)
		}
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{Timestamp: t0, Event: "SHUTDOWN", Reason: "SIGTERM"}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"system":{"timestamp":"2026-02-02T22:18:12Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != want {
		t.Errorf("expected %s, got %s", want, payload)
	}
}

func TestFormatSystemPayloadOmitsReason(t *testing.T) {
	payload, _ := FormatSystemPayload(SystemEvent{Timestamp: t0, Event: "OFFLINE"})

	want := `{"system":{"timestamp":"2026-02-02T22:18:12Z","event":"OFFLINE"}}`
	if string(payload) != want {
		t.Errorf("expected %s, got %s", want, payload)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"event":"HEARTBEAT"}}`)

	payload, err := FormatSystemPayload(SystemEvent{Event: "HEARTBEAT", RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload, got %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()

	if err := f.Publish(phaseChange(1, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishFrame(fwc.Frame{FWC: 1, FlightPhase: 2}, t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Timestamp: t0, Event: "STARTUP", Retained: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Events) != 1 || len(f.Payloads) != 1 {
		t.Errorf("expected 1 event, got %d", len(f.Events))
	}
	if len(f.Frames) != 1 || len(f.FramePayloads) != 1 {
		t.Errorf("expected 1 frame, got %d", len(f.Frames))
	}
	if len(f.SystemEvents) != 1 || !f.SystemEvents[0].Retained {
		t.Errorf("expected 1 retained system event, got %v", f.SystemEvents)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")
	f.PublishSystemError = errors.New("system down")

	if err := f.Publish(phaseChange(1, 2)); err == nil {
		t.Error("expected publish error")
	}
	if err := f.PublishFrame(fwc.Frame{}, t0); err == nil {
		t.Error("expected frame error")
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err == nil {
		t.Error("expected system error")
	}
	if len(f.Events)+len(f.Frames)+len(f.SystemEvents) != 0 {
		t.Error("expected nothing recorded on error")
	}
}

func TestFakePublisherPreservesOrder(t *testing.T) {
	f := NewFakePublisher()
	for to := 2; to <= 5; to++ {
		f.Publish(phaseChange(to-1, to))
	}

	for i, e := range f.Events {
		if e.FlightPhase != i+2 {
			t.Errorf("event %d: expected phase %d, got %d", i, i+2, e.FlightPhase)
		}
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Connected = true
	f.Publish(phaseChange(1, 2))
	f.Close()

	f.Reset()
	if len(f.Events) != 0 || f.Closed || f.IsConnected() {
		t.Errorf("expected clean publisher after reset, got %+v", f)
	}

	f.Publish(phaseChange(2, 3))
	if len(f.Events) != 1 {
		t.Errorf("expected publisher reusable after reset, got %d events", len(f.Events))
	}
}
