package fwc

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func running(fwc, phase int) Frame {
	return Frame{FWC: fwc, State: PoweredRunning.String(), FlightPhase: phase}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestTransitionDetector_FirstFrameIsBaseline(t *testing.T) {
	d := NewTransitionDetector(t0)
	if d.IsBaselined() {
		t.Error("new detector should not be baselined")
	}

	f := running(1, 2)
	f.ToMemo = true
	if events := d.Process(f, t0); len(events) != 0 {
		t.Errorf("expected no events for the baseline frame, got %d", len(events))
	}
	if !d.IsBaselined() {
		t.Error("expected baselined after the first frame")
	}
}

func TestTransitionDetector_PhaseChange(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 1), t0)

	events := d.Process(running(1, 2), t0.Add(time.Second))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != EventPhaseChange {
		t.Errorf("expected PHASE_CHANGE, got %s", e.Type)
	}
	if e.FlightPhase != 2 || e.PreviousPhase != 1 {
		t.Errorf("expected phase 1 -> 2, got %d -> %d", e.PreviousPhase, e.FlightPhase)
	}
	if !e.Timestamp.Equal(t0.Add(time.Second)) {
		t.Errorf("expected timestamp %v, got %v", t0.Add(time.Second), e.Timestamp)
	}

	if events := d.Process(running(1, 2), t0.Add(2*time.Second)); len(events) != 0 {
		t.Errorf("expected no events for an unchanged frame, got %d", len(events))
	}
}

func TestTransitionDetector_Memos(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 2), t0)

	f := running(1, 2)
	f.ToMemo = true
	got := eventTypes(d.Process(f, t0))
	if len(got) != 1 || got[0] != EventToMemoOn {
		t.Errorf("expected [TO_MEMO_ON], got %v", got)
	}

	f = running(1, 3)
	f.LdgMemo = true
	got = eventTypes(d.Process(f, t0))
	want := []EventType{EventPhaseChange, EventToMemoOff, EventLdgMemoOn}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTransitionDetector_AuralAlertsOnRisingEdge(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 6), t0)

	f := running(1, 6)
	f.CChord, f.CavalryCharge, f.StallWarning, f.MasterWarning = true, true, true, true
	got := eventTypes(d.Process(f, t0))
	want := []EventType{EventCChord, EventCavalryCharge, EventStall, EventMasterWarning}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if events := d.Process(f, t0); len(events) != 0 {
		t.Errorf("expected held alerts to emit once, got %v", eventTypes(events))
	}
}

func TestTransitionDetector_Power(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(2, 6), t0)

	lost := Frame{FWC: 2, State: Unpowered.String()}
	got := eventTypes(d.Process(lost, t0))
	if len(got) != 1 || got[0] != EventPowerLost {
		t.Errorf("expected [POWER_LOST], got %v", got)
	}

	got = eventTypes(d.Process(running(2, 6), t0))
	if len(got) != 1 || got[0] != EventPowerRestored {
		t.Errorf("expected [POWER_RESTORED], got %v", got)
	}
}

func TestTransitionDetector_TransientHoldStaysPowered(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 6), t0)

	hold := running(1, 6)
	hold.State = TransientHold.String()
	if events := d.Process(hold, t0); len(events) != 0 {
		t.Errorf("expected no events during a transient hold, got %v", eventTypes(events))
	}
}

func TestTransitionDetector_ComputersAreIndependent(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 1), t0)

	if events := d.Process(running(2, 2), t0); len(events) != 0 {
		t.Errorf("expected FWC 2 first frame to be a baseline, got %v", eventTypes(events))
	}

	last, ok := d.Last(1)
	if !ok || last.FlightPhase != 1 {
		t.Errorf("expected FWC 1 last phase 1, got %d", last.FlightPhase)
	}
}

func TestTransitionDetector_Heartbeat(t *testing.T) {
	d := NewTransitionDetector(t0)

	if hb := d.CheckHeartbeat(t0.Add(time.Hour), time.Minute); hb != nil {
		t.Error("expected no heartbeat before baseline")
	}

	d.Process(running(1, 1), t0)
	d.Process(running(1, 2), t0)

	if hb := d.CheckHeartbeat(t0.Add(30*time.Second), time.Minute); hb != nil {
		t.Error("expected no heartbeat before interval")
	}
	if hb := d.CheckHeartbeat(t0.Add(time.Minute), 0); hb != nil {
		t.Error("expected no heartbeat when disabled")
	}

	hb := d.CheckHeartbeat(t0.Add(time.Minute), time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat")
	}
	if hb.Uptime != time.Minute {
		t.Errorf("expected uptime 1m, got %v", hb.Uptime)
	}
	if hb.Counts[EventPhaseChange] != 1 {
		t.Errorf("expected 1 phase change, got %d", hb.Counts[EventPhaseChange])
	}

	if hb := d.CheckHeartbeat(t0.Add(90*time.Second), time.Minute); hb != nil {
		t.Error("expected next heartbeat a full interval later")
	}
}

func TestTransitionDetector_CountsIsACopy(t *testing.T) {
	d := NewTransitionDetector(t0)
	d.Process(running(1, 1), t0)
	d.Process(running(1, 2), t0)

	counts := d.Counts()
	counts[EventPhaseChange] = 99
	if d.Counts()[EventPhaseChange] != 1 {
		t.Error("expected Counts to return a copy")
	}
}

func TestTransitionDetector_WithComputer(t *testing.T) {
	c := NewComputer(1, DefaultTransientPowerTolerance)
	c.SetPowered(true)
	d := NewTransitionDetector(t0)

	c.Update(time.Second, table(onGround))
	d.Process(c.Frame(), t0)

	c.Update(30*time.Second, table(onGround, oneEngineRunning))
	got := eventTypes(d.Process(c.Frame(), t0.Add(30*time.Second)))
	if len(got) != 1 || got[0] != EventPhaseChange {
		t.Errorf("expected [PHASE_CHANGE], got %v", got)
	}
}
