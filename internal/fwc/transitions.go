package fwc

import "time"

// EventType represents a change between two consecutive frames.
type EventType string

const (
	EventPhaseChange   EventType = "PHASE_CHANGE"
	EventToMemoOn      EventType = "TO_MEMO_ON"
	EventToMemoOff     EventType = "TO_MEMO_OFF"
	EventLdgMemoOn     EventType = "LDG_MEMO_ON"
	EventLdgMemoOff    EventType = "LDG_MEMO_OFF"
	EventCChord        EventType = "CCHORD"
	EventCavalryCharge EventType = "CAVALRY_CHARGE"
	EventStall         EventType = "STALL"
	EventMasterWarning EventType = "MASTER_WARNING"
	EventPowerLost     EventType = "POWER_LOST"
	EventPowerRestored EventType = "POWER_RESTORED"
)

// EventTypes lists every event type in publication order.
var EventTypes = []EventType{
	EventPowerLost, EventPowerRestored, EventPhaseChange,
	EventToMemoOn, EventToMemoOff, EventLdgMemoOn, EventLdgMemoOff,
	EventCChord, EventCavalryCharge, EventStall, EventMasterWarning,
}

// Event represents a transition to be published.
type Event struct {
	Timestamp     time.Time
	FWC           int
	Type          EventType
	FlightPhase   int
	PreviousPhase int
}

// EventCounts tracks the number of each event type since startup.
type EventCounts map[EventType]int

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}

// TransitionDetector compares each FWC's frame with the one before it. The
// first frame of each FWC is its baseline and produces no events.
type TransitionDetector struct {
	last          map[int]Frame
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewTransitionDetector creates a detector. The startTime is used for
// calculating uptime in heartbeat events.
func NewTransitionDetector(startTime time.Time) *TransitionDetector {
	return &TransitionDetector{
		last:          make(map[int]Frame),
		startTime:     startTime,
		eventCounts:   make(EventCounts),
		lastHeartbeat: startTime,
	}
}

// Process takes the latest frame of one FWC and returns the events it
// causes, in the order of EventTypes.
func (d *TransitionDetector) Process(f Frame, now time.Time) []Event {
	prev, ok := d.last[f.FWC]
	d.last[f.FWC] = f
	if !ok {
		return nil
	}

	var events []Event
	emit := func(t EventType) {
		events = append(events, Event{
			Timestamp:     now,
			FWC:           f.FWC,
			Type:          t,
			FlightPhase:   f.FlightPhase,
			PreviousPhase: prev.FlightPhase,
		})
		d.eventCounts[t]++
	}

	switch {
	case prev.Powered() && !f.Powered():
		emit(EventPowerLost)
	case !prev.Powered() && f.Powered():
		emit(EventPowerRestored)
	}

	if f.Powered() && prev.Powered() && f.FlightPhase != prev.FlightPhase {
		emit(EventPhaseChange)
	}

	if t, changed := edge(prev.ToMemo, f.ToMemo, EventToMemoOn, EventToMemoOff); changed {
		emit(t)
	}
	if t, changed := edge(prev.LdgMemo, f.LdgMemo, EventLdgMemoOn, EventLdgMemoOff); changed {
		emit(t)
	}

	if f.CChord && !prev.CChord {
		emit(EventCChord)
	}
	if f.CavalryCharge && !prev.CavalryCharge {
		emit(EventCavalryCharge)
	}
	if f.StallWarning && !prev.StallWarning {
		emit(EventStall)
	}
	if f.MasterWarning && !prev.MasterWarning {
		emit(EventMasterWarning)
	}

	return events
}

func edge(prev, cur bool, on, off EventType) (EventType, bool) {
	switch {
	case cur && !prev:
		return on, true
	case !cur && prev:
		return off, true
	}
	return "", false
}

// IsBaselined returns whether the detector has seen a frame.
func (d *TransitionDetector) IsBaselined() bool {
	return len(d.last) > 0
}

// Last returns the most recent frame processed for an FWC.
func (d *TransitionDetector) Last(fwc int) (Frame, bool) {
	f, ok := d.last[fwc]
	return f, ok
}

// Counts returns a copy of the event counts.
func (d *TransitionDetector) Counts() EventCounts {
	counts := make(EventCounts, len(d.eventCounts))
	for t, n := range d.eventCounts {
		counts[t] = n
	}
	return counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *TransitionDetector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.IsBaselined() {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.Counts(),
	}
}
