// Package mqtt publishes FWC events and frames with an abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

// TopicEvents is the MQTT topic for FWC transition events.
const TopicEvents = "avionics/fwc/events"

// TopicFrame carries the latest combined frame, retained.
const TopicFrame = "avionics/fwc/frame"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "avionics/fwc/system"

// Publisher publishes FWC output to MQTT.
type Publisher interface {
	// Publish sends a transition event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event fwc.Event) error

	// PublishFrame sends the frame the pair presents to the cockpit.
	PublishFrame(frame fwc.Frame, at time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message for a transition event.
type Payload struct {
	FWC EventPayload `json:"fwc"`
}

type EventPayload struct {
	Timestamp     string `json:"timestamp"`
	Event         string `json:"event"`
	Computer      int    `json:"computer"`
	FlightPhase   int    `json:"flight_phase"`
	PreviousPhase int    `json:"previous_phase,omitempty"`
}

// FormatPayload creates the JSON payload for a transition event.
func FormatPayload(event fwc.Event) ([]byte, error) {
	payload := Payload{
		FWC: EventPayload{
			Timestamp:     event.Timestamp.UTC().Format(time.RFC3339Nano),
			Event:         string(event.Type),
			Computer:      event.FWC,
			FlightPhase:   event.FlightPhase,
			PreviousPhase: event.PreviousPhase,
		},
	}
	return json.Marshal(payload)
}

// FramePayload is the retained frame message. Variables carries the values
// written to the cockpit so dashboards need not derive them.
type FramePayload struct {
	Timestamp string             `json:"timestamp"`
	Frame     fwc.Frame          `json:"frame"`
	Variables map[string]float64 `json:"variables"`
}

// FormatFramePayload creates the JSON payload for a frame.
func FormatFramePayload(frame fwc.Frame, at time.Time) ([]byte, error) {
	return json.Marshal(FramePayload{
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Frame:     frame,
		Variables: frame.Variables(),
	})
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
