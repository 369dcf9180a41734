// Package status provides a thread-safe status tracker for the fwc-sim daemon.
// It is written by the tick loop and read by HTTP handlers.
package status

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

// NetworkInfo contains network state of the rig host.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	HeartbeatMs int64
	ToleranceMs int64
	Scenario    string
	Broker      string
	KafkaTopic  string // empty when the Kafka sink is disabled
	HTTPAddr    string
	GPIO        bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	RunID         string
	Frames        []fwc.Frame
	Combined      fwc.Frame
	Ticks         uint64
	Baselined     bool
	Counts        fwc.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Frame returns the frame of FWC n.
func (s Snapshot) Frame(n int) (fwc.Frame, bool) {
	for _, f := range s.Frames {
		if f.FWC == n {
			return f, true
		}
	}
	return fwc.Frame{}, false
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with a fresh run id.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			RunID:     uuid.NewString(),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the frames of one tick and the running event counts.
// Called from the run loop on every tick.
func (t *Tracker) Update(frames []fwc.Frame, combined fwc.Frame, baselined bool, counts fwc.EventCounts) {
	frames = append([]fwc.Frame(nil), frames...)
	c := make(fwc.EventCounts, len(counts))
	for k, v := range counts {
		c[k] = v
	}

	t.mu.Lock()
	t.snap.Frames = frames
	t.snap.Combined = combined
	t.snap.Baselined = baselined
	t.snap.Counts = c
	t.snap.Ticks++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
// Update replaces Frames and Counts rather than mutating them.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
