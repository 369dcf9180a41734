package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestObserveTick(t *testing.T) {
	m := New()
	frames := []fwc.Frame{
		{FWC: 1, State: "RUNNING", FlightPhase: 6},
		{FWC: 2, State: "TRANSIENT_HOLD", FlightPhase: 6},
	}
	m.ObserveTick(frames)
	m.ObserveTick(frames)

	body := scrape(t, m)
	for _, want := range []string{
		"fwc_sim_ticks_total 2",
		`fwc_sim_flight_phase{fwc="1"} 6`,
		`fwc_sim_computer_state{fwc="1",state="RUNNING"} 1`,
		`fwc_sim_computer_state{fwc="1",state="UNPOWERED"} 0`,
		`fwc_sim_computer_state{fwc="2",state="TRANSIENT_HOLD"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in scrape", want)
		}
	}
}

func TestObserveEvents(t *testing.T) {
	m := New()
	m.ObserveEvents([]fwc.Event{
		{Type: fwc.EventPhaseChange},
		{Type: fwc.EventPhaseChange},
		{Type: fwc.EventStall},
	})

	body := scrape(t, m)
	for _, want := range []string{
		`fwc_sim_events_total{type="PHASE_CHANGE"} 2`,
		`fwc_sim_events_total{type="STALL"} 1`,
		`fwc_sim_events_total{type="CCHORD"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in scrape", want)
		}
	}
}

func TestPublishError(t *testing.T) {
	m := New()
	m.PublishError("kafka")

	if body := scrape(t, m); !strings.Contains(body, `fwc_sim_publish_errors_total{sink="kafka"} 1`) {
		t.Error("expected kafka publish error counted")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveTick(nil)

	if body := scrape(t, b); !strings.Contains(body, "fwc_sim_ticks_total 0") {
		t.Error("expected second registry untouched")
	}
}
