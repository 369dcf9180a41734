// Package metrics exposes the simulator's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

var powerStates = []fwc.PowerState{fwc.Unpowered, fwc.TransientHold, fwc.PoweredRunning, fwc.Failed}

type Metrics struct {
	registry      *prometheus.Registry
	ticks         prometheus.Counter
	phase         *prometheus.GaugeVec
	state         *prometheus.GaugeVec
	events        *prometheus.CounterVec
	publishErrors *prometheus.CounterVec
}

// New registers the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fwc_sim_ticks_total",
			Help: "Total number of FWC update cycles run.",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fwc_sim_flight_phase",
			Help: "Current flight phase per FWC (0 when not running).",
		}, []string{"fwc"}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fwc_sim_computer_state",
			Help: "1 for the current power state of each FWC, 0 otherwise.",
		}, []string{"fwc", "state"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fwc_sim_events_total",
			Help: "Total transition events by type.",
		}, []string{"type"}),
		publishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fwc_sim_publish_errors_total",
			Help: "Total failed publications by sink.",
		}, []string{"sink"}),
	}

	m.registry.MustRegister(
		m.ticks,
		m.phase,
		m.state,
		m.events,
		m.publishErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, et := range fwc.EventTypes {
		m.events.WithLabelValues(string(et))
	}
	return m
}

// ObserveTick records one update of the pair.
func (m *Metrics) ObserveTick(frames []fwc.Frame) {
	m.ticks.Inc()
	for _, f := range frames {
		id := strconv.Itoa(f.FWC)
		m.phase.WithLabelValues(id).Set(float64(f.FlightPhase))
		for _, s := range powerStates {
			v := 0.0
			if f.State == s.String() {
				v = 1
			}
			m.state.WithLabelValues(id, s.String()).Set(v)
		}
	}
}

func (m *Metrics) ObserveEvents(events []fwc.Event) {
	for _, e := range events {
		m.events.WithLabelValues(string(e.Type)).Inc()
	}
}

// PublishError counts a failed publication to sink ("mqtt", "kafka").
func (m *Metrics) PublishError(sink string) {
	m.publishErrors.WithLabelValues(sink).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
