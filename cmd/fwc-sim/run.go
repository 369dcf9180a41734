package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sweeney/fwc-sim/internal/config"
	"github.com/sweeney/fwc-sim/internal/fwc"
	"github.com/sweeney/fwc-sim/internal/gpio"
	"github.com/sweeney/fwc-sim/internal/kafka"
	"github.com/sweeney/fwc-sim/internal/metrics"
	"github.com/sweeney/fwc-sim/internal/mqtt"
	"github.com/sweeney/fwc-sim/internal/parameters"
	"github.com/sweeney/fwc-sim/internal/scenario"
	"github.com/sweeney/fwc-sim/internal/status"
	"github.com/sweeney/fwc-sim/internal/web"
)

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	s, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return err
	}

	l := &loop{
		log:       logger,
		scenario:  s,
		tolerance: cfg.TransientPowerTolerance,
		heartbeat: cfg.Heartbeat,
		interval:  cfg.Tick,
		repeat:    cfg.Loop,
		now:       time.Now,
		metrics:   metrics.New(),
	}

	if cfg.GPIO.Enabled {
		pins, err := cfg.Pins()
		if err != nil {
			return err
		}
		reader, err := gpio.NewRealReader(cfg.GPIO.Chip, pins)
		if err != nil {
			return errors.Wrap(err, "init gpio")
		}
		defer reader.Close()
		l.panel = reader
	}

	if cfg.MQTT.Broker != "" {
		publisher := mqtt.NewRealPublisher(mqtt.Options{
			Broker:     cfg.MQTT.Broker,
			ClientID:   cfg.MQTT.ClientID,
			BufferSize: cfg.MQTT.BufferSize,
		}, logger.Named("mqtt"))
		defer publisher.Close()
		l.publisher = publisher
		l.mqttStatus = publisher
	}

	// Tracker before STARTUP so the snapshot is available.
	statusCfg := status.Config{
		TickMs:      cfg.Tick.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		ToleranceMs: cfg.TransientPowerTolerance.Milliseconds(),
		Scenario:    cfg.Scenario,
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		GPIO:        cfg.GPIO.Enabled,
	}
	if cfg.Kafka.Enabled {
		statusCfg.KafkaTopic = cfg.Kafka.Topic
	}
	l.tracker = status.NewTracker(time.Now(), statusCfg)
	if net := readNetworkInfo(); net != nil {
		l.tracker.SetNetwork(net)
	}
	runID := l.tracker.Snapshot().RunID

	if cfg.Kafka.Enabled {
		sink := kafka.NewSink(kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), runID, cfg.Kafka.Timeout)
		defer sink.Close()
		l.sink = sink
	}

	if l.publisher != nil {
		snap := l.tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := l.publisher.PublishSystem(startup); err != nil {
			logger.Warn("failed to publish startup event", zap.Error(err))
		} else {
			logger.Info("published startup event")
		}
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, l.tracker, l.metrics.Handler(), logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("http server error", zap.Error(err))
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("http status server listening", zap.String("addr", cfg.HTTPAddr))
	}

	logger.Info("started",
		zap.String("run_id", runID),
		zap.String("scenario", s.Name),
		zap.Duration("tick", cfg.Tick),
		zap.Duration("tolerance", cfg.TransientPowerTolerance),
		zap.Duration("heartbeat", cfg.Heartbeat),
		zap.Bool("loop", cfg.Loop),
		zap.Bool("gpio", cfg.GPIO.Enabled),
		zap.Bool("kafka", cfg.Kafka.Enabled))

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return l.run(cmd.Context(), ticker.C, sigCh)
}

// frameSink receives every frame of every tick.
type frameSink interface {
	Publish(ctx context.Context, tick uint64, at time.Time, frames []fwc.Frame) error
}

// loop owns the FWC pair and everything fed from it. Only the publisher and
// tracker may be shared with other goroutines.
type loop struct {
	log        *zap.Logger
	scenario   *scenario.Scenario
	panel      gpio.Reader           // nil without GPIO
	publisher  mqtt.Publisher        // nil without MQTT
	mqttStatus mqtt.ConnectionStatus // nil without MQTT
	sink       frameSink             // nil without Kafka
	tracker    *status.Tracker
	metrics    *metrics.Metrics
	tolerance  time.Duration
	heartbeat  time.Duration
	interval   time.Duration
	repeat     bool
	now        func() time.Time

	player    *scenario.Player
	sys       *fwc.System
	detector  *fwc.TransitionDetector
	last      scenario.Tick
	holding   bool
	ticks     uint64
	published *fwc.Frame
}

func (l *loop) run(ctx context.Context, tick <-chan time.Time, sig <-chan os.Signal) error {
	if ctx == nil {
		ctx = context.Background()
	}
	l.player = scenario.NewPlayer(l.scenario)
	l.sys = fwc.NewSystem(l.tolerance)
	l.detector = fwc.NewTransitionDetector(l.now())

	for {
		select {
		case s := <-sig:
			l.shutdown(s)
			return nil

		case <-tick:
			l.step(ctx, l.now())
		}
	}
}

func (l *loop) shutdown(s os.Signal) {
	l.log.Info("shutting down", zap.Stringer("signal", s))
	signalName := "UNKNOWN"
	if s == syscall.SIGINT {
		signalName = "SIGINT"
	} else if s == syscall.SIGTERM {
		signalName = "SIGTERM"
	}
	if l.publisher == nil {
		return
	}

	event := mqtt.SystemEvent{
		Timestamp: l.now(),
		Event:     "SHUTDOWN",
		Reason:    signalName,
		Retained:  true,
	}
	if l.tracker != nil {
		l.refreshConnection()
		snap := l.tracker.Snapshot()
		event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		l.log.Warn("failed to publish shutdown event", zap.Error(err))
	} else {
		l.log.Info("published shutdown event")
	}
}

// next returns the input for this tick. When the scenario ends it either
// starts over with a cold pair or holds the final inputs.
func (l *loop) next() (scenario.Tick, bool) {
	if l.player.Done() {
		if l.repeat {
			l.log.Info("scenario finished, restarting", zap.String("scenario", l.scenario.Name))
			l.player.Rewind()
			l.sys = fwc.NewSystem(l.tolerance)
		} else {
			if !l.holding {
				l.log.Info("scenario finished, holding final inputs", zap.String("scenario", l.scenario.Name))
				l.holding = true
			}
			t := l.last
			t.Delta = l.interval
			return t, true
		}
	}

	t, err := l.player.Next()
	if err != nil {
		l.log.Error("scenario error", zap.Error(err))
		return scenario.Tick{}, false
	}
	if t.Last {
		l.log.Debug("step complete",
			zap.Int("step", t.Step+1),
			zap.String("name", l.scenario.Steps[t.Step].Name))
	}
	l.last = t
	return t, true
}

func (l *loop) step(ctx context.Context, now time.Time) {
	in, ok := l.next()
	if !ok {
		return
	}

	if l.panel != nil {
		p, err := l.panel.Read()
		if err != nil {
			l.log.Warn("gpio read error", zap.Error(err))
		} else {
			in.Table = p.Apply(parameters.From(in.Table)).Build()
		}
	}

	in.Apply(l.sys)
	l.ticks++

	frames := l.sys.Frames()
	var events []fwc.Event
	for _, f := range frames {
		events = append(events, l.detector.Process(f, now)...)
	}

	for _, event := range events {
		l.log.Info("event",
			zap.String("type", string(event.Type)),
			zap.Int("fwc", event.FWC),
			zap.Int("phase", event.FlightPhase),
			zap.Int("previous_phase", event.PreviousPhase))
		if l.publisher != nil {
			if err := l.publisher.Publish(event); err != nil {
				l.log.Warn("publish error", zap.Error(err))
				l.metrics.PublishError("mqtt")
			}
		}
	}

	combined := l.sys.Frame()
	if l.publisher != nil && (l.published == nil || !reflect.DeepEqual(*l.published, combined)) {
		if err := l.publisher.PublishFrame(combined, now); err != nil {
			l.log.Warn("frame publish error", zap.Error(err))
			l.metrics.PublishError("mqtt")
		} else {
			l.published = &combined
		}
	}

	if l.sink != nil {
		if err := l.sink.Publish(ctx, l.ticks, now, frames); err != nil {
			l.log.Warn("kafka publish error", zap.Error(err))
			l.metrics.PublishError("kafka")
		}
	}

	l.metrics.ObserveTick(frames)
	l.metrics.ObserveEvents(events)

	if l.tracker != nil {
		l.tracker.Update(frames, combined, l.detector.IsBaselined(), l.detector.Counts())
		l.refreshConnection()
	}

	hb := l.detector.CheckHeartbeat(now, l.heartbeat)
	if hb == nil {
		return
	}
	l.log.Info("heartbeat",
		zap.Duration("uptime", hb.Uptime),
		zap.Int("phase", combined.FlightPhase),
		zap.Uint64("ticks", l.ticks))
	if l.publisher == nil {
		return
	}

	hbEvent := mqtt.SystemEvent{
		Timestamp: hb.Timestamp,
		Event:     "HEARTBEAT",
	}
	if l.tracker != nil {
		// Refresh network info for heartbeat
		if net := readNetworkInfo(); net != nil {
			l.tracker.SetNetwork(net)
		}
		hbEvent.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", "")
	}
	if err := l.publisher.PublishSystem(hbEvent); err != nil {
		l.log.Warn("heartbeat publish error", zap.Error(err))
		l.metrics.PublishError("mqtt")
	}
}

func (l *loop) refreshConnection() {
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
