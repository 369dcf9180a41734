package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/fwc-sim/internal/gpio"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fwc-sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func env(vars map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 100*time.Millisecond, cfg.Tick)
	assert.Equal(t, 500*time.Millisecond, cfg.TransientPowerTolerance)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.MQTT.Broker)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.GPIO.Enabled)
	assert.NoError(t, cfg.Validate())

	pins, err := cfg.Pins()
	require.NoError(t, err)
	assert.Equal(t, gpio.DefaultPins, pins)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("FWC_TICK", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Tick)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
tick: 50ms
scenario: scenarios/approach.yaml
loop: true
mqtt:
  broker: tcp://broker:1883
kafka:
  enabled: true
  brokers: [k1:9092, k2:9092]
gpio:
  enabled: true
  pins:
    to_config_test: 5
    emer_cancel: 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Tick)
	assert.Equal(t, "scenarios/approach.yaml", cfg.Scenario)
	assert.True(t, cfg.Loop)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, "fwc-sim", cfg.MQTT.ClientID, "unset keys keep their default")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "fwc.frames", cfg.Kafka.Topic)

	pins, err := cfg.Pins()
	require.NoError(t, err)
	assert.Equal(t, map[gpio.Button]int{gpio.ToConfigTest: 5, gpio.EmerCancel: 6}, pins)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown key", "tik: 1s\n", "tik"},
		{"zero tick", "tick: 0s\n", "tick must be positive"},
		{"negative tolerance", "transient_power_tolerance: -1s\n", "must not be negative"},
		{"no scenario", "scenario: \"\"\n", "scenario is required"},
		{"kafka without topic", "kafka: {enabled: true, topic: \"\"}\n", "without a topic"},
		{"kafka without brokers", "kafka: {enabled: true, brokers: []}\n", "without brokers"},
		{"unknown button", "gpio: {enabled: true, pins: {gear: 4}}\n", `unknown gpio button "gear"`},
		{"shared pin", "gpio: {enabled: true, pins: {to_config_test: 4, emer_cancel: 4}}\n", "gpio pin 4 wired to both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnvOverrides(env(map[string]string{
		"FWC_SCENARIO":      "s.yaml",
		"FWC_MQTT_BROKER":   "tcp://b:1883",
		"FWC_TOLERANCE":     "1s",
		"FWC_HEARTBEAT":     "0s",
		"FWC_KAFKA_ENABLED": "true",
		"FWC_KAFKA_BROKERS": " a:9092, ,b:9092 ",
		"FWC_GPIO_ENABLED":  "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "s.yaml", cfg.Scenario)
	assert.Equal(t, "tcp://b:1883", cfg.MQTT.Broker)
	assert.Equal(t, time.Second, cfg.TransientPowerTolerance)
	assert.Zero(t, cfg.Heartbeat)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.GPIO.Enabled)
}

func TestEnvOverrideErrors(t *testing.T) {
	tests := map[string]string{
		"FWC_TICK":         "fast",
		"FWC_LOOP":         "sometimes",
		"FWC_GPIO_ENABLED": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			err := Default().applyEnvOverrides(env(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http_addr: \":9000\"\n")
	t.Setenv("FWC_HTTP_ADDR", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.HTTPAddr, "an empty variable disables the HTTP server")
}
