// Package config loads the fwc-sim daemon configuration.
package config

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sweeney/fwc-sim/internal/gpio"
)

type Config struct {
	// Tick is the wall-clock period of the update loop.
	Tick time.Duration `yaml:"tick"`
	// Scenario is the YAML scenario driving the parameter table.
	Scenario string `yaml:"scenario"`
	// Loop restarts the scenario from a cold pair when it ends.
	Loop bool `yaml:"loop"`

	TransientPowerTolerance time.Duration `yaml:"transient_power_tolerance"`
	Heartbeat               time.Duration `yaml:"heartbeat"` // 0 disables
	HTTPAddr                string        `yaml:"http_addr"` // empty disables

	MQTT  MQTTConfig  `yaml:"mqtt"`
	Kafka KafkaConfig `yaml:"kafka"`
	GPIO  GPIOConfig  `yaml:"gpio"`
}

type MQTTConfig struct {
	Broker     string `yaml:"broker"` // empty disables
	ClientID   string `yaml:"client_id"`
	BufferSize int    `yaml:"buffer_size"`
}

type KafkaConfig struct {
	Enabled bool          `yaml:"enabled"`
	Brokers []string      `yaml:"brokers"`
	Topic   string        `yaml:"topic"`
	Timeout time.Duration `yaml:"timeout"`
}

type GPIOConfig struct {
	Enabled bool           `yaml:"enabled"`
	Chip    string         `yaml:"chip"`
	Pins    map[string]int `yaml:"pins"` // empty means gpio.DefaultPins
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Tick:                    100 * time.Millisecond,
		Scenario:                "scenarios/takeoff.yaml",
		TransientPowerTolerance: 500 * time.Millisecond,
		Heartbeat:               15 * time.Minute,
		HTTPAddr:                ":8080",
		MQTT: MQTTConfig{
			ClientID:   "fwc-sim",
			BufferSize: 256,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "fwc.frames",
			Timeout: 2 * time.Second,
		},
		GPIO: GPIOConfig{
			Chip: "gpiochip0",
		},
	}
}

// Load reads path over the defaults, applies FWC_* environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnvOverrides(lookup lookupFunc) error {
	strs := map[string]*string{
		"FWC_SCENARIO":    &c.Scenario,
		"FWC_HTTP_ADDR":   &c.HTTPAddr,
		"FWC_MQTT_BROKER": &c.MQTT.Broker,
		"FWC_KAFKA_TOPIC": &c.Kafka.Topic,
		"FWC_GPIO_CHIP":   &c.GPIO.Chip,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"FWC_TICK":      &c.Tick,
		"FWC_TOLERANCE": &c.TransientPowerTolerance,
		"FWC_HEARTBEAT": &c.Heartbeat,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.Wrapf(err, "%s", key)
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		"FWC_LOOP":          &c.Loop,
		"FWC_KAFKA_ENABLED": &c.Kafka.Enabled,
		"FWC_GPIO_ENABLED":  &c.GPIO.Enabled,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrapf(err, "%s", key)
			}
			*dst = b
		}
	}

	if v, ok := lookup("FWC_KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the values the daemon cannot run without.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return errors.Errorf("tick must be positive, got %v", c.Tick)
	}
	if c.TransientPowerTolerance < 0 {
		return errors.Errorf("transient power tolerance must not be negative, got %v", c.TransientPowerTolerance)
	}
	if c.Heartbeat < 0 {
		return errors.Errorf("heartbeat must not be negative, got %v", c.Heartbeat)
	}
	if c.Scenario == "" {
		return errors.New("scenario is required")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("kafka enabled without brokers")
		}
		if c.Kafka.Topic == "" {
			return errors.New("kafka enabled without a topic")
		}
	}
	if c.GPIO.Enabled {
		if _, err := c.Pins(); err != nil {
			return err
		}
	}
	return nil
}

// Pins resolves the GPIO pin map by button name.
func (c *Config) Pins() (map[gpio.Button]int, error) {
	if len(c.GPIO.Pins) == 0 {
		pins := make(map[gpio.Button]int, len(gpio.DefaultPins))
		for b, pin := range gpio.DefaultPins {
			pins[b] = pin
		}
		return pins, nil
	}

	pins := make(map[gpio.Button]int, len(c.GPIO.Pins))
	used := make(map[int]string, len(c.GPIO.Pins))
	for name, pin := range c.GPIO.Pins {
		b, ok := gpio.ParseButton(name)
		if !ok {
			return nil, errors.Errorf("unknown gpio button %q", name)
		}
		if other, dup := used[pin]; dup {
			return nil, errors.Errorf("gpio pin %d wired to both %s and %s", pin, other, name)
		}
		used[pin] = name
		pins[b] = pin
	}
	return pins, nil
}
