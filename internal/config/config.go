// Package config holds the tunable knobs for the terminal/editor core.
// The core does no file I/O of its own (see internal/gapbuffer.FromLines);
// a host loads YAML from wherever it likes and hands the parsed Config in.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Telemetry controls the C9 ring's capacity, noise filter, and report
// rate limit.
type Telemetry struct {
	RingCapacity   int           `yaml:"ring_capacity"`
	MinDuration    time.Duration `yaml:"min_duration"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

// RestartPolicy controls a Resilient Reactor Thread's restart budget and
// backoff.
type RestartPolicy struct {
	MaxRestarts       int           `yaml:"max_restarts"`
	InitialDelay      time.Duration `yaml:"initial_delay"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
	MaxDelay          time.Duration `yaml:"max_delay"`
}

// Input controls the C7 reader's buffer sizing.
type Input struct {
	BufferCapacity  int `yaml:"buffer_capacity"`
	ReadGranularity int `yaml:"read_granularity"`
}

// Config is the full set of host-supplied tunables.
type Config struct {
	Telemetry     Telemetry     `yaml:"telemetry"`
	RestartPolicy RestartPolicy `yaml:"restart_policy"`
	Input         Input         `yaml:"input"`
}

// Default returns the package defaults. rrt.New applies no defaults of its
// own: a zero RestartPolicy passed there has no restart budget.
func Default() Config {
	return Config{
		Telemetry: Telemetry{
			RingCapacity:   100,
			MinDuration:    20 * time.Microsecond,
			ReportInterval: 16 * time.Millisecond,
		},
		RestartPolicy: RestartPolicy{
			MaxRestarts:       5,
			InitialDelay:      50 * time.Millisecond,
			BackoffMultiplier: 2.0,
			MaxDelay:          5 * time.Second,
		},
		Input: Input{
			BufferCapacity:  4096,
			ReadGranularity: 256,
		},
	}
}

// Parse decodes YAML bytes into a Config, starting from Default so any
// field the document omits keeps its default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
