package wardflow

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from YAML, JSON, environment wiring, etc. The zero-value is
// useful - all nested fields inherit their package defaults.
type Config struct {
	Beds    BedsConfig    `json:"beds" yaml:"beds"`
	Queue   QueueConfig   `json:"queue" yaml:"queue"`
	Workers WorkersConfig `json:"workers" yaml:"workers"`
	Intake  IntakeConfig  `json:"intake" yaml:"intake"`
}

// BedsConfig bounds the shared bed pool and the two ward pools.
type BedsConfig struct {
	Total        int `json:"total" yaml:"total"`
	CriticalCare int `json:"criticalCare" yaml:"criticalCare"`
	GeneralWard  int `json:"generalWard" yaml:"generalWard"`
}

// QueueConfig bounds the triage queue.
type QueueConfig struct {
	MaxPending int `json:"maxPending" yaml:"maxPending"`
}

// WorkersConfig holds the worker pacing intervals as duration strings
// ("1s", "500ms"). Empty values inherit the package defaults.
type WorkersConfig struct {
	AdmissionTick  string `json:"admissionTick" yaml:"admissionTick"`
	DischargeEvery string `json:"dischargeEvery" yaml:"dischargeEvery"`
	StatusEvery    string `json:"statusEvery" yaml:"statusEvery"`
	WardHold       string `json:"wardHold" yaml:"wardHold"`
}

// IntakeConfig optionally throttles the intake boundary; zero disables
// throttling.
type IntakeConfig struct {
	RatePerSecond float64 `json:"ratePerSecond" yaml:"ratePerSecond"`
	Burst         int     `json:"burst" yaml:"burst"`
}

// DefaultConfig returns a Config populated with the engine defaults: 5 shared
// beds, 5 critical-care and 10 general-ward slots, a 100-entry triage queue,
// 1s admission tick, 5s discharge period, 4s status period and 1s ward hold.
func DefaultConfig() *Config {
	return &Config{
		Beds:    BedsConfig{Total: 5, CriticalCare: 5, GeneralWard: 10},
		Queue:   QueueConfig{MaxPending: 100},
		Workers: WorkersConfig{AdmissionTick: "1s", DischargeEvery: "5s", StatusEvery: "4s", WardHold: "1s"},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Beds.Total <= 0 {
		return fmt.Errorf("beds.total must be > 0")
	}
	if c.Beds.CriticalCare <= 0 || c.Beds.GeneralWard <= 0 {
		return fmt.Errorf("ward capacities must be > 0")
	}
	if c.Queue.MaxPending <= 0 {
		return fmt.Errorf("queue.maxPending must be > 0")
	}
	for name, value := range map[string]string{
		"workers.admissionTick":  c.Workers.AdmissionTick,
		"workers.dischargeEvery": c.Workers.DischargeEvery,
		"workers.statusEvery":    c.Workers.StatusEvery,
		"workers.wardHold":       c.Workers.WardHold,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.Intake.RatePerSecond < 0 {
		return fmt.Errorf("intake.ratePerSecond must be >= 0")
	}
	return nil
}

// duration parses value, falling back to fallback when empty or invalid.
func duration(value, fallback string) time.Duration {
	if value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// AdmissionTickDuration returns the parsed admission fallback tick.
func (c *WorkersConfig) AdmissionTickDuration() time.Duration {
	return duration(c.AdmissionTick, "1s")
}

// DischargeEveryDuration returns the parsed discharge period.
func (c *WorkersConfig) DischargeEveryDuration() time.Duration {
	return duration(c.DischargeEvery, "5s")
}

// StatusEveryDuration returns the parsed status reporting period.
func (c *WorkersConfig) StatusEveryDuration() time.Duration {
	return duration(c.StatusEvery, "4s")
}

// WardHoldDuration returns the parsed simulated ward service time.
func (c *WorkersConfig) WardHoldDuration() time.Duration {
	return duration(c.WardHold, "1s")
}

// LoadConfig reads a YAML configuration from any afs-supported URL, applying
// the documented defaults for absent fields.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
