// Package config describes a calibration run: datasets, the optimized
// parameter subset with bounds, the minimization method, and noise.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/evannini/bbcal/internal/opt"
	"github.com/evannini/bbcal/internal/sim"
)

// ParamSpec selects one simulator parameter for optimization. Min/Max are
// optional box bounds; Init optionally overrides the simulator's current
// value as the search start.
type ParamSpec struct {
	Name string   `yaml:"name"`
	Min  *float64 `yaml:"min,omitempty"`
	Max  *float64 `yaml:"max,omitempty"`
	Init *float64 `yaml:"init,omitempty"`
}

// NoiseSpec selects a noise strategy for one channel.
type NoiseSpec struct {
	Kind   string  `yaml:"kind"` // none | gaussian
	Stddev float64 `yaml:"stddev,omitempty"`
	Seed   int64   `yaml:"seed,omitempty"`
}

// Config is a full calibration run description.
type Config struct {
	Datasets     []string           `yaml:"datasets"`
	Method       string             `yaml:"method"`
	Dt           float64            `yaml:"dt"`
	Params       []ParamSpec        `yaml:"params"`
	SimOverrides map[string]float64 `yaml:"sim_params,omitempty"`
	CommandNoise NoiseSpec          `yaml:"command_noise"`
	OutputNoise  NoiseSpec          `yaml:"output_noise"`
}

// Default returns the configuration used when no file is given: the five
// rig parameters usually calibrated, Nelder-Mead, no noise.
func Default() *Config {
	return &Config{
		Method: opt.MethodNelderMead,
		Dt:     sim.DefaultDt,
		Params: []ParamSpec{
			{Name: "theta_offset", Min: f(-20 * math.Pi / 180), Max: f(20 * math.Pi / 180)},
			{Name: "kf", Min: f(0)},
			{Name: "m", Min: f(0.020), Max: f(0.200)},
			{Name: "jb", Min: f(1e-6), Max: f(1e-2)},
			{Name: "ff_pow", Min: f(0), Max: f(5)},
		},
		CommandNoise: NoiseSpec{Kind: "none"},
		OutputNoise:  NoiseSpec{Kind: "none"},
	}
}

func f(v float64) *float64 { return &v }

// Load reads a config file, filling unset fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ParamNames returns the optimized parameter subset, in config order.
func (c *Config) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

// Bounds assembles the box bounds aligned with ParamNames. Returns nil if
// every parameter is unbounded on both sides.
func (c *Config) Bounds() *opt.Bounds {
	b := opt.NewBounds(len(c.Params))
	for i, p := range c.Params {
		if p.Min != nil {
			b.Lower[i] = *p.Min
		}
		if p.Max != nil {
			b.Upper[i] = *p.Max
		}
	}
	if !b.Constrained() {
		return nil
	}
	return b
}

// NoiseFunc builds the strategy a NoiseSpec names.
func (n NoiseSpec) NoiseFunc() (sim.NoiseFunc, error) {
	switch n.Kind {
	case "", "none":
		return sim.NoNoise(), nil
	case "gaussian":
		return sim.Gaussian(n.Stddev, n.Seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", n.Kind)
	}
}
