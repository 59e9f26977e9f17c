// Package config loads layout, filter and relayout settings from YAML or
// TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/relayout"
	"github.com/dd0wney/cluso-simgraph/pkg/similarity"
	"github.com/dd0wney/cluso-simgraph/pkg/validation"
	"github.com/dd0wney/cluso-simgraph/pkg/visualization"
	"gopkg.in/yaml.v3"
)

// EnvLogLevel overrides the configured log level
const EnvLogLevel = "LOG_LEVEL"

// Config is the full configuration file
type Config struct {
	LogLevel string         `yaml:"log_level" toml:"log_level"`
	Layout   LayoutConfig   `yaml:"layout" toml:"layout"`
	Filter   FilterConfig   `yaml:"filter" toml:"filter"`
	Relayout RelayoutConfig `yaml:"relayout" toml:"relayout"`
}

// LayoutConfig mirrors visualization.LayoutConfig with file-friendly types
type LayoutConfig struct {
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	NodeRadius      float64 `yaml:"node_radius" toml:"node_radius"`
	Ticks           int     `yaml:"ticks" toml:"ticks"`
	Padding         float64 `yaml:"padding" toml:"padding"`
	LinkDistance    float64 `yaml:"link_distance" toml:"link_distance"`
	LinkMinDistance float64 `yaml:"link_min_distance" toml:"link_min_distance"`
	ChargeStrength  float64 `yaml:"charge_strength" toml:"charge_strength"`
	CollisionScale  float64 `yaml:"collision_scale" toml:"collision_scale"`
	VelocityDecay   float64 `yaml:"velocity_decay" toml:"velocity_decay"`
	AlphaMin        float64 `yaml:"alpha_min" toml:"alpha_min"`
	Seed            int64   `yaml:"seed" toml:"seed"`
	Placement       string  `yaml:"placement" toml:"placement"`
}

// FilterConfig mirrors similarity.Options
type FilterConfig struct {
	Threshold float64 `yaml:"threshold" toml:"threshold"`
	Cutoff    float64 `yaml:"cutoff" toml:"cutoff"`
	Spread    string  `yaml:"spread" toml:"spread"`
	Direction string  `yaml:"direction" toml:"direction"`
}

// RelayoutConfig configures resize handling
type RelayoutConfig struct {
	Window time.Duration `yaml:"window" toml:"window"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	layout := visualization.DefaultLayoutConfig(1200, 900)
	filter := similarity.DefaultOptions()

	return &Config{
		LogLevel: logging.InfoLevel.String(),
		Layout: LayoutConfig{
			Width:           layout.Width,
			Height:          layout.Height,
			NodeRadius:      layout.NodeRadius,
			Ticks:           layout.Ticks,
			Padding:         layout.Padding,
			LinkDistance:    layout.LinkDistance,
			LinkMinDistance: layout.LinkMinDistance,
			ChargeStrength:  layout.ChargeStrength,
			CollisionScale:  layout.CollisionScale,
			VelocityDecay:   layout.VelocityDecay,
			AlphaMin:        layout.AlphaMin,
			Seed:            layout.Seed,
			Placement:       layout.Placement.String(),
		},
		Filter: FilterConfig{
			Threshold: filter.Threshold,
			Cutoff:    filter.Cutoff,
			Spread:    filter.Spread.String(),
			Direction: filter.Direction.String(),
		},
		Relayout: RelayoutConfig{
			Window: relayout.DefaultWindow,
		},
	}
}

// Load reads path over the defaults, applies the environment and validates
// the result. Files ending in .toml are TOML, anything else is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyEnv()

	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys %v", undecoded)
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}

// Validate implements validation.Validatable
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Custom("LogLevel", func() error {
			_, err := logging.ParseLevelStrict(c.LogLevel)
			return err
		}).
		Custom("Layout", func() error {
			layout, err := c.LayoutConfig()
			if err != nil {
				return err
			}
			return layout.Validate()
		}).
		Custom("Filter", func() error {
			_, err := c.FilterOptions()
			return err
		}).
		RangeFloat("Filter.Cutoff", c.Filter.Cutoff, -1, 1).
		NonNegativeFloat("Filter.Threshold", c.Filter.Threshold).
		RangeDuration("Relayout.Window", c.Relayout.Window, time.Millisecond, 10*time.Second).
		Validate()
}

// Level returns the parsed log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// LayoutConfig converts the layout section
func (c *Config) LayoutConfig() (visualization.LayoutConfig, error) {
	placement, err := visualization.ParsePlacement(c.Layout.Placement)
	if err != nil {
		return visualization.LayoutConfig{}, err
	}
	l := c.Layout
	return visualization.LayoutConfig{
		Width:           l.Width,
		Height:          l.Height,
		NodeRadius:      l.NodeRadius,
		Ticks:           l.Ticks,
		Padding:         l.Padding,
		LinkDistance:    l.LinkDistance,
		LinkMinDistance: l.LinkMinDistance,
		ChargeStrength:  l.ChargeStrength,
		CollisionScale:  l.CollisionScale,
		VelocityDecay:   l.VelocityDecay,
		AlphaMin:        l.AlphaMin,
		Seed:            l.Seed,
		Placement:       placement,
	}, nil
}

// FilterOptions converts the filter section
func (c *Config) FilterOptions() (similarity.Options, error) {
	spread, err := similarity.ParseSpread(c.Filter.Spread)
	if err != nil {
		return similarity.Options{}, err
	}
	direction, err := similarity.ParseDirection(c.Filter.Direction)
	if err != nil {
		return similarity.Options{}, err
	}
	return similarity.Options{
		Threshold: c.Filter.Threshold,
		Cutoff:    c.Filter.Cutoff,
		Spread:    spread,
		Direction: direction,
	}, nil
}
