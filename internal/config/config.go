package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultMass     = 1.0
	DefaultZ        = 10.0
	DefaultLogLevel = "info"
)

type Config struct {
	Point         PointConfig   `yaml:"point"`
	Forces        []ForceConfig `yaml:"forces"`
	Dt            float64       `yaml:"dt"`
	Duration      float64       `yaml:"duration"`
	ValidateState bool          `yaml:"validate_state"`
	LogLevel      string        `yaml:"log_level"`
}

type PointConfig struct {
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
	Mass     float64    `yaml:"mass"`
}

// ForceConfig names a registered force and its parameters. Name labels the
// term when several forces are combined and defaults to Type.
type ForceConfig struct {
	Type   string             `yaml:"type"`
	Name   string             `yaml:"name,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func (f ForceConfig) TermName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Type
}

func DefaultConfig() *Config {
	return &Config{
		Point: PointConfig{
			Position: [3]float64{0, 0, DefaultZ},
			Mass:     DefaultMass,
		},
		Forces: []ForceConfig{
			{Type: "gravity", Params: map[string]float64{"g": 9.81}},
		},
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		ValidateState: true,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if !(c.Point.Mass > 0) || math.IsInf(c.Point.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive and finite, got %g", dynamo.ErrParameterBounds, c.Point.Mass)
	}
	for i, f := range c.Forces {
		if f.Type == "" {
			return fmt.Errorf("%w: force %d has no type", dynamo.ErrParameterBounds, i)
		}
	}
	return nil
}

// NewPoint builds the configured initial point.
func (c *Config) NewPoint() (point.MaterialPoint, error) {
	p, err := point.NewAt(c.Point.Position, c.Point.Mass)
	if err != nil {
		return point.MaterialPoint{}, err
	}
	p.SetVelocity(mgl64.Vec3(c.Point.Velocity))
	return p, nil
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		ValidateState: c.ValidateState,
	}
}

// Clone returns a deep copy so presets are never mutated through callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Forces = make([]ForceConfig, len(c.Forces))
	for i, f := range c.Forces {
		out.Forces[i] = f
		if f.Params != nil {
			out.Forces[i].Params = make(map[string]float64, len(f.Params))
			for k, v := range f.Params {
				out.Forces[i].Params[k] = v
			}
		}
	}
	return &out
}
