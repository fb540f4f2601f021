// Package config holds the game's tuning parameters.
//
// Values are read from YAML. Search order for Load: explicit path,
// ./configs/birds.yaml, then the embedded default.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Bird kinds as they appear in the birds section.
const (
	BirdRed    = "red"
	BirdYellow = "yellow"
	BirdBlue   = "blue"
)

type Config struct {
	Window    Window          `yaml:"window"`
	Physics   Physics         `yaml:"physics"`
	Damage    Damage          `yaml:"damage"`
	Birds     map[string]Bird `yaml:"birds"`
	Abilities Abilities       `yaml:"abilities"`
	Column    Column          `yaml:"column"`
	Pig       Pig             `yaml:"pig"`
	Layout    Layout          `yaml:"layout"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Physics struct {
	Gravity       float64 `yaml:"gravity"`
	Step          float64 `yaml:"step"` // seconds per simulation step
	FloorHeight   float64 `yaml:"floor_height"`
	FloorFriction float64 `yaml:"floor_friction"`
}

// Damage thresholds apply to the norm of a collision's total impulse.
// Below IgnoreBelow nothing happens; above DestroyAbove the world objects
// involved are removed.
type Damage struct {
	IgnoreBelow  float64 `yaml:"ignore_below"`
	DestroyAbove float64 `yaml:"destroy_above"`
}

type Bird struct {
	Image      string  `yaml:"image"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	MaxImpulse float64 `yaml:"max_impulse"` // cap on the drag length
	Power      float64 `yaml:"power"`       // drag length to physics impulse
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

type Abilities struct {
	MinSpeed       float64 `yaml:"min_speed"`
	BoostFactor    float64 `yaml:"boost_factor"`
	SplitAngle     float64 `yaml:"split_angle"` // radians
	SplitMinHeight float64 `yaml:"split_min_height"`
}

type Column struct {
	Image      string  `yaml:"image"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
	Points     int     `yaml:"points"`
}

type Pig struct {
	Image      string  `yaml:"image"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
	Points     int     `yaml:"points"`
}

type Layout struct {
	ColumnY       float64 `yaml:"column_y"`
	ColumnSpacing int     `yaml:"column_spacing"`
	PigY          float64 `yaml:"pig_y"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default is broken: %v", err))
	}
	return cfg
}

// Load resolves and validates the configuration.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return loadFile(customPath)
	}

	if _, err := os.Stat(LocalConfigPath); err == nil {
		return loadFile(LocalConfigPath)
	}

	return Default(), nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// A bird entry only replaces the fields it names.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	// Map values decode into a zero Bird. Merge each one over its default.
	var overrides struct {
		Birds map[string]yaml.Node `yaml:"birds"`
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Config{}, err
	}
	cfg.Birds = Default().Birds
	for kind, node := range overrides.Birds {
		b := cfg.Birds[kind]
		if err := node.Decode(&b); err != nil {
			return Config{}, fmt.Errorf("bird %q: %w", kind, err)
		}
		cfg.Birds[kind] = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// BirdFor returns the parameters of a bird kind.
func (c Config) BirdFor(kind string) (Bird, bool) {
	b, ok := c.Birds[kind]
	return b, ok
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Physics.Step <= 0 {
		return fmt.Errorf("%w: physics step must be positive, got %v", ErrInvalid, c.Physics.Step)
	}
	if c.Damage.IgnoreBelow < 0 || c.Damage.DestroyAbove < c.Damage.IgnoreBelow {
		return fmt.Errorf("%w: damage thresholds %v/%v", ErrInvalid, c.Damage.IgnoreBelow, c.Damage.DestroyAbove)
	}
	for _, kind := range []string{BirdRed, BirdYellow, BirdBlue} {
		b, ok := c.Birds[kind]
		if !ok {
			return fmt.Errorf("%w: missing bird %q", ErrInvalid, kind)
		}
		if b.Radius <= 0 || b.Mass <= 0 {
			return fmt.Errorf("%w: bird %q needs positive radius and mass", ErrInvalid, kind)
		}
		if b.MaxImpulse < 0 || b.Power < 0 {
			return fmt.Errorf("%w: bird %q has negative launch parameters", ErrInvalid, kind)
		}
	}
	if c.Column.Width <= 0 || c.Column.Height <= 0 || c.Column.Mass <= 0 {
		return fmt.Errorf("%w: column needs positive size and mass", ErrInvalid)
	}
	if c.Pig.Radius <= 0 || c.Pig.Mass <= 0 {
		return fmt.Errorf("%w: pig needs positive radius and mass", ErrInvalid)
	}
	if c.Layout.ColumnSpacing <= 0 {
		return fmt.Errorf("%w: column spacing must be positive", ErrInvalid)
	}
	return nil
}
