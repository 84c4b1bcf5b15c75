package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flipdeck/flipdeck/internal/flip"
)

const (
	DefaultDurationMS  = 500
	DefaultSnapTime    = 0.2
	DefaultSnapTravel  = 0.75
	DefaultPerspective = 0.002
	DefaultTickRate    = 60
)

// Config is the file- and flag-facing shape of the animation: durations in
// milliseconds and enums spelled as strings, mapped onto the typed core
// through [Config.Animation].
type Config struct {
	DurationMS  int     `yaml:"duration_ms"`
	Axis        string  `yaml:"axis"`
	Orientation string  `yaml:"orientation"`
	SnapTime    float64 `yaml:"snap_time"`
	SnapTravel  float64 `yaml:"snap_travel"`
	Perspective float64 `yaml:"perspective"`
	Backface    string  `yaml:"backface"`
	TickRate    int     `yaml:"tick_rate"`
	DataDir     string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		DurationMS:  DefaultDurationMS,
		Axis:        "vertical",
		Orientation: "front",
		SnapTime:    DefaultSnapTime,
		SnapTravel:  DefaultSnapTravel,
		Perspective: DefaultPerspective,
		Backface:    "tracking",
		TickRate:    DefaultTickRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Animation maps the string-keyed settings onto a validated flip.Config.
func (c *Config) Animation() (flip.Config, error) {
	axis, err := flip.ParseAxis(c.Axis)
	if err != nil {
		return flip.Config{}, err
	}
	orient, err := flip.ParseOrientation(c.Orientation)
	if err != nil {
		return flip.Config{}, err
	}
	backface, err := flip.ParseBackface(c.Backface)
	if err != nil {
		return flip.Config{}, err
	}

	fc := flip.Config{
		Duration:    time.Duration(c.DurationMS) * time.Millisecond,
		Axis:        axis,
		Orientation: orient,
		SnapTime:    c.SnapTime,
		SnapTravel:  c.SnapTravel,
		Perspective: c.Perspective,
		Backface:    backface,
	}
	if err := fc.Validate(); err != nil {
		return flip.Config{}, err
	}
	return fc, nil
}

// Tick is the host frame interval implied by TickRate, falling back to the
// default rate for non-positive values.
func (c *Config) Tick() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
