package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/flipdeck/flipdeck/internal/flip"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DurationMS <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Axis != "vertical" {
		t.Errorf("expected axis vertical, got %s", cfg.Axis)
	}
	if cfg.SnapTime <= 0 || cfg.SnapTime >= 1 {
		t.Errorf("snap time should sit inside (0,1), got %f", cfg.SnapTime)
	}

	if _, err := cfg.Animation(); err != nil {
		t.Errorf("default config should map cleanly: %v", err)
	}
}

func TestAnimationMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DurationMS = 250
	cfg.Axis = "horizontal"
	cfg.Orientation = "back"
	cfg.Backface = "pinned"

	fc, err := cfg.Animation()
	if err != nil {
		t.Fatal(err)
	}
	if fc.Duration != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", fc.Duration)
	}
	if fc.Axis != flip.Horizontal {
		t.Errorf("expected horizontal axis, got %v", fc.Axis)
	}
	if fc.Orientation != flip.Back {
		t.Errorf("expected back orientation, got %v", fc.Orientation)
	}
	if fc.Backface != flip.BackfacePinned {
		t.Errorf("expected pinned backface, got %v", fc.Backface)
	}
}

func TestAnimationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown axis", func(c *Config) { c.Axis = "diagonal" }},
		{"unknown orientation", func(c *Config) { c.Orientation = "sideways" }},
		{"unknown backface", func(c *Config) { c.Backface = "mirror" }},
		{"zero duration", func(c *Config) { c.DurationMS = 0 }},
		{"snap time out of range", func(c *Config) { c.SnapTime = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.Animation(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("snappy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.DurationMS != 250 {
		t.Errorf("expected 250ms snappy preset, got %d", cfg.DurationMS)
	}
	if _, err := cfg.Animation(); err != nil {
		t.Errorf("preset should map cleanly: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestEveryPresetMapsCleanly(t *testing.T) {
	for name, cfg := range Presets {
		if _, err := cfg.Animation(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipdeck.yaml")

	cfg := DefaultConfig()
	cfg.DurationMS = 750
	cfg.Axis = "horizontal"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DurationMS != 750 {
		t.Errorf("expected 750ms, got %d", loaded.DurationMS)
	}
	if loaded.Axis != "horizontal" {
		t.Errorf("expected horizontal, got %s", loaded.Axis)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
