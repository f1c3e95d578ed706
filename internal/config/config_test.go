package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avelar/chemlab/internal/lab"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if cfg.Tick <= 0 {
		t.Error("tick should be positive")
	}
	if cfg.MaxTime <= 0 {
		t.Error("max time should be positive")
	}
	if cfg.Ambient != lab.DefaultAmbient {
		t.Errorf("expected ambient %.1f, got %.1f", lab.DefaultAmbient, cfg.Ambient)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	base := DefaultConfig()
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rates.Reaction != base.Rates.Reaction*10 {
		t.Errorf("quick preset should scale reaction rate by 10: %.1f", cfg.Rates.Reaction)
	}
	if cfg.Tick != base.Tick {
		t.Error("preset should not change the tick")
	}
}

func TestApplyPresetComposesWithLoadedRates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rates.Heat = 2.0

	if err := ApplyPreset(cfg, "classroom"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Rates.Heat != 8.0 {
		t.Errorf("preset should scale the carried rate: got %.1f, want 8.0", cfg.Rates.Heat)
	}
}

func TestApplyPresetRealtimeIsIdentity(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, "realtime"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Rates != DefaultConfig().Rates {
		t.Errorf("realtime pace changed the rates: %+v", cfg.Rates)
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, "glacial"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("glacial"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(presets))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "tick: 0.5\ntheme: amber\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tick != 0.5 {
		t.Errorf("expected tick 0.5, got %f", cfg.Tick)
	}
	if cfg.Theme != "amber" {
		t.Errorf("expected theme amber, got %s", cfg.Theme)
	}
	// Untouched fields keep their defaults.
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("data dir lost its default: %s", cfg.DataDir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tick: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative tick")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "chalk"
	cfg.Rates.Heat = 2.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Theme != "chalk" || loaded.Rates.Heat != 2.0 {
		t.Errorf("round trip lost fields: theme=%s heat=%.1f", loaded.Theme, loaded.Rates.Heat)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CHEMLAB_DATA_DIR", "/tmp/benches")
	t.Setenv("CHEMLAB_THEME", "chalk")
	t.Setenv("CHEMLAB_TICK", "0.25")

	cfg := DefaultConfig()
	if err := cfg.FromEnv(); err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.DataDir != "/tmp/benches" {
		t.Errorf("data dir override lost: %s", cfg.DataDir)
	}
	if cfg.Theme != "chalk" {
		t.Errorf("theme override lost: %s", cfg.Theme)
	}
	if cfg.Tick != 0.25 {
		t.Errorf("tick override lost: %f", cfg.Tick)
	}
}

func TestFromEnvBadTick(t *testing.T) {
	t.Setenv("CHEMLAB_TICK", "often")

	cfg := DefaultConfig()
	if err := cfg.FromEnv(); err == nil {
		t.Error("expected error for unparseable tick")
	}
}

func TestLabRates(t *testing.T) {
	cfg := DefaultConfig()
	rates := cfg.LabRates()
	if rates != lab.DefaultRates() {
		t.Errorf("default config should yield the default lab rates: %+v", rates)
	}
}
