package config

import "fmt"

// Pace presets trade realism for patience: "realtime" runs at bench speed,
// "quick" is for tests and demos, "classroom" sits in between.
var Presets = map[string]float64{
	"realtime":  1.0,
	"classroom": 4.0,
	"quick":     10.0,
}

// ApplyPreset scales cfg's rates by the named pace factor, on top of whatever
// rates cfg already carries.
func ApplyPreset(cfg *Config, name string) error {
	factor, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s", name)
	}
	cfg.Rates = RatesConfig{
		Heat:     cfg.Rates.Heat * factor,
		Cool:     cfg.Rates.Cool * factor,
		Ice:      cfg.Rates.Ice * factor,
		Reaction: cfg.Rates.Reaction * factor,
		Crystal:  cfg.Rates.Crystal * factor,
	}
	return nil
}

// GetPreset returns a default config with the named pace applied, or nil for
// an unknown preset.
func GetPreset(name string) *Config {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, name); err != nil {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
