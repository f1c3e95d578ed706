package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/avelar/chemlab/internal/lab"
)

const (
	DefaultDataDir = ".chemlab"
	DefaultTick    = 0.1
	DefaultMaxTime = 1800.0
	DefaultTheme   = "bench"
)

type RatesConfig struct {
	Heat     float64 `yaml:"heat"`
	Cool     float64 `yaml:"cool"`
	Ice      float64 `yaml:"ice"`
	Reaction float64 `yaml:"reaction"`
	Crystal  float64 `yaml:"crystal"`
}

type Config struct {
	DataDir string      `yaml:"data_dir"`
	Tick    float64     `yaml:"tick"`
	MaxTime float64     `yaml:"max_time"`
	Ambient float64     `yaml:"ambient"`
	Theme   string      `yaml:"theme"`
	Rates   RatesConfig `yaml:"rates"`
}

func DefaultConfig() *Config {
	rates := lab.DefaultRates()
	return &Config{
		DataDir: DefaultDataDir,
		Tick:    DefaultTick,
		MaxTime: DefaultMaxTime,
		Ambient: lab.DefaultAmbient,
		Theme:   DefaultTheme,
		Rates: RatesConfig{
			Heat:     rates.Heat,
			Cool:     rates.Cool,
			Ice:      rates.Ice,
			Reaction: rates.Reaction,
			Crystal:  rates.Crystal,
		},
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
	if err := cfg.Validate(); err != nil {
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

// FromEnv applies environment overrides, loading a .env file first when one
// is present. Recognized variables: CHEMLAB_DATA_DIR, CHEMLAB_THEME,
// CHEMLAB_TICK.
func (c *Config) FromEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("CHEMLAB_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CHEMLAB_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("CHEMLAB_TICK"); v != "" {
		tick, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CHEMLAB_TICK: %w", err)
		}
		c.Tick = tick
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %f", c.Tick)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %f", c.MaxTime)
	}
	r := c.Rates
	if r.Heat <= 0 || r.Cool <= 0 || r.Ice <= 0 || r.Reaction <= 0 || r.Crystal <= 0 {
		return fmt.Errorf("all rates must be positive")
	}
	return nil
}

func (c *Config) LabRates() lab.Rates {
	return lab.Rates{
		Heat:     c.Rates.Heat,
		Cool:     c.Rates.Cool,
		Ice:      c.Rates.Ice,
		Reaction: c.Rates.Reaction,
		Crystal:  c.Rates.Crystal,
	}
}
