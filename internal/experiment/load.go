package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a single experiment definition from a YAML or JSON fixture
// and validates it. The format is picked by file extension.
func LoadFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var exp Experiment
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &exp); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &exp); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported experiment file %s (want .yaml or .json)", path)
	}

	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

// SaveFile writes an experiment definition, mainly so built-ins can be dumped
// as editable fixtures.
func SaveFile(path string, exp *Experiment) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(exp)
	case ".json":
		data, err = json.MarshalIndent(exp, "", "  ")
	default:
		return fmt.Errorf("unsupported experiment file %s (want .yaml or .json)", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
