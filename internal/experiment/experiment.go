package experiment

import (
	"fmt"
	"strings"
)

// StirSpeed is the magnetic stirrer setting. Experiments reference speeds by
// name in fixtures; the lab engine compares them numerically.
type StirSpeed int

const (
	StirOff StirSpeed = iota
	StirLow
	StirMedium
	StirHigh
)

var stirNames = map[StirSpeed]string{
	StirOff:    "off",
	StirLow:    "low",
	StirMedium: "medium",
	StirHigh:   "high",
}

func (s StirSpeed) String() string {
	if name, ok := stirNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stir(%d)", int(s))
}

func ParseStirSpeed(name string) (StirSpeed, error) {
	for speed, n := range stirNames {
		if n == name {
			return speed, nil
		}
	}
	return StirOff, fmt.Errorf("unknown stir speed: %q", name)
}

type ConditionKind string

const (
	CondChemical    ConditionKind = "chemical"
	CondTemperature ConditionKind = "temperature"
	CondStirring    ConditionKind = "stirring"
	CondTimer       ConditionKind = "timer"
	CondReaction    ConditionKind = "reaction"
	CondCrystal     ConditionKind = "crystal"
)

// Condition is one threshold a step gate checks. A step advances only when
// every one of its conditions holds simultaneously.
type Condition struct {
	Kind     ConditionKind `yaml:"kind" json:"kind"`
	Chemical string        `yaml:"chemical,omitempty" json:"chemical,omitempty"`
	MinTemp  float64       `yaml:"min_temp,omitempty" json:"min_temp,omitempty"`
	MaxTemp  float64       `yaml:"max_temp,omitempty" json:"max_temp,omitempty"`
	MinStir  string        `yaml:"min_stir,omitempty" json:"min_stir,omitempty"`
	Seconds  float64       `yaml:"seconds,omitempty" json:"seconds,omitempty"`
	Percent  float64       `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// Describe renders the condition as checklist text for the UI.
func (c Condition) Describe(e *Experiment) string {
	switch c.Kind {
	case CondChemical:
		name := c.Chemical
		if chem, ok := e.Chemical(c.Chemical); ok {
			name = chem.Name
		}
		return fmt.Sprintf("add %s", name)
	case CondTemperature:
		return fmt.Sprintf("hold %.0f-%.0f °C", c.MinTemp, c.MaxTemp)
	case CondStirring:
		return fmt.Sprintf("stir at least %s", c.MinStir)
	case CondTimer:
		return fmt.Sprintf("run timer for %.0fs", c.Seconds)
	case CondReaction:
		return fmt.Sprintf("reaction at %.0f%%", c.Percent)
	case CondCrystal:
		return fmt.Sprintf("crystals at %.0f%%", c.Percent)
	}
	return string(c.Kind)
}

type Chemical struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Formula string `yaml:"formula,omitempty" json:"formula,omitempty"`
	Hazard  string `yaml:"hazard,omitempty" json:"hazard,omitempty"`
}

type Step struct {
	Title        string      `yaml:"title" json:"title"`
	Instructions string      `yaml:"instructions" json:"instructions"`
	Safety       string      `yaml:"safety,omitempty" json:"safety,omitempty"`
	Conditions   []Condition `yaml:"conditions" json:"conditions"`
}

// ReactionSpec defines when reaction progress accrues: all listed chemicals
// added, temperature inside the band, stirring at or above the minimum.
type ReactionSpec struct {
	Chemicals []string `yaml:"chemicals" json:"chemicals"`
	MinTemp   float64  `yaml:"min_temp" json:"min_temp"`
	MaxTemp   float64  `yaml:"max_temp" json:"max_temp"`
	MinStir   string   `yaml:"min_stir,omitempty" json:"min_stir,omitempty"`
}

// CrystalSpec defines when crystal progress accrues: reaction progress at or
// past AfterReaction and temperature at or below MaxTemp.
type CrystalSpec struct {
	MaxTemp       float64 `yaml:"max_temp" json:"max_temp"`
	AfterReaction float64 `yaml:"after_reaction" json:"after_reaction"`
}

type Experiment struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Equipment   []string     `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	Safety      []string     `yaml:"safety,omitempty" json:"safety,omitempty"`
	Chemicals   []Chemical   `yaml:"chemicals" json:"chemicals"`
	Reaction    ReactionSpec `yaml:"reaction" json:"reaction"`
	Crystal     *CrystalSpec `yaml:"crystal,omitempty" json:"crystal,omitempty"`
	Steps       []Step       `yaml:"steps" json:"steps"`
}

func (e *Experiment) Chemical(id string) (Chemical, bool) {
	for _, c := range e.Chemicals {
		if c.ID == id {
			return c, true
		}
	}
	return Chemical{}, false
}

// MinStirSpeed parses the reaction's minimum stir setting. Unset means off.
func (r ReactionSpec) MinStirSpeed() (StirSpeed, error) {
	if r.MinStir == "" {
		return StirOff, nil
	}
	return ParseStirSpeed(r.MinStir)
}

func (e *Experiment) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("experiment missing id")
	}
	if e.Title == "" {
		return fmt.Errorf("experiment %s: missing title", e.ID)
	}
	if len(e.Steps) == 0 {
		return fmt.Errorf("experiment %s: no steps", e.ID)
	}
	seen := make(map[string]bool, len(e.Chemicals))
	for _, c := range e.Chemicals {
		if c.ID == "" {
			return fmt.Errorf("experiment %s: chemical missing id", e.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("experiment %s: duplicate chemical %s", e.ID, c.ID)
		}
		seen[c.ID] = true
	}
	for _, id := range e.Reaction.Chemicals {
		if !seen[id] {
			return fmt.Errorf("experiment %s: reaction references unknown chemical %s", e.ID, id)
		}
	}
	if e.Reaction.MinTemp > e.Reaction.MaxTemp {
		return fmt.Errorf("experiment %s: reaction band inverted (%.1f > %.1f)",
			e.ID, e.Reaction.MinTemp, e.Reaction.MaxTemp)
	}
	if _, err := e.Reaction.MinStirSpeed(); err != nil {
		return fmt.Errorf("experiment %s: reaction: %w", e.ID, err)
	}
	if e.Crystal != nil {
		if e.Crystal.AfterReaction < 0 || e.Crystal.AfterReaction > 100 {
			return fmt.Errorf("experiment %s: crystal threshold out of range: %.1f",
				e.ID, e.Crystal.AfterReaction)
		}
	}
	for i, step := range e.Steps {
		if err := validateStep(e, step, seen); err != nil {
			return fmt.Errorf("experiment %s: step %d: %w", e.ID, i+1, err)
		}
	}
	return nil
}

func validateStep(e *Experiment, step Step, chemicals map[string]bool) error {
	if strings.TrimSpace(step.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(step.Conditions) == 0 {
		return fmt.Errorf("no completion conditions")
	}
	for _, c := range step.Conditions {
		switch c.Kind {
		case CondChemical:
			if !chemicals[c.Chemical] {
				return fmt.Errorf("condition references unknown chemical %q", c.Chemical)
			}
		case CondTemperature:
			if c.MinTemp > c.MaxTemp {
				return fmt.Errorf("temperature band inverted (%.1f > %.1f)", c.MinTemp, c.MaxTemp)
			}
		case CondStirring:
			if _, err := ParseStirSpeed(c.MinStir); err != nil {
				return err
			}
		case CondTimer:
			if c.Seconds <= 0 {
				return fmt.Errorf("timer condition needs positive seconds, got %.1f", c.Seconds)
			}
		case CondReaction, CondCrystal:
			if c.Percent <= 0 || c.Percent > 100 {
				return fmt.Errorf("%s condition percent out of range: %.1f", c.Kind, c.Percent)
			}
			if c.Kind == CondCrystal && e.Crystal == nil {
				return fmt.Errorf("crystal condition but experiment has no crystal spec")
			}
		default:
			return fmt.Errorf("unknown condition kind %q", c.Kind)
		}
	}
	return nil
}
