package lab

import (
	"github.com/avelar/chemlab/internal/experiment"
)

// Temperature limits for the simulated hot plate and ice bath.
const (
	IceBathTemp    = 2.0
	DefaultAmbient = 22.0
	MinTargetTemp  = 0.0
	MaxTargetTemp  = 150.0
)

// Rates are the simulation ramp rates. Heat, Cool and Ice are °C per second;
// Reaction and Crystal are percent per second under ideal conditions.
type Rates struct {
	Heat     float64
	Cool     float64
	Ice      float64
	Reaction float64
	Crystal  float64
}

func DefaultRates() Rates {
	return Rates{
		Heat:     0.9,
		Cool:     0.25,
		Ice:      1.4,
		Reaction: 4.0,
		Crystal:  5.0,
	}
}

// Scale returns the rates sped up by the given factor, used by the pace
// presets so a classroom demo does not take real lab time.
func (r Rates) Scale(factor float64) Rates {
	return Rates{
		Heat:     r.Heat * factor,
		Cool:     r.Cool * factor,
		Ice:      r.Ice * factor,
		Reaction: r.Reaction * factor,
		Crystal:  r.Crystal * factor,
	}
}

// State is the ephemeral lab record for the active session. It lives in
// memory for the lifetime of the session and is discarded on exit.
type State struct {
	Temperature float64
	TargetTemp  float64
	Ambient     float64
	HeaterOn    bool
	IceBath     bool
	Stirring    experiment.StirSpeed

	TimerRunning bool
	TimerSeconds float64
	Elapsed      float64

	// Reaction and Crystal stay within [0,100].
	Reaction float64
	Crystal  float64

	Added     map[string]bool
	StepIndex int
}

func NewState(ambient float64) *State {
	return &State{
		Temperature: ambient,
		TargetTemp:  ambient,
		Ambient:     ambient,
		Added:       make(map[string]bool),
	}
}

func (s *State) Has(chemical string) bool {
	return s.Added[chemical]
}

func (s *State) Clone() *State {
	c := *s
	c.Added = make(map[string]bool, len(s.Added))
	for k, v := range s.Added {
		c.Added[k] = v
	}
	return &c
}

// stirFactor scales reaction accrual by stirring vigor. An unstirred mix
// still reacts, just slowly.
func stirFactor(sp experiment.StirSpeed) float64 {
	switch sp {
	case experiment.StirLow:
		return 0.7
	case experiment.StirMedium:
		return 1.0
	case experiment.StirHigh:
		return 1.2
	}
	return 0.5
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Observer is notified after every reducer tick.
type Observer interface {
	OnTick(s *State, t float64)
}

// Gauge accumulates a summary value over a run.
type Gauge interface {
	Name() string
	Observe(s *State, dt float64)
	Value() float64
	Reset()
}
