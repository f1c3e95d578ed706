package lab

import (
	"fmt"

	"github.com/avelar/chemlab/internal/experiment"
)

// Engine drives one experiment session: a flat state record updated by the
// fixed-interval Tick reducer and by discrete user events.
type Engine struct {
	exp       *experiment.Experiment
	state     *State
	rates     Rates
	minStir   experiment.StirSpeed
	observers []Observer
	gauges    []Gauge
}

func NewEngine(exp *experiment.Experiment, rates Rates, ambient float64) *Engine {
	minStir, _ := exp.Reaction.MinStirSpeed()
	return &Engine{
		exp:     exp,
		state:   NewState(ambient),
		rates:   rates,
		minStir: minStir,
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }
func (e *Engine) AddGauge(g Gauge)       { e.gauges = append(e.gauges, g) }

func (e *Engine) Experiment() *experiment.Experiment { return e.exp }

// State returns the live state record. Callers must not mutate it; use
// Snapshot for recordings.
func (e *Engine) State() *State { return e.state }

func (e *Engine) Snapshot() *State { return e.state.Clone() }

// Step returns the current step, or nil once the experiment is complete.
func (e *Engine) Step() *experiment.Step {
	if e.Done() {
		return nil
	}
	return &e.exp.Steps[e.state.StepIndex]
}

func (e *Engine) Done() bool {
	return e.state.StepIndex >= len(e.exp.Steps)
}

// Tick advances the simulation by dt seconds.
func (e *Engine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	s := e.state

	e.rampTemperature(dt)

	if e.reactionActive() {
		s.Reaction = clampPercent(s.Reaction + e.rates.Reaction*stirFactor(s.Stirring)*dt)
	}
	if e.crystalActive() {
		s.Crystal = clampPercent(s.Crystal + e.rates.Crystal*dt)
	}

	if s.TimerRunning {
		s.TimerSeconds += dt
	}
	s.Elapsed += dt

	for _, g := range e.gauges {
		g.Observe(s, dt)
	}
	for _, o := range e.observers {
		o.OnTick(s, s.Elapsed)
	}
}

// rampTemperature moves temperature toward the active setpoint without ever
// crossing it: the heater target, the ice bath, or ambient.
func (e *Engine) rampTemperature(dt float64) {
	s := e.state
	switch {
	case s.IceBath:
		s.Temperature = approach(s.Temperature, IceBathTemp, e.rates.Ice*dt)
	case s.HeaterOn:
		if s.Temperature < s.TargetTemp {
			s.Temperature = approach(s.Temperature, s.TargetTemp, e.rates.Heat*dt)
		} else {
			s.Temperature = approach(s.Temperature, s.TargetTemp, e.rates.Cool*dt)
		}
	default:
		s.Temperature = approach(s.Temperature, s.Ambient, e.rates.Cool*dt)
	}
}

// approach moves v toward target by at most delta, clamping at the target.
func approach(v, target, delta float64) float64 {
	if v < target {
		v += delta
		if v > target {
			v = target
		}
	} else if v > target {
		v -= delta
		if v < target {
			v = target
		}
	}
	return v
}

func (e *Engine) reactionActive() bool {
	s := e.state
	for _, id := range e.exp.Reaction.Chemicals {
		if !s.Has(id) {
			return false
		}
	}
	if s.Temperature < e.exp.Reaction.MinTemp || s.Temperature > e.exp.Reaction.MaxTemp {
		return false
	}
	return s.Stirring >= e.minStir
}

func (e *Engine) crystalActive() bool {
	spec := e.exp.Crystal
	if spec == nil {
		return false
	}
	s := e.state
	return s.Reaction >= spec.AfterReaction && s.Temperature <= spec.MaxTemp
}

// AddChemical marks a chemical as added. Each chemical can be added at most
// once; the flag only clears on Reset.
func (e *Engine) AddChemical(id string) error {
	if _, ok := e.exp.Chemical(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChemical, id)
	}
	if e.state.Has(id) {
		return fmt.Errorf("%w: %s", ErrChemicalAdded, id)
	}
	e.state.Added[id] = true
	return nil
}

// SetHeater switches the hot plate. Turning it on removes the ice bath.
func (e *Engine) SetHeater(on bool) {
	e.state.HeaterOn = on
	if on {
		e.state.IceBath = false
	}
}

// SetIceBath moves the vessel into or out of the ice bath. The heater and the
// ice bath are mutually exclusive.
func (e *Engine) SetIceBath(on bool) {
	e.state.IceBath = on
	if on {
		e.state.HeaterOn = false
	}
}

func (e *Engine) SetTargetTemp(c float64) error {
	if c < MinTargetTemp || c > MaxTargetTemp {
		return fmt.Errorf("%w: %.1f", ErrTargetOutOfRange, c)
	}
	e.state.TargetTemp = c
	return nil
}

func (e *Engine) SetStirring(sp experiment.StirSpeed) error {
	if sp < experiment.StirOff || sp > experiment.StirHigh {
		return fmt.Errorf("%w: %d", ErrInvalidStirSpeed, int(sp))
	}
	e.state.Stirring = sp
	return nil
}

func (e *Engine) StartTimer() { e.state.TimerRunning = true }
func (e *Engine) StopTimer()  { e.state.TimerRunning = false }

func (e *Engine) ResetTimer() {
	e.state.TimerRunning = false
	e.state.TimerSeconds = 0
}

// CanAdvance reports whether every condition of the current step holds.
func (e *Engine) CanAdvance() bool {
	step := e.Step()
	if step == nil {
		return false
	}
	for _, c := range step.Conditions {
		if !e.conditionMet(c) {
			return false
		}
	}
	return true
}

// Unmet lists the current step's unmet conditions as checklist text.
func (e *Engine) Unmet() []string {
	step := e.Step()
	if step == nil {
		return nil
	}
	var unmet []string
	for _, c := range step.Conditions {
		if !e.conditionMet(c) {
			unmet = append(unmet, c.Describe(e.exp))
		}
	}
	return unmet
}

// ConditionMet evaluates a single condition against the current state, for
// checklist rendering.
func (e *Engine) ConditionMet(c experiment.Condition) bool {
	return e.conditionMet(c)
}

func (e *Engine) conditionMet(c experiment.Condition) bool {
	s := e.state
	switch c.Kind {
	case experiment.CondChemical:
		return s.Has(c.Chemical)
	case experiment.CondTemperature:
		return s.Temperature >= c.MinTemp && s.Temperature <= c.MaxTemp
	case experiment.CondStirring:
		want, err := experiment.ParseStirSpeed(c.MinStir)
		if err != nil {
			return false
		}
		return s.Stirring >= want
	case experiment.CondTimer:
		return s.TimerSeconds >= c.Seconds
	case experiment.CondReaction:
		return s.Reaction >= c.Percent
	case experiment.CondCrystal:
		return s.Crystal >= c.Percent
	}
	return false
}

// Advance moves to the next step once the gate passes. The per-step timer
// resets; chemical flags and progress carry over.
func (e *Engine) Advance() error {
	if e.Done() {
		return ErrExperimentDone
	}
	if !e.CanAdvance() {
		return ErrStepConditions
	}
	e.state.StepIndex++
	e.ResetTimer()
	return nil
}

// Reset restores the initial bench: ambient temperature, everything off, all
// chemical flags cleared. This is the only path that reverts an added flag.
func (e *Engine) Reset() {
	e.state = NewState(e.state.Ambient)
	for _, g := range e.gauges {
		g.Reset()
	}
}
