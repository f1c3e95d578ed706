package session

import (
	"context"
	"fmt"

	"github.com/avelar/chemlab/internal/experiment"
	"github.com/avelar/chemlab/internal/lab"
)

// Controller acts on the engine before each tick, the way a demonstrator
// works the bench. A nil controller leaves the bench untouched.
type Controller interface {
	// Act performs any corrective actions and returns labels describing them.
	Act(e *lab.Engine, t float64) []string
}

type Config struct {
	Tick    float64
	MaxTime float64
	Ambient float64
	Rates   lab.Rates
}

func DefaultConfig() Config {
	return Config{
		Tick:    0.1,
		MaxTime: 1800,
		Ambient: lab.DefaultAmbient,
		Rates:   lab.DefaultRates(),
	}
}

// EventRecord is one controller action in the run log.
type EventRecord struct {
	Time   float64 `json:"time"`
	Action string  `json:"action"`
}

// Result holds the readings of a completed (or aborted) run as parallel
// sample slices, plus the event log and gauge summaries.
type Result struct {
	ExperimentID string
	Times        []float64
	Temps        []float64
	Targets      []float64
	Reaction     []float64
	Crystal      []float64
	Stirring     []int
	StepIndex    []int
	Events       []EventRecord
	StepsDone    int
	Completed    bool
	Duration     float64
	Gauges       map[string]float64
}

type Session struct {
	engine *lab.Engine
	cfg    Config
	ctrl   Controller
	gauges []lab.Gauge
}

func New(exp *experiment.Experiment, cfg Config, ctrl Controller) (*Session, error) {
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %f", cfg.Tick)
	}
	if cfg.MaxTime <= 0 {
		return nil, fmt.Errorf("max time must be positive, got %f", cfg.MaxTime)
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		engine: lab.NewEngine(exp, cfg.Rates, cfg.Ambient),
		cfg:    cfg,
		ctrl:   ctrl,
	}, nil
}

func (s *Session) Engine() *lab.Engine { return s.engine }

func (s *Session) AddGauge(g lab.Gauge) {
	s.gauges = append(s.gauges, g)
	s.engine.AddGauge(g)
}

func (s *Session) AddObserver(o lab.Observer) {
	s.engine.AddObserver(o)
}

// Run drives the engine on a fixed tick until the experiment completes, the
// time budget runs out, or the context is canceled. The partial result is
// returned alongside a cancellation error.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	e := s.engine
	result := &Result{
		ExperimentID: e.Experiment().ID,
		Gauges:       make(map[string]float64),
	}

	for _, g := range s.gauges {
		g.Reset()
	}

	t := 0.0
	s.sample(result, t)

	for t < s.cfg.MaxTime && !e.Done() {
		select {
		case <-ctx.Done():
			s.finish(result, t)
			return result, ctx.Err()
		default:
		}

		if s.ctrl != nil {
			for _, action := range s.ctrl.Act(e, t) {
				result.Events = append(result.Events, EventRecord{Time: t, Action: action})
			}
		}

		e.Tick(s.cfg.Tick)
		t += s.cfg.Tick
		s.sample(result, t)
	}

	s.finish(result, t)
	return result, nil
}

func (s *Session) sample(r *Result, t float64) {
	st := s.engine.State()
	r.Times = append(r.Times, t)
	r.Temps = append(r.Temps, st.Temperature)
	r.Targets = append(r.Targets, st.TargetTemp)
	r.Reaction = append(r.Reaction, st.Reaction)
	r.Crystal = append(r.Crystal, st.Crystal)
	r.Stirring = append(r.Stirring, int(st.Stirring))
	r.StepIndex = append(r.StepIndex, st.StepIndex)
}

func (s *Session) finish(r *Result, t float64) {
	r.Duration = t
	r.StepsDone = s.engine.State().StepIndex
	r.Completed = s.engine.Done()
	for _, g := range s.gauges {
		r.Gauges[g.Name()] = g.Value()
	}
}
