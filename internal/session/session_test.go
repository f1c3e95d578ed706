package session

import (
	"context"
	"testing"

	"github.com/avelar/chemlab/internal/experiment"
	"github.com/avelar/chemlab/internal/lab"
)

func quickConfig() Config {
	return Config{
		Tick:    0.1,
		MaxTime: 600,
		Ambient: lab.DefaultAmbient,
		Rates:   lab.DefaultRates().Scale(10),
	}
}

func TestAutopilotCompletesBuiltins(t *testing.T) {
	r := experiment.NewRegistry()
	for _, id := range r.List() {
		t.Run(id, func(t *testing.T) {
			exp, err := r.Get(id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}

			sess, err := New(exp, quickConfig(), NewAutopilot())
			if err != nil {
				t.Fatalf("new session: %v", err)
			}

			result, err := sess.Run(context.Background())
			if err != nil {
				t.Fatalf("run: %v", err)
			}

			if !result.Completed {
				t.Fatalf("autopilot did not finish %s: %d/%d steps in %.1fs, unmet: %v",
					id, result.StepsDone, len(exp.Steps), result.Duration, sess.Engine().Unmet())
			}
			if result.StepsDone != len(exp.Steps) {
				t.Errorf("expected %d steps done, got %d", len(exp.Steps), result.StepsDone)
			}
			if len(result.Events) == 0 {
				t.Error("autopilot left no event log")
			}
		})
	}
}

func TestSessionSamplesEveryTick(t *testing.T) {
	exp := experiment.NewTitration()
	sess, err := New(exp, quickConfig(), NewAutopilot())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	result, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	n := len(result.Times)
	if n < 2 {
		t.Fatalf("expected samples, got %d", n)
	}
	for _, series := range [][]float64{result.Temps, result.Targets, result.Reaction, result.Crystal} {
		if len(series) != n {
			t.Fatalf("sample slices out of step: %d vs %d", len(series), n)
		}
	}
	if len(result.Stirring) != n || len(result.StepIndex) != n {
		t.Fatal("integer sample slices out of step")
	}
	if result.Times[0] != 0 {
		t.Errorf("first sample should be t=0, got %.2f", result.Times[0])
	}
}

func TestSessionGauges(t *testing.T) {
	exp := experiment.NewTitration()
	sess, err := New(exp, quickConfig(), NewAutopilot())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	g := &maxStepGauge{}
	sess.AddGauge(g)

	result, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	v, ok := result.Gauges["max_step"]
	if !ok {
		t.Fatal("gauge missing from result")
	}
	if int(v) != len(exp.Steps) {
		t.Errorf("expected max step %d, got %.0f", len(exp.Steps), v)
	}
}

type maxStepGauge struct {
	max int
}

func (g *maxStepGauge) Name() string { return "max_step" }
func (g *maxStepGauge) Observe(s *lab.State, dt float64) {
	if s.StepIndex > g.max {
		g.max = s.StepIndex
	}
}
func (g *maxStepGauge) Value() float64 { return float64(g.max) }
func (g *maxStepGauge) Reset()         { g.max = 0 }

func TestSessionInvalidConfig(t *testing.T) {
	exp := experiment.NewTitration()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero tick", Config{Tick: 0, MaxTime: 10}},
		{"negative tick", Config{Tick: -0.1, MaxTime: 10}},
		{"zero max time", Config{Tick: 0.1, MaxTime: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(exp, tt.cfg, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSessionCancel(t *testing.T) {
	exp := experiment.NewAspirin()
	sess, err := New(exp, quickConfig(), NewAutopilot())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sess.Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected a partial result")
	}
	if result.Completed {
		t.Error("canceled run should not report completion")
	}
}

func TestSessionNoController(t *testing.T) {
	exp := experiment.NewTitration()
	cfg := quickConfig()
	cfg.MaxTime = 5

	sess, err := New(exp, cfg, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	result, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Completed {
		t.Error("an untouched bench should never finish")
	}
	if result.Duration < 4.9 {
		t.Errorf("expected the run to exhaust the budget, got %.1fs", result.Duration)
	}
}

func TestAutopilotSeeksColdBand(t *testing.T) {
	exp := experiment.NewAspirin()
	sess, err := New(exp, quickConfig(), NewAutopilot())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	result, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Completed {
		t.Fatal("autopilot did not finish the synthesis")
	}

	// The crystallization phase requires the ice bath: the trace must dip
	// below the 10 °C ceiling.
	min := result.Temps[0]
	for _, temp := range result.Temps {
		if temp < min {
			min = temp
		}
	}
	if min > 10 {
		t.Errorf("trace never reached the crystallization band, min %.1f", min)
	}
}
