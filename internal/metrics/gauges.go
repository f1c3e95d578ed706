package metrics

import (
	"github.com/avelar/chemlab/internal/lab"
)

// PeakTemperature records the hottest reading of the run.
type PeakTemperature struct {
	name string
	peak float64
	seen bool
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temp"}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(s *lab.State, dt float64) {
	if !p.seen || s.Temperature > p.peak {
		p.peak = s.Temperature
		p.seen = true
	}
}

func (p *PeakTemperature) Value() float64 { return p.peak }

func (p *PeakTemperature) Reset() {
	p.peak = 0
	p.seen = false
}

// TimeInBand accumulates seconds spent inside a temperature band.
type TimeInBand struct {
	name    string
	low     float64
	high    float64
	seconds float64
}

func NewTimeInBand(low, high float64) *TimeInBand {
	return &TimeInBand{name: "time_in_band", low: low, high: high}
}

func (t *TimeInBand) Name() string { return t.name }

func (t *TimeInBand) Observe(s *lab.State, dt float64) {
	if s.Temperature >= t.low && s.Temperature <= t.high {
		t.seconds += dt
	}
}

func (t *TimeInBand) Value() float64 { return t.seconds }

func (t *TimeInBand) Reset() { t.seconds = 0 }

// HeaterDuty is the fraction of run time the hot plate was on.
type HeaterDuty struct {
	name   string
	onTime float64
	total  float64
}

func NewHeaterDuty() *HeaterDuty {
	return &HeaterDuty{name: "heater_duty"}
}

func (h *HeaterDuty) Name() string { return h.name }

func (h *HeaterDuty) Observe(s *lab.State, dt float64) {
	h.total += dt
	if s.HeaterOn {
		h.onTime += dt
	}
}

func (h *HeaterDuty) Value() float64 {
	if h.total == 0 {
		return 0
	}
	return h.onTime / h.total
}

func (h *HeaterDuty) Reset() {
	h.onTime = 0
	h.total = 0
}

// TimeToReaction records when reaction progress first reached 100%.
type TimeToReaction struct {
	name    string
	elapsed float64
	done    bool
}

func NewTimeToReaction() *TimeToReaction {
	return &TimeToReaction{name: "time_to_reaction"}
}

func (r *TimeToReaction) Name() string { return r.name }

func (r *TimeToReaction) Observe(s *lab.State, dt float64) {
	if r.done {
		return
	}
	r.elapsed += dt
	if s.Reaction >= 100 {
		r.done = true
	}
}

// Value returns the seconds until the reaction completed, or 0 if it never did.
func (r *TimeToReaction) Value() float64 {
	if !r.done {
		return 0
	}
	return r.elapsed
}

func (r *TimeToReaction) Reset() {
	r.elapsed = 0
	r.done = false
}
