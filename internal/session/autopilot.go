package session

import (
	"fmt"

	"github.com/avelar/chemlab/internal/experiment"
	"github.com/avelar/chemlab/internal/lab"
)

// Autopilot is the demonstration controller: each tick it inspects the
// current step's unmet conditions and takes the obvious corrective actions —
// add the missing chemical, set the bath, start the timer, advance when the
// gate opens.
type Autopilot struct{}

func NewAutopilot() *Autopilot { return &Autopilot{} }

func (a *Autopilot) Act(e *lab.Engine, t float64) []string {
	if e.Done() {
		return nil
	}
	if e.CanAdvance() {
		if err := e.Advance(); err == nil {
			return []string{"advance"}
		}
		return nil
	}

	var did []string
	step := e.Step()
	for _, c := range step.Conditions {
		did = append(did, a.work(e, c)...)
	}
	return did
}

// work nudges the bench toward satisfying one condition.
func (a *Autopilot) work(e *lab.Engine, c experiment.Condition) []string {
	st := e.State()
	exp := e.Experiment()

	switch c.Kind {
	case experiment.CondChemical:
		return a.addChemical(e, c.Chemical)

	case experiment.CondTemperature:
		return a.seekBand(e, c.MinTemp, c.MaxTemp)

	case experiment.CondStirring:
		want, err := experiment.ParseStirSpeed(c.MinStir)
		if err != nil {
			return nil
		}
		return a.stirAtLeast(e, want)

	case experiment.CondTimer:
		if !st.TimerRunning && st.TimerSeconds < c.Seconds {
			e.StartTimer()
			return []string{"timer start"}
		}

	case experiment.CondReaction:
		var did []string
		for _, id := range exp.Reaction.Chemicals {
			did = append(did, a.addChemical(e, id)...)
		}
		did = append(did, a.seekBand(e, exp.Reaction.MinTemp, exp.Reaction.MaxTemp)...)
		if want, err := exp.Reaction.MinStirSpeed(); err == nil {
			did = append(did, a.stirAtLeast(e, want)...)
		}
		return did

	case experiment.CondCrystal:
		if spec := exp.Crystal; spec != nil {
			return a.seekBand(e, lab.MinTargetTemp, spec.MaxTemp)
		}
	}
	return nil
}

func (a *Autopilot) addChemical(e *lab.Engine, id string) []string {
	if e.State().Has(id) {
		return nil
	}
	if err := e.AddChemical(id); err != nil {
		return nil
	}
	return []string{fmt.Sprintf("add %s", id)}
}

func (a *Autopilot) stirAtLeast(e *lab.Engine, want experiment.StirSpeed) []string {
	if e.State().Stirring >= want {
		return nil
	}
	if err := e.SetStirring(want); err != nil {
		return nil
	}
	return []string{fmt.Sprintf("stir %s", want)}
}

// seekBand steers temperature into [low, high]: heat toward the middle of the
// band from below, cool passively from above, and reach for the ice bath when
// the band sits below ambient.
func (a *Autopilot) seekBand(e *lab.Engine, low, high float64) []string {
	st := e.State()
	var did []string

	switch {
	case st.Temperature < low:
		if st.IceBath {
			e.SetIceBath(false)
			did = append(did, "ice bath off")
		}
		mid := (low + high) / 2
		if !st.HeaterOn || st.TargetTemp != mid {
			if err := e.SetTargetTemp(mid); err == nil {
				e.SetHeater(true)
				did = append(did, fmt.Sprintf("heater on (%.0f °C)", mid))
			}
		}

	case st.Temperature > high:
		if high < st.Ambient {
			if !st.IceBath {
				e.SetIceBath(true)
				did = append(did, "ice bath on")
			}
		} else if st.HeaterOn {
			e.SetHeater(false)
			did = append(did, "heater off")
		}
	}
	return did
}
