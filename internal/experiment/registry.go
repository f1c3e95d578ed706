package experiment

import (
	"fmt"
	"sort"
)

type Registry struct {
	experiments map[string]func() *Experiment
}

func NewRegistry() *Registry {
	r := &Registry{
		experiments: make(map[string]func() *Experiment),
	}

	r.experiments["aspirin"] = NewAspirin
	r.experiments["titration"] = NewTitration
	r.experiments["acetanilide"] = NewAcetanilide

	return r
}

func (r *Registry) Get(id string) (*Experiment, error) {
	fn, ok := r.experiments[id]
	if !ok {
		return nil, fmt.Errorf("unknown experiment: %s", id)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.experiments))
	for id := range r.experiments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewAspirin is the acetylsalicylic acid synthesis: esterification of
// salicylic acid with acetic anhydride over a hot water bath, then
// recrystallization in an ice bath.
func NewAspirin() *Experiment {
	return &Experiment{
		ID:          "aspirin",
		Title:       "Aspirin Synthesis",
		Description: "Synthesize acetylsalicylic acid from salicylic acid and acetic anhydride, then recover the product by recrystallization.",
		Equipment:   []string{"125 mL Erlenmeyer flask", "water bath", "ice bath", "magnetic stirrer", "thermometer", "Büchner funnel"},
		Safety: []string{
			"Acetic anhydride is corrosive; work in the fume hood.",
			"Concentrated sulfuric acid causes severe burns.",
			"Wear goggles and gloves at all times.",
		},
		Chemicals: []Chemical{
			{ID: "salicylic_acid", Name: "salicylic acid", Formula: "C7H6O3", Hazard: "irritant"},
			{ID: "acetic_anhydride", Name: "acetic anhydride", Formula: "(CH3CO)2O", Hazard: "corrosive"},
			{ID: "sulfuric_acid", Name: "sulfuric acid (cat.)", Formula: "H2SO4", Hazard: "corrosive"},
			{ID: "distilled_water", Name: "distilled water", Formula: "H2O"},
		},
		Reaction: ReactionSpec{
			Chemicals: []string{"salicylic_acid", "acetic_anhydride", "sulfuric_acid"},
			MinTemp:   80,
			MaxTemp:   90,
			MinStir:   "low",
		},
		Crystal: &CrystalSpec{MaxTemp: 10, AfterReaction: 100},
		Steps: []Step{
			{
				Title:        "Combine reagents",
				Instructions: "Add salicylic acid and acetic anhydride to the flask, then a few drops of sulfuric acid as catalyst.",
				Safety:       "Add the acid catalyst last, dropwise.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "salicylic_acid"},
					{Kind: CondChemical, Chemical: "acetic_anhydride"},
					{Kind: CondChemical, Chemical: "sulfuric_acid"},
				},
			},
			{
				Title:        "Heat the water bath",
				Instructions: "Heat the flask in a water bath to 80-90 °C with gentle stirring and hold for the reaction to run.",
				Conditions: []Condition{
					{Kind: CondTemperature, MinTemp: 80, MaxTemp: 90},
					{Kind: CondStirring, MinStir: "low"},
					{Kind: CondTimer, Seconds: 15},
					{Kind: CondReaction, Percent: 100},
				},
			},
			{
				Title:        "Quench",
				Instructions: "Remove from heat and add distilled water to decompose excess anhydride.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "distilled_water"},
					{Kind: CondTemperature, MinTemp: 0, MaxTemp: 60},
				},
			},
			{
				Title:        "Crystallize",
				Instructions: "Chill the flask in an ice bath until crystals of aspirin form.",
				Conditions: []Condition{
					{Kind: CondTemperature, MinTemp: 0, MaxTemp: 10},
					{Kind: CondCrystal, Percent: 90},
				},
			},
			{
				Title:        "Collect the product",
				Instructions: "Filter the crystals on the Büchner funnel and let them dry.",
				Conditions: []Condition{
					{Kind: CondCrystal, Percent: 100},
					{Kind: CondTimer, Seconds: 10},
				},
			},
		},
	}
}

// NewTitration is a simple strong acid / strong base titration followed to a
// phenolphthalein endpoint. The reaction progress models the color change.
func NewTitration() *Experiment {
	return &Experiment{
		ID:          "titration",
		Title:       "Acid-Base Titration",
		Description: "Titrate hydrochloric acid with sodium hydroxide to a phenolphthalein endpoint.",
		Equipment:   []string{"burette", "250 mL conical flask", "magnetic stirrer", "white tile"},
		Safety: []string{
			"Sodium hydroxide solution is caustic.",
			"Rinse spills with plenty of water.",
		},
		Chemicals: []Chemical{
			{ID: "hcl_solution", Name: "HCl solution (0.1 M)", Formula: "HCl", Hazard: "irritant"},
			{ID: "phenolphthalein", Name: "phenolphthalein indicator"},
			{ID: "naoh_titrant", Name: "NaOH titrant (0.1 M)", Formula: "NaOH", Hazard: "caustic"},
		},
		Reaction: ReactionSpec{
			Chemicals: []string{"hcl_solution", "phenolphthalein", "naoh_titrant"},
			MinTemp:   15,
			MaxTemp:   35,
			MinStir:   "low",
		},
		Steps: []Step{
			{
				Title:        "Prepare the analyte",
				Instructions: "Pipette the HCl solution into the flask and add two drops of phenolphthalein.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "hcl_solution"},
					{Kind: CondChemical, Chemical: "phenolphthalein"},
				},
			},
			{
				Title:        "Titrate",
				Instructions: "Run NaOH from the burette while swirling until a faint pink color persists.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "naoh_titrant"},
					{Kind: CondStirring, MinStir: "low"},
					{Kind: CondReaction, Percent: 100},
				},
			},
			{
				Title:        "Confirm the endpoint",
				Instructions: "Keep swirling; the endpoint holds if the pink persists for thirty seconds.",
				Conditions: []Condition{
					{Kind: CondStirring, MinStir: "low"},
					{Kind: CondTimer, Seconds: 30},
				},
			},
		},
	}
}

// NewAcetanilide is the acetylation of aniline with acetic anhydride and
// recrystallization from hot water.
func NewAcetanilide() *Experiment {
	return &Experiment{
		ID:          "acetanilide",
		Title:       "Acetanilide Synthesis",
		Description: "Acetylate aniline with acetic anhydride and recrystallize the crude acetanilide from water.",
		Equipment:   []string{"round-bottom flask", "reflux condenser", "heating mantle", "ice bath", "Büchner funnel"},
		Safety: []string{
			"Aniline is toxic by skin absorption; wear nitrile gloves.",
			"Acetic anhydride is corrosive; work in the fume hood.",
		},
		Chemicals: []Chemical{
			{ID: "aniline", Name: "aniline", Formula: "C6H5NH2", Hazard: "toxic"},
			{ID: "acetic_anhydride", Name: "acetic anhydride", Formula: "(CH3CO)2O", Hazard: "corrosive"},
			{ID: "zinc_dust", Name: "zinc dust (trace)", Formula: "Zn"},
			{ID: "distilled_water", Name: "distilled water", Formula: "H2O"},
		},
		Reaction: ReactionSpec{
			Chemicals: []string{"aniline", "acetic_anhydride"},
			MinTemp:   95,
			MaxTemp:   110,
			MinStir:   "medium",
		},
		Crystal: &CrystalSpec{MaxTemp: 15, AfterReaction: 100},
		Steps: []Step{
			{
				Title:        "Charge the flask",
				Instructions: "Add aniline, a pinch of zinc dust, and acetic anhydride to the flask.",
				Safety:       "Measure aniline in the fume hood.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "aniline"},
					{Kind: CondChemical, Chemical: "zinc_dust"},
					{Kind: CondChemical, Chemical: "acetic_anhydride"},
				},
			},
			{
				Title:        "Reflux",
				Instructions: "Heat to a gentle reflux around 100 °C with steady stirring until the acetylation completes.",
				Conditions: []Condition{
					{Kind: CondTemperature, MinTemp: 95, MaxTemp: 110},
					{Kind: CondStirring, MinStir: "medium"},
					{Kind: CondTimer, Seconds: 20},
					{Kind: CondReaction, Percent: 100},
				},
			},
			{
				Title:        "Dilute",
				Instructions: "Pour the hot mixture into distilled water and let it cool below 60 °C.",
				Conditions: []Condition{
					{Kind: CondChemical, Chemical: "distilled_water"},
					{Kind: CondTemperature, MinTemp: 0, MaxTemp: 60},
				},
			},
			{
				Title:        "Recrystallize",
				Instructions: "Chill in an ice bath until acetanilide plates crystallize out.",
				Conditions: []Condition{
					{Kind: CondTemperature, MinTemp: 0, MaxTemp: 15},
					{Kind: CondCrystal, Percent: 95},
				},
			},
			{
				Title:        "Filter and dry",
				Instructions: "Collect the plates by suction filtration and press them dry.",
				Conditions: []Condition{
					{Kind: CondCrystal, Percent: 100},
					{Kind: CondTimer, Seconds: 10},
				},
			},
		},
	}
}
