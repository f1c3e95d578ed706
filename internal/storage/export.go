package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID         string             `json:"id"`
	Experiment string             `json:"experiment"`
	Tick       float64            `json:"tick"`
	Duration   float64            `json:"duration"`
	StepsDone  int                `json:"steps_done"`
	Completed  bool               `json:"completed"`
	Samples    int                `json:"samples"`
	Times      []float64          `json:"times"`
	Temps      []float64          `json:"temps"`
	Reaction   []float64          `json:"reaction"`
	Crystal    []float64          `json:"crystal"`
	Gauges     map[string]float64 `json:"gauges,omitempty"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, readings *Readings) error {
	data := ExportData{
		ID:         meta.ID,
		Experiment: meta.Experiment,
		Tick:       meta.Tick,
		Duration:   meta.Duration,
		StepsDone:  meta.StepsDone,
		Completed:  meta.Completed,
		Samples:    len(readings.Times),
		Times:      readings.Times,
		Temps:      readings.Temps,
		Reaction:   readings.Reaction,
		Crystal:    readings.Crystal,
		Gauges:     meta.Gauges,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONFile(path string, meta *RunMetadata, readings *Readings) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, readings)
}
