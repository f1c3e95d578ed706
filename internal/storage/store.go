package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"

	"github.com/avelar/chemlab/internal/session"
)

// Store keeps recorded runs under a base directory, one subdirectory per run
// with metadata.json and readings.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string                `json:"id"`
	Experiment string                `json:"experiment"`
	Timestamp  time.Time             `json:"timestamp"`
	Tick       float64               `json:"tick"`
	Duration   float64               `json:"duration"`
	StepsDone  int                   `json:"steps_done"`
	Completed  bool                  `json:"completed"`
	Gauges     map[string]float64    `json:"gauges,omitempty"`
	Events     []session.EventRecord `json:"events,omitempty"`
}

// Readings are the per-tick samples of a stored run.
type Readings struct {
	Times    []float64
	Temps    []float64
	Targets  []float64
	Reaction []float64
	Crystal  []float64
	Stirring []int
	Steps    []int
}

func (s *Store) Save(tick float64, result *session.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", result.ExperimentID, xid.New().String())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Experiment: result.ExperimentID,
		Timestamp:  time.Now(),
		Tick:       tick,
		Duration:   result.Duration,
		StepsDone:  result.StepsDone,
		Completed:  result.Completed,
		Gauges:     result.Gauges,
		Events:     result.Events,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "readings.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "temperature", "target", "reaction", "crystal", "stirring", "step"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 3, 64),
			strconv.FormatFloat(result.Temps[i], 'f', 3, 64),
			strconv.FormatFloat(result.Targets[i], 'f', 3, 64),
			strconv.FormatFloat(result.Reaction[i], 'f', 3, 64),
			strconv.FormatFloat(result.Crystal[i], 'f', 3, 64),
			strconv.Itoa(result.Stirring[i]),
			strconv.Itoa(result.StepIndex[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadReadings(runID string) (*Readings, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "readings.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	readings := &Readings{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 7 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		temp, _ := strconv.ParseFloat(rec[1], 64)
		target, _ := strconv.ParseFloat(rec[2], 64)
		reaction, _ := strconv.ParseFloat(rec[3], 64)
		crystal, _ := strconv.ParseFloat(rec[4], 64)
		stirring, _ := strconv.Atoi(rec[5])
		step, _ := strconv.Atoi(rec[6])

		readings.Times = append(readings.Times, t)
		readings.Temps = append(readings.Temps, temp)
		readings.Targets = append(readings.Targets, target)
		readings.Reaction = append(readings.Reaction, reaction)
		readings.Crystal = append(readings.Crystal, crystal)
		readings.Stirring = append(readings.Stirring, stirring)
		readings.Steps = append(readings.Steps, step)
	}

	return readings, nil
}
