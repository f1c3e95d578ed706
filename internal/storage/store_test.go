package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/chemlab/internal/session"
)

func sampleResult() *session.Result {
	return &session.Result{
		ExperimentID: "aspirin",
		Times:        []float64{0, 0.1, 0.2},
		Temps:        []float64{22, 22.5, 23.1},
		Targets:      []float64{22, 85, 85},
		Reaction:     []float64{0, 0, 1.2},
		Crystal:      []float64{0, 0, 0},
		Stirring:     []int{0, 1, 1},
		StepIndex:    []int{0, 0, 1},
		Events: []session.EventRecord{
			{Time: 0, Action: "add salicylic_acid"},
			{Time: 0.1, Action: "heater on (85 °C)"},
		},
		StepsDone: 1,
		Completed: false,
		Duration:  0.2,
		Gauges:    map[string]float64{"peak_temp": 23.1},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save(0.1, sampleResult())
	require.NoError(t, err)
	assert.Contains(t, runID, "aspirin_")

	meta, err := store.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "aspirin", meta.Experiment)
	assert.Equal(t, 0.1, meta.Tick)
	assert.Equal(t, 1, meta.StepsDone)
	assert.False(t, meta.Completed)
	assert.Equal(t, 23.1, meta.Gauges["peak_temp"])
	assert.Len(t, meta.Events, 2)
}

func TestLoadReadings(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save(0.1, sampleResult())
	require.NoError(t, err)

	readings, err := store.LoadReadings(runID)
	require.NoError(t, err)
	require.Len(t, readings.Times, 3)
	assert.Equal(t, 22.5, readings.Temps[1])
	assert.Equal(t, 85.0, readings.Targets[1])
	assert.Equal(t, 1.2, readings.Reaction[2])
	assert.Equal(t, []int{0, 1, 1}, readings.Stirring)
	assert.Equal(t, []int{0, 0, 1}, readings.Steps)
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	first, err := store.Save(0.1, sampleResult())
	require.NoError(t, err)

	other := sampleResult()
	other.ExperimentID = "titration"
	second, err := store.Save(0.1, other)
	require.NoError(t, err)

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}

func TestListEmptyBase(t *testing.T) {
	store := New(t.TempDir() + "/never-created")
	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadMissingRun(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	_, err := store.Load("aspirin_nope")
	assert.Error(t, err)
}
