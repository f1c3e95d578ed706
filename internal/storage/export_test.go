package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save(0.1, sampleResult())
	require.NoError(t, err)

	meta, err := store.Load(runID)
	require.NoError(t, err)
	readings, err := store.LoadReadings(runID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, readings))

	var out ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, runID, out.ID)
	assert.Equal(t, "aspirin", out.Experiment)
	assert.Equal(t, 3, out.Samples)
	assert.Equal(t, readings.Temps, out.Temps)
	assert.Equal(t, 23.1, out.Gauges["peak_temp"])
}

func TestExportJSONFile(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save(0.1, sampleResult())
	require.NoError(t, err)

	meta, err := store.Load(runID)
	require.NoError(t, err)
	readings, err := store.LoadReadings(runID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, ExportJSONFile(path, meta, readings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out ExportData
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, runID, out.ID)
	assert.Equal(t, 3, out.Samples)
	assert.Equal(t, readings.Times, out.Times)
}
