package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, buildTestResult()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "3f6c1a52-0d7e-4c55-9b1e-2a9f0c7d8e11", raw["run_id"])
	assert.Equal(t, 800.0*1200+800*600, raw["area"])
	assert.Len(t, raw["packages"], 2)
	assert.NotContains(t, raw, "dropped", "empty dropped list is omitted")
	assert.Contains(t, buf.String(), "\n  \"run_id\"", "output is indented")
}

func TestExportJSON_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	result := buildTestResult()

	require.NoError(t, ExportJSON(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.PackResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, result.RunID, got.RunID)
	assert.Equal(t, 3, got.BoxCount())
	assert.True(t, got.Packages[0].Boxes[1].Rotated)
}

func TestExportJSON_BadPath(t *testing.T) {
	err := ExportJSON(filepath.Join(t.TempDir(), "missing", "result.json"), buildTestResult())
	assert.Error(t, err)
}
