package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

const samplePlanJSON = `[
  {
    "binId": 1,
    "items": [
      {"id": "A_1", "shape": "Rectangle", "width": 10, "height": 3, "x": 0, "y": 0, "rotation": 0, "price": 25},
      {"id": "C_1", "shape": "Circle", "width": 4, "height": 4, "x": 10, "y": 0, "rotation": 0, "price": 12.5}
    ]
  },
  {
    "binId": 3,
    "items": [
      {"id": "T_1", "shape": "Triangle", "width": 6, "height": 4, "x": 0, "y": 0, "rotation": 90, "price": 8}
    ]
  }
]`

func TestParseAppliesStandardBinDimensions(t *testing.T) {
	p, err := Parse([]byte(samplePlanJSON))
	require.NoError(t, err)
	require.Len(t, p.Bins, 2)

	assert.Equal(t, 30.0, p.Bins[0].Width)
	assert.Equal(t, 20.0, p.Bins[0].Height)
	assert.Equal(t, 25.0, p.Bins[1].Width)
	assert.Equal(t, 18.0, p.Bins[1].Height)

	assert.Equal(t, 3, p.TotalItems())
	assert.Equal(t, 45.5, p.TotalValue())
}

func TestParseKeepsExplicitDimensions(t *testing.T) {
	data := `[{"binId": 1, "width": 12, "height": 7, "items": [
		{"id": "a", "shape": "Rectangle", "width": 2, "height": 2, "x": 0, "y": 0, "rotation": 0, "price": 1}
	]}]`
	p, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Bins[0].Width)
	assert.Equal(t, 7.0, p.Bins[0].Height)
}

func TestParseFallsBackForNonStandardBinID(t *testing.T) {
	data := `[{"binId": 9, "items": [
		{"id": "a", "shape": "Rectangle", "width": 2, "height": 2, "x": 0, "y": 0, "rotation": 0, "price": 1}
	]}]`
	p, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, defaultBinWidth, p.Bins[0].Width)
	assert.Equal(t, defaultBinHeight, p.Bins[0].Height)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse plan")
}

func TestParseRejectsInvalidPlan(t *testing.T) {
	data := `[{"binId": 1, "items": [
		{"id": "a", "shape": "Hexagon", "width": 2, "height": 2, "x": 0, "y": 0, "rotation": 0, "price": 1}
	]}]`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate plan")
	assert.Contains(t, err.Error(), "unknown shape")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	p, err := Parse([]byte(samplePlanJSON))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "plan.json")
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "plan.json")
	p := model.PackingPlan{Bins: []model.Bin{{
		BinID: 1, Width: 10, Height: 10,
		Items: []model.Item{{ID: "x", Shape: model.ShapeRectangle, Width: 1, Height: 1, Price: 1}},
	}}}
	require.NoError(t, Save(path, p))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
