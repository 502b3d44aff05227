package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/replay"
)

func testPlan() model.PackingPlan {
	return model.PackingPlan{Bins: []model.Bin{
		{
			BinID: 1, Width: 30, Height: 20,
			Items: []model.Item{
				{ID: "A_1", Shape: model.ShapeRectangle, Width: 10, Height: 3, X: 0, Y: 0, Price: 25},
				{ID: "C_1", Shape: model.ShapeCircle, Width: 4, Height: 4, X: 10, Y: 0, Price: 12.5},
			},
		},
		{
			BinID: 2, Width: 25, Height: 20,
			Items: []model.Item{
				{ID: "T_1", Shape: model.ShapeTriangle, Width: 6, Height: 4, X: 0, Y: 0, Rotation: model.Rotation90, Price: 8},
			},
		},
	}}
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, testPlan()))
	requireNonEmptyFile(t, path)
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, testPlan()))
	requireNonEmptyFile(t, path)
}

func TestExportLabelsEmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	err := ExportLabels(path, model.PackingPlan{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no items")
}

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, ExportDXF(path, testPlan()))
	requireNonEmptyFile(t, path)
}

func TestCollectLabelInfosExecutionOrder(t *testing.T) {
	labels := CollectLabelInfos(testPlan())
	require.Len(t, labels, 3)

	assert.Equal(t, "A_1", labels[0].ItemID)
	assert.Equal(t, "C_1", labels[1].ItemID)
	assert.Equal(t, "T_1", labels[2].ItemID)

	assert.Equal(t, 1, labels[0].BinID)
	assert.Equal(t, 2, labels[2].BinID)
	assert.Equal(t, 90, labels[2].Rotation)
	assert.Equal(t, "Triangle", labels[2].Shape)
}

func TestExportWorkbookRoundTrip(t *testing.T) {
	p := testPlan()
	snapshots, _, err := replay.Run(p)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "replay.xlsx")
	require.NoError(t, ExportWorkbook(path, p, snapshots))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(replaySheetName)
	require.NoError(t, err)
	require.Len(t, rows, len(snapshots)+1, "header plus one row per step")
	assert.Equal(t, []string{"Step", "Bin", "Item", "Items In Bin", "Area In Bin", "Value In Bin", "Progress"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "A_1", rows[1][2])
	assert.Equal(t, "T_1", rows[len(rows)-1][2])

	shapeRows, err := f.GetRows(shapesSheetName)
	require.NoError(t, err)
	require.Len(t, shapeRows, 4, "header plus one row per shape")
	assert.Equal(t, "Circle", shapeRows[1][0])
	assert.Equal(t, "Rectangle", shapeRows[2][0])
	assert.Equal(t, "Triangle", shapeRows[3][0])
}
