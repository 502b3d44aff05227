package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

func TestSingleItemScenario(t *testing.T) {
	// One 10x10 bin, one 4x2 rectangle at the origin, price 5.
	p := model.PackingPlan{Bins: []model.Bin{{
		BinID: 1, Width: 10, Height: 10,
		Items: []model.Item{{ID: "X", Shape: model.ShapeRectangle, Width: 4, Height: 2, X: 0, Y: 0, Price: 5}},
	}}}

	snapshots, state, err := Run(p)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	snap := snapshots[0]
	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, 1, snap.BinID)
	assert.Equal(t, "X", snap.ItemID)
	assert.Equal(t, 1, snap.ItemsIn)
	assert.Equal(t, 8.0, snap.AreaIn)
	assert.Equal(t, 5.0, snap.ValueIn)
	assert.Equal(t, 1.0, snap.Progress)

	assert.Equal(t, 1, state.PlacedCount())
	assert.Equal(t, 0.0, state.UnpackedValue())
}

func TestFullPassCoversEveryItem(t *testing.T) {
	p := model.PackingPlan{Bins: []model.Bin{
		{
			BinID: 1, Width: 30, Height: 20,
			Items: []model.Item{
				{ID: "A_1", Shape: model.ShapeRectangle, Width: 10, Height: 3, Price: 25},
				{ID: "A_2", Shape: model.ShapeRectangle, Width: 10, Height: 3, X: 0, Y: 3, Price: 25},
				{ID: "C_1", Shape: model.ShapeCircle, Width: 4, Height: 4, X: 10, Y: 0, Price: 12.5},
			},
		},
		{
			BinID: 2, Width: 25, Height: 20,
			Items: []model.Item{
				{ID: "T_1", Shape: model.ShapeTriangle, Width: 6, Height: 4, Rotation: model.Rotation270, Price: 8},
				{ID: "T_2", Shape: model.ShapeTriangle, Width: 6, Height: 4, X: 6, Y: 0, Rotation: model.Rotation90, Price: 8},
			},
		},
	}}

	snapshots, state, err := Run(p)
	require.NoError(t, err)
	require.Len(t, snapshots, p.TotalItems())

	// Final snapshot per bin carries that bin's cumulative count; summing
	// them covers every item exactly once.
	finalPerBin := make(map[int]int)
	for _, snap := range snapshots {
		finalPerBin[snap.BinID] = snap.ItemsIn
	}
	total := 0
	for _, n := range finalPerBin {
		total += n
	}
	assert.Equal(t, p.TotalItems(), total)

	last := snapshots[len(snapshots)-1]
	assert.Equal(t, 1.0, last.Progress)
	assert.Equal(t, p.TotalItems(), state.PlacedCount())

	// Steps are strictly sequential and progress never decreases.
	for i, snap := range snapshots {
		assert.Equal(t, i+1, snap.Step)
		if i > 0 {
			assert.GreaterOrEqual(t, snap.Progress, snapshots[i-1].Progress)
		}
	}
}

func TestEmptyPlan(t *testing.T) {
	snapshots, state, err := Run(model.PackingPlan{})
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	assert.Equal(t, 1.0, state.Progress())
}
