package executor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

func testPlan() model.PackingPlan {
	return model.PackingPlan{Bins: []model.Bin{
		{
			BinID: 1, Width: 10, Height: 10,
			Items: []model.Item{
				{ID: "X", Shape: model.ShapeRectangle, Width: 4, Height: 2, X: 0, Y: 0, Price: 5},
				{ID: "C", Shape: model.ShapeCircle, Width: 4, Height: 4, X: 4, Y: 0, Price: 3},
			},
		},
		{
			BinID: 2, Width: 8, Height: 8,
			Items: []model.Item{
				{ID: "T", Shape: model.ShapeTriangle, Width: 6, Height: 4, X: 0, Y: 0, Rotation: model.Rotation180, Price: 7},
			},
		},
	}}
}

func itemByID(t *testing.T, p model.PackingPlan, id string) model.Item {
	t.Helper()
	it, _, ok := p.FindItem(id)
	require.True(t, ok, "item %s must exist in the test plan", id)
	return it
}

func TestFullSequenceForOneItem(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	msg, err := s.PickUp("X")
	require.NoError(t, err)
	assert.Equal(t, "Successfully holding item 'X'.", msg)
	held, ok := s.HeldItem()
	assert.True(t, ok)
	assert.Equal(t, "X", held)

	msg, err = s.MoveToBin(1)
	require.NoError(t, err)
	assert.Equal(t, "Successfully arrived at bin #1.", msg)
	bin, ok := s.CurrentBin()
	assert.True(t, ok)
	assert.Equal(t, 1, bin)

	msg, err = s.PlaceItem(itemByID(t, p, "X"))
	require.NoError(t, err)
	assert.Contains(t, msg, "Item 'X' has been placed successfully")
	assert.Contains(t, msg, "bin #1")

	_, ok = s.HeldItem()
	assert.False(t, ok, "held item must be cleared after placement")

	stats := s.BinStats(1)
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, 8.0, stats.UsedArea)
	assert.Equal(t, 5.0, stats.Value)
	assert.Equal(t, 5.0, s.PackedValue())
	assert.Equal(t, 10.0, s.UnpackedValue())
}

func TestPlaceBeforePickUpIsSequenceError(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	_, err := s.MoveToBin(1)
	require.NoError(t, err)

	_, err = s.PlaceItem(itemByID(t, p, "X"))
	require.Error(t, err)
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, ActionPlaceItem, seqErr.Action)

	// Idempotent rejection: nothing was recorded.
	assert.Empty(t, s.PlacedIn(1))
	assert.Equal(t, 0, s.PlacedCount())
}

func TestPlaceWithoutBinIsSequenceError(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	_, err := s.PickUp("X")
	require.NoError(t, err)

	_, err = s.PlaceItem(itemByID(t, p, "X"))
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Contains(t, seqErr.Reason, "not positioned")
	assert.Empty(t, s.PlacedIn(1))
}

func TestPlaceMismatchedItemIsSequenceError(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	_, err := s.PickUp("X")
	require.NoError(t, err)
	_, err = s.MoveToBin(1)
	require.NoError(t, err)

	_, err = s.PlaceItem(itemByID(t, p, "C"))
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Contains(t, seqErr.Reason, `"X"`)

	// The held item survives the rejection.
	held, ok := s.HeldItem()
	assert.True(t, ok)
	assert.Equal(t, "X", held)
}

func TestDoublePickUpIsInvalidAction(t *testing.T) {
	s := NewState(testPlan())

	_, err := s.PickUp("X")
	require.NoError(t, err)

	_, err = s.PickUp("C")
	var invErr *InvalidActionError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, invErr.Reason, "already holding")

	// The first item is still the one in hand.
	held, _ := s.HeldItem()
	assert.Equal(t, "X", held)
}

func TestPickUpUnknownItemIsInvalidAction(t *testing.T) {
	s := NewState(testPlan())
	_, err := s.PickUp("ghost")
	var invErr *InvalidActionError
	require.ErrorAs(t, err, &invErr)
}

func TestPickUpPlacedItemIsSequenceError(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	_, err := s.PickUp("X")
	require.NoError(t, err)
	_, err = s.MoveToBin(1)
	require.NoError(t, err)
	_, err = s.PlaceItem(itemByID(t, p, "X"))
	require.NoError(t, err)

	_, err = s.PickUp("X")
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Contains(t, seqErr.Reason, "already placed")
}

func TestMoveToUnknownBinIsInvalidAction(t *testing.T) {
	s := NewState(testPlan())
	_, err := s.MoveToBin(42)
	var invErr *InvalidActionError
	require.ErrorAs(t, err, &invErr)
	_, ok := s.CurrentBin()
	assert.False(t, ok)
}

func TestMoveWithoutHeldItemIsLegal(t *testing.T) {
	// Moving while holding nothing is inert but allowed.
	s := NewState(testPlan())
	msg, err := s.MoveToBin(2)
	require.NoError(t, err)
	assert.Equal(t, "Successfully arrived at bin #2.", msg)
}

func TestPlaceItemValidatesArguments(t *testing.T) {
	p := testPlan()
	s := NewState(p)
	_, err := s.PickUp("X")
	require.NoError(t, err)
	_, err = s.MoveToBin(1)
	require.NoError(t, err)

	bad := itemByID(t, p, "X")
	bad.Rotation = 45
	_, err = s.PlaceItem(bad)
	var invErr *InvalidActionError
	require.ErrorAs(t, err, &invErr)

	bad = itemByID(t, p, "X")
	bad.Shape = "Blob"
	_, err = s.PlaceItem(bad)
	require.ErrorAs(t, err, &invErr)

	bad = itemByID(t, p, "X")
	bad.Width = 0
	_, err = s.PlaceItem(bad)
	require.ErrorAs(t, err, &invErr)

	// State must be untouched by rejected placements.
	assert.Empty(t, s.PlacedIn(1))
	held, _ := s.HeldItem()
	assert.Equal(t, "X", held)
}

func TestProgressAndAreaAcrossBins(t *testing.T) {
	p := testPlan()
	s := NewState(p)

	place := func(id string, binID int) {
		t.Helper()
		_, err := s.PickUp(id)
		require.NoError(t, err)
		_, err = s.MoveToBin(binID)
		require.NoError(t, err)
		_, err = s.PlaceItem(itemByID(t, p, id))
		require.NoError(t, err)
	}

	place("X", 1)
	assert.InDelta(t, 1.0/3.0, s.Progress(), 1e-9)

	place("C", 1)
	place("T", 2)
	assert.Equal(t, 1.0, s.Progress())

	bin1 := s.BinStats(1)
	assert.Equal(t, 2, bin1.Items)
	assert.InDelta(t, 8.0+math.Pi*4, bin1.UsedArea, 1e-9)

	bin2 := s.BinStats(2)
	assert.Equal(t, 1, bin2.Items)
	assert.Equal(t, 12.0, bin2.UsedArea)
	assert.Equal(t, 0.0, s.UnpackedValue())
}

func TestRecoverableClassification(t *testing.T) {
	assert.True(t, Recoverable(&SequenceError{Action: "place_item", Reason: "x"}))
	assert.True(t, Recoverable(&InvalidActionError{Action: "pick_up", Reason: "x"}))
	assert.False(t, Recoverable(assert.AnError))
}

func TestRunIDAssigned(t *testing.T) {
	a := NewState(testPlan())
	b := NewState(testPlan())
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}
