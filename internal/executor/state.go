// Package executor holds the mutable execution state of one packing run and
// the three primitive actions that drive it: pick_up, move_to_bin and
// place_item. Each action validates its preconditions, mutates the state and
// returns a human-readable confirmation string, which is the only result the
// calling agent can observe.
package executor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// Action names as exposed on the tool surface.
const (
	ActionPickUp    = "pick_up"
	ActionMoveToBin = "move_to_bin"
	ActionPlaceItem = "place_item"
)

// BinStats holds the derived occupancy figures for one bin.
type BinStats struct {
	BinID    int     `json:"bin_id"`
	Items    int     `json:"items"`
	UsedArea float64 `json:"used_area"`
	Value    float64 `json:"value"`
}

// State tracks what has been picked up, where the actor currently is, and
// what has been placed into each bin so far. It is the single shared mutable
// resource of a run; only the action methods mutate it, one at a time.
type State struct {
	runID      string
	plan       model.PackingPlan
	held       string
	currentBin int // 0 means not positioned at any bin yet
	placed     map[int][]model.Item
	placedBin  map[string]int // item id -> bin it was placed in
}

// NewState creates the execution state for one run of the given plan.
func NewState(plan model.PackingPlan) *State {
	return &State{
		runID:     uuid.New().String()[:8],
		plan:      plan,
		placed:    make(map[int][]model.Item, len(plan.Bins)),
		placedBin: make(map[string]int, plan.TotalItems()),
	}
}

// RunID returns the identifier of this execution run.
func (s *State) RunID() string {
	return s.runID
}

// Plan returns the plan this run executes.
func (s *State) Plan() model.PackingPlan {
	return s.plan
}

// PickUp takes the named item in hand. The item must exist in the plan, must
// not already be placed, and nothing else may currently be held.
func (s *State) PickUp(itemID string) (string, error) {
	if _, _, ok := s.plan.FindItem(itemID); !ok {
		return "", &InvalidActionError{Action: ActionPickUp, Reason: fmt.Sprintf("item %q is not part of the plan", itemID)}
	}
	if binID, ok := s.placedBin[itemID]; ok {
		return "", &SequenceError{Action: ActionPickUp, Reason: fmt.Sprintf("item %q was already placed in bin #%d", itemID, binID)}
	}
	if s.held != "" {
		return "", &InvalidActionError{Action: ActionPickUp, Reason: fmt.Sprintf("already holding item %q; place it before picking up %q", s.held, itemID)}
	}
	s.held = itemID
	return fmt.Sprintf("Successfully holding item '%s'.", itemID), nil
}

// MoveToBin positions the actor at the named bin. Moving is legal in any
// state, held item or not; an unknown bin is rejected.
func (s *State) MoveToBin(binID int) (string, error) {
	if _, ok := s.plan.FindBin(binID); !ok {
		return "", &InvalidActionError{Action: ActionMoveToBin, Reason: fmt.Sprintf("bin #%d is not part of the plan", binID)}
	}
	s.currentBin = binID
	return fmt.Sprintf("Successfully arrived at bin #%d.", binID), nil
}

// PlaceItem places the currently held item into the current bin with the
// supplied geometry. It is only valid when the named item is held and a bin
// has been visited; on success the held item is cleared and the bin's
// occupancy figures are recomputed.
func (s *State) PlaceItem(it model.Item) (string, error) {
	if it.Width <= 0 || it.Height <= 0 {
		return "", &InvalidActionError{Action: ActionPlaceItem, Reason: fmt.Sprintf("dimensions %.1fx%.1f must be positive", it.Width, it.Height)}
	}
	if !it.Shape.Known() {
		return "", &InvalidActionError{Action: ActionPlaceItem, Reason: fmt.Sprintf("unknown shape %q", it.Shape)}
	}
	if !it.Rotation.Valid() {
		return "", &InvalidActionError{Action: ActionPlaceItem, Reason: fmt.Sprintf("rotation %d must be one of 0, 90, 180, 270", it.Rotation)}
	}
	if s.held == "" {
		return "", &SequenceError{Action: ActionPlaceItem, Reason: fmt.Sprintf("no item is held; pick up %q first", it.ID)}
	}
	if s.held != it.ID {
		return "", &SequenceError{Action: ActionPlaceItem, Reason: fmt.Sprintf("holding item %q, not %q", s.held, it.ID)}
	}
	if s.currentBin == 0 {
		return "", &SequenceError{Action: ActionPlaceItem, Reason: "not positioned at any bin; move to the destination bin first"}
	}

	s.placed[s.currentBin] = append(s.placed[s.currentBin], it)
	s.placedBin[it.ID] = s.currentBin
	s.held = ""
	return fmt.Sprintf("Item '%s' has been placed successfully in bin #%d at (x=%g, y=%g).", it.ID, s.currentBin, it.X, it.Y), nil
}

// HeldItem returns the id of the item currently in hand, if any.
func (s *State) HeldItem() (string, bool) {
	return s.held, s.held != ""
}

// CurrentBin returns the bin the actor is positioned at, if any.
func (s *State) CurrentBin() (int, bool) {
	return s.currentBin, s.currentBin != 0
}

// PlacedIn returns a copy of the items placed so far in the given bin, in
// placement order.
func (s *State) PlacedIn(binID int) []model.Item {
	items := s.placed[binID]
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}

// BinStats returns the derived occupancy figures for one bin: item count,
// shape-aware used area, and packed value.
func (s *State) BinStats(binID int) BinStats {
	stats := BinStats{BinID: binID}
	for _, it := range s.placed[binID] {
		stats.Items++
		stats.UsedArea += it.ActualArea()
		stats.Value += it.Price
	}
	return stats
}

// PlacedCount returns the number of items placed so far across all bins.
func (s *State) PlacedCount() int {
	return len(s.placedBin)
}

// PackedValue returns the summed price of all placed items.
func (s *State) PackedValue() float64 {
	var total float64
	for _, items := range s.placed {
		for _, it := range items {
			total += it.Price
		}
	}
	return total
}

// UnpackedValue returns the plan value not yet placed.
func (s *State) UnpackedValue() float64 {
	return s.plan.TotalValue() - s.PackedValue()
}

// Progress returns the fraction of plan items placed so far, in [0, 1].
func (s *State) Progress() float64 {
	total := s.plan.TotalItems()
	if total == 0 {
		return 1.0
	}
	return float64(s.PlacedCount()) / float64(total)
}
