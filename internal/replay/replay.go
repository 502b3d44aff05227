// Package replay reconstructs a packing run deterministically, without any
// agent round-trip, by driving the execution state machine in plan order and
// emitting a statistics snapshot after every placement.
package replay

import (
	"fmt"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/executor"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// Snapshot records the cumulative occupancy after one placement step.
type Snapshot struct {
	Step      int     `json:"step"` // 1-based placement index
	BinID     int     `json:"bin_id"`
	ItemID    string  `json:"item_id"`
	ItemsIn   int     `json:"items_in_bin"`
	AreaIn    float64 `json:"area_in_bin"`
	ValueIn   float64 `json:"value_in_bin"`
	Progress  float64 `json:"progress"`
	HeldPrice float64 `json:"item_price"`
}

// Run replays the whole plan through a fresh execution state, invoking the
// pick_up -> move_to_bin -> place_item sequence for each item in plan order.
// The returned snapshots contain one entry per placed item. A plan that was
// validated at ingestion cannot fail here; an error therefore indicates a
// corrupted plan and aborts the replay.
func Run(plan model.PackingPlan) ([]Snapshot, *executor.State, error) {
	state := executor.NewState(plan)
	snapshots := make([]Snapshot, 0, plan.TotalItems())

	step := 0
	for _, bin := range plan.Bins {
		for _, it := range bin.Items {
			if _, err := state.PickUp(it.ID); err != nil {
				return snapshots, state, fmt.Errorf("replay step %d: %w", step+1, err)
			}
			if _, err := state.MoveToBin(bin.BinID); err != nil {
				return snapshots, state, fmt.Errorf("replay step %d: %w", step+1, err)
			}
			if _, err := state.PlaceItem(it); err != nil {
				return snapshots, state, fmt.Errorf("replay step %d: %w", step+1, err)
			}

			step++
			stats := state.BinStats(bin.BinID)
			snapshots = append(snapshots, Snapshot{
				Step:      step,
				BinID:     bin.BinID,
				ItemID:    it.ID,
				ItemsIn:   stats.Items,
				AreaIn:    stats.UsedArea,
				ValueIn:   stats.Value,
				Progress:  state.Progress(),
				HeldPrice: it.Price,
			})
		}
	}

	return snapshots, state, nil
}
