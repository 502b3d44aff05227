package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/executor"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// systemPrompt is the fixed instruction describing the mandatory per-item
// action sequence. The model must complete one item before starting the next.
const systemPrompt = "You are an inventory management robot assistant. Your task is to execute a packing plan " +
	"by calling the available tools in the correct logical sequence. " +
	"For each item in the plan, you must follow this exact sequence: " +
	"1. Call `pick_up` with the item's ID. " +
	"2. Call `move_to_bin` with the item's destination bin ID. " +
	"3. Call `place_item` with the item's ID, destination coordinates, dimensions, shape, price and rotation. " +
	"Do not perform actions for multiple items at once. Complete the full sequence for one item before starting the next. " +
	"If a tool reports an error, read it carefully and correct your next call. " +
	"When the entire plan is complete, respond with a single sentence: 'The packing plan has been fully executed.'"

// FlattenPlan renders the plan as imperative natural language: one paragraph
// per bin, one line per item, in plan order.
func FlattenPlan(plan model.PackingPlan) string {
	var b strings.Builder
	b.WriteString("Execute the following packing plan step-by-step:\n")
	for _, bin := range plan.Bins {
		fmt.Fprintf(&b, "\nFor Bin %d (%gx%g):", bin.BinID, bin.Width, bin.Height)
		for _, it := range bin.Items {
			fmt.Fprintf(&b, "\n- Place item %s (%s %gx%g, rotation %d, price %.2f) at position (x=%g, y=%g).",
				it.ID, it.Shape, it.Width, it.Height, it.Rotation, it.Price, it.X, it.Y)
		}
	}
	return b.String()
}

// ToolDefinitions returns the fixed three-operation tool schema exposed to
// the model. The model is not permitted to invent operations beyond these.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        executor.ActionPickUp,
			Description: "Picks up a specified item from the general staging area.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_id": map[string]any{"type": "string", "description": "The unique ID of the item to pick up, e.g., 'A_1'."},
				},
				"required": []string{"item_id"},
			},
		},
		{
			Name:        executor.ActionMoveToBin,
			Description: "Physically moves the robot to a specific bin location.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"bin_id": map[string]any{"type": "integer", "description": "The destination bin number."},
				},
				"required": []string{"bin_id"},
			},
		},
		{
			Name:        executor.ActionPlaceItem,
			Description: "Places the currently held item into the current bin at specific coordinates.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_id":  map[string]any{"type": "string", "description": "The ID of the item being placed."},
					"x":        map[string]any{"type": "number", "description": "The x-coordinate for placement."},
					"y":        map[string]any{"type": "number", "description": "The y-coordinate for placement."},
					"width":    map[string]any{"type": "number", "description": "Bounding-box width of the item."},
					"height":   map[string]any{"type": "number", "description": "Bounding-box height of the item."},
					"shape":    map[string]any{"type": "string", "description": "Item shape: Rectangle, Circle or Triangle."},
					"price":    map[string]any{"type": "number", "description": "Item value."},
					"rotation": map[string]any{"type": "integer", "description": "Rotation in degrees: 0, 90, 180 or 270."},
				},
				"required": []string{"item_id", "x", "y", "width", "height", "shape", "price", "rotation"},
			},
		},
	}
}

type pickUpArgs struct {
	ItemID string `json:"item_id"`
}

type moveToBinArgs struct {
	BinID int `json:"bin_id"`
}

type placeItemArgs struct {
	ItemID   string  `json:"item_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Shape    string  `json:"shape"`
	Price    float64 `json:"price"`
	Rotation int     `json:"rotation"`
}

// dispatch executes one tool call against the execution state and returns
// the text to feed back to the model. Sequence and invalid-action failures
// are reported as error results rather than aborting the run, so the model
// can observe them and self-correct.
func dispatch(state *executor.State, call ToolCall) (content string, isError bool) {
	switch call.Name {
	case executor.ActionPickUp:
		var args pickUpArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return fmt.Sprintf("Error: malformed pick_up arguments: %v", err), true
		}
		return confirmationOrError(state.PickUp(args.ItemID))

	case executor.ActionMoveToBin:
		var args moveToBinArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return fmt.Sprintf("Error: malformed move_to_bin arguments: %v", err), true
		}
		return confirmationOrError(state.MoveToBin(args.BinID))

	case executor.ActionPlaceItem:
		var args placeItemArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return fmt.Sprintf("Error: malformed place_item arguments: %v", err), true
		}
		return confirmationOrError(state.PlaceItem(model.Item{
			ID:       args.ItemID,
			Shape:    model.Shape(args.Shape),
			Width:    args.Width,
			Height:   args.Height,
			X:        args.X,
			Y:        args.Y,
			Rotation: model.Rotation(args.Rotation),
			Price:    args.Price,
		}))

	default:
		return fmt.Sprintf("Error: unknown tool %q; only pick_up, move_to_bin and place_item are available", call.Name), true
	}
}

func confirmationOrError(confirmation string, err error) (string, bool) {
	if err != nil {
		return "Error: " + err.Error(), true
	}
	return confirmation, false
}
