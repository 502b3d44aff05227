// Package plan loads and saves packing plans in the optimizer's JSON
// interchange format: an array of bin objects, each with an ordered item
// list. Plans are validated at this boundary so the execution core can trust
// them.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// binDimensions is the dimension table for the optimizer's standard bins.
// The optimizer's plan files carry only bin ids; sizes are fixed upstream.
var binDimensions = map[int]struct{ Width, Height float64 }{
	1: {30, 20},
	2: {25, 20},
	3: {25, 18},
	4: {20, 20},
}

// defaultBinWidth/Height apply to bin ids outside the standard table.
const (
	defaultBinWidth  = 40.0
	defaultBinHeight = 25.0
)

// Load reads and validates a packing plan from a JSON file. Bins that do not
// carry explicit dimensions get the standard sizes for their id.
func Load(path string) (model.PackingPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PackingPlan{}, fmt.Errorf("load plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a packing plan from JSON bytes.
func Parse(data []byte) (model.PackingPlan, error) {
	var bins []model.Bin
	if err := json.Unmarshal(data, &bins); err != nil {
		return model.PackingPlan{}, fmt.Errorf("parse plan: %w", err)
	}

	for i := range bins {
		if bins[i].Width > 0 && bins[i].Height > 0 {
			continue
		}
		if dims, ok := binDimensions[bins[i].BinID]; ok {
			bins[i].Width = dims.Width
			bins[i].Height = dims.Height
		} else {
			bins[i].Width = defaultBinWidth
			bins[i].Height = defaultBinHeight
		}
	}

	p := model.PackingPlan{Bins: bins}
	if err := p.Validate(); err != nil {
		return model.PackingPlan{}, fmt.Errorf("validate plan: %w", err)
	}
	return p, nil
}

// Save writes the plan to a JSON file, creating parent directories if they
// do not exist.
func Save(path string, p model.PackingPlan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p.Bins, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
