// Package model defines the packing plan domain: bins, placed items, shapes,
// rotations, and the geometry used for occupancy accounting.
package model

import "fmt"

// Shape identifies the geometric form of a placed item.
type Shape string

const (
	ShapeRectangle Shape = "Rectangle"
	ShapeCircle    Shape = "Circle"
	ShapeTriangle  Shape = "Triangle"
)

// Known reports whether the shape is one of the supported forms.
func (s Shape) Known() bool {
	switch s {
	case ShapeRectangle, ShapeCircle, ShapeTriangle:
		return true
	}
	return false
}

// Rotation is the orientation of an item in degrees. Only the four cardinal
// rotations are meaningful. For triangles the rotation selects which corner of
// the bounding box holds the right angle; for rectangles and circles it does
// not change the bounding box.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// Valid reports whether the rotation is one of 0, 90, 180 or 270 degrees.
func (r Rotation) Valid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

// Point2D represents a 2D coordinate within a bin.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Item represents one placeable unit of the plan. X and Y locate the
// bounding box's lower-left corner in the bin's coordinate space.
type Item struct {
	ID       string   `json:"id"`
	Shape    Shape    `json:"shape"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation Rotation `json:"rotation"`
	Price    float64  `json:"price"`
}

// BoundingArea returns the area of the item's bounding box.
func (it Item) BoundingArea() float64 {
	return it.Width * it.Height
}

// ActualArea returns the true occupied area of the item's shape.
func (it Item) ActualArea() float64 {
	return ActualArea(it.Shape, it.Width, it.Height)
}

// Bin is a fixed-size rectangular container.
type Bin struct {
	BinID  int     `json:"binId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Items  []Item  `json:"items"`
}

// Area returns the bin's total capacity area.
func (b Bin) Area() float64 {
	return b.Width * b.Height
}

// TotalValue returns the summed price of the bin's planned items.
func (b Bin) TotalValue() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.Price
	}
	return total
}

// PackingPlan is an ordered sequence of bins, each carrying an ordered
// sequence of items. The order defines the canonical execution sequence.
type PackingPlan struct {
	Bins []Bin
}

// TotalItems returns the number of items across all bins.
func (p PackingPlan) TotalItems() int {
	total := 0
	for _, b := range p.Bins {
		total += len(b.Items)
	}
	return total
}

// TotalValue returns the summed price of every item in the plan.
func (p PackingPlan) TotalValue() float64 {
	var total float64
	for _, b := range p.Bins {
		total += b.TotalValue()
	}
	return total
}

// TotalActualArea returns the summed shape-aware area of every item.
func (p PackingPlan) TotalActualArea() float64 {
	var total float64
	for _, b := range p.Bins {
		for _, it := range b.Items {
			total += it.ActualArea()
		}
	}
	return total
}

// FindBin returns the bin with the given id, or false if the plan has none.
func (p PackingPlan) FindBin(binID int) (Bin, bool) {
	for _, b := range p.Bins {
		if b.BinID == binID {
			return b, true
		}
	}
	return Bin{}, false
}

// FindItem returns the item with the given id and the id of the bin that
// holds it, or false if the plan has none.
func (p PackingPlan) FindItem(itemID string) (Item, int, bool) {
	for _, b := range p.Bins {
		for _, it := range b.Items {
			if it.ID == itemID {
				return it, b.BinID, true
			}
		}
	}
	return Item{}, 0, false
}

// Validate checks the plan at the ingestion boundary: bin ids, item ids,
// dimensions, shapes and rotations must all be well formed. Placement bounds
// are the upstream optimizer's responsibility and are not re-derived here.
func (p PackingPlan) Validate() error {
	seenBins := make(map[int]bool, len(p.Bins))
	seenItems := make(map[string]bool, p.TotalItems())

	for _, b := range p.Bins {
		if b.BinID < 1 {
			return fmt.Errorf("bin id %d: must be >= 1", b.BinID)
		}
		if seenBins[b.BinID] {
			return fmt.Errorf("bin id %d: duplicate", b.BinID)
		}
		seenBins[b.BinID] = true
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("bin %d: dimensions %.1fx%.1f must be positive", b.BinID, b.Width, b.Height)
		}
		for _, it := range b.Items {
			if it.ID == "" {
				return fmt.Errorf("bin %d: item with empty id", b.BinID)
			}
			if seenItems[it.ID] {
				return fmt.Errorf("item %q: duplicate id", it.ID)
			}
			seenItems[it.ID] = true
			if it.Width <= 0 || it.Height <= 0 {
				return fmt.Errorf("item %q: dimensions %.1fx%.1f must be positive", it.ID, it.Width, it.Height)
			}
			if !it.Shape.Known() {
				return fmt.Errorf("item %q: unknown shape %q", it.ID, it.Shape)
			}
			if !it.Rotation.Valid() {
				return fmt.Errorf("item %q: rotation %d must be one of 0, 90, 180, 270", it.ID, it.Rotation)
			}
			if it.Price < 0 {
				return fmt.Errorf("item %q: price %.2f must not be negative", it.ID, it.Price)
			}
		}
	}
	return nil
}
