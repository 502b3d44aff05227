package model

import "sort"

// ShapeStats aggregates packing figures for all items of one shape.
type ShapeStats struct {
	Shape        Shape   `json:"shape"`
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
	ActualArea   float64 `json:"actual_area"`
	BoundingArea float64 `json:"bounding_area"`
}

// Efficiency returns the actual area as a percentage of the bounding-box
// area. Rectangles are always 100%; circles and triangles waste the corners
// of their bounding boxes.
func (s ShapeStats) Efficiency() float64 {
	if s.BoundingArea == 0 {
		return 100.0
	}
	return (s.ActualArea / s.BoundingArea) * 100.0
}

// AnalyzeShapes computes per-shape packing statistics over the whole plan,
// sorted by shape name for stable output.
func AnalyzeShapes(plan PackingPlan) []ShapeStats {
	byShape := make(map[Shape]*ShapeStats)
	for _, b := range plan.Bins {
		for _, it := range b.Items {
			st, ok := byShape[it.Shape]
			if !ok {
				st = &ShapeStats{Shape: it.Shape}
				byShape[it.Shape] = st
			}
			st.Count++
			st.TotalValue += it.Price
			st.ActualArea += it.ActualArea()
			st.BoundingArea += it.BoundingArea()
		}
	}

	stats := make([]ShapeStats, 0, len(byShape))
	for _, st := range byShape {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Shape < stats[j].Shape
	})
	return stats
}
