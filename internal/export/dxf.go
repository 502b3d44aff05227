package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// binGap is the spacing between bin outlines in the DXF layout.
const binGap = 5.0

// ExportDXF writes the plan's bin layouts to a DXF file for CAD handoff.
// Bins are laid out side by side along the X axis; items are drawn as their
// true outlines: rectangles and triangles as closed polylines of their
// corner points, circles as CIRCLE entities.
func ExportDXF(path string, p model.PackingPlan) error {
	if len(p.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	drawing := dxf.NewDrawing()

	if _, err := drawing.AddLayer("BINS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add bins layer: %w", err)
	}
	if _, err := drawing.AddLayer("ITEMS", color.Cyan, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("add items layer: %w", err)
	}

	offsetX := 0.0
	for _, bin := range p.Bins {
		if err := drawBin(drawing, bin, offsetX); err != nil {
			return fmt.Errorf("bin %d: %w", bin.BinID, err)
		}
		offsetX += bin.Width + binGap
	}

	return drawing.SaveAs(path)
}

func drawBin(drawing *drawing.Drawing, bin model.Bin, offsetX float64) error {
	if err := drawing.ChangeLayer("BINS"); err != nil {
		return err
	}
	outline := []model.Point2D{
		{X: offsetX, Y: 0},
		{X: offsetX + bin.Width, Y: 0},
		{X: offsetX + bin.Width, Y: bin.Height},
		{X: offsetX, Y: bin.Height},
	}
	if err := drawClosedPolygon(drawing, outline); err != nil {
		return err
	}

	if err := drawing.ChangeLayer("ITEMS"); err != nil {
		return err
	}
	for _, it := range bin.Items {
		if it.Shape == model.ShapeCircle {
			radius := math.Min(it.Width, it.Height) / 2.0
			cx := offsetX + it.X + it.Width/2.0
			cy := it.Y + it.Height/2.0
			if _, err := drawing.Circle(cx, cy, 0.0, radius); err != nil {
				return fmt.Errorf("item %q: %w", it.ID, err)
			}
			continue
		}

		corners, err := model.CornerPoints(it.Shape, it.X, it.Y, it.Width, it.Height, it.Rotation)
		if err != nil {
			return fmt.Errorf("item %q: %w", it.ID, err)
		}
		shifted := make([]model.Point2D, len(corners))
		for i, c := range corners {
			shifted[i] = model.Point2D{X: c.X + offsetX, Y: c.Y}
		}
		if err := drawClosedPolygon(drawing, shifted); err != nil {
			return fmt.Errorf("item %q: %w", it.ID, err)
		}
	}
	return nil
}

// drawClosedPolygon draws LINE entities between consecutive points,
// closing the loop back to the first.
func drawClosedPolygon(drawing *drawing.Drawing, points []model.Point2D) error {
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		if _, err := drawing.Line(a.X, a.Y, 0.0, b.X, b.Y, 0.0); err != nil {
			return err
		}
	}
	return nil
}
