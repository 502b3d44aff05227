package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/replay"
)

const (
	replaySheetName = "Replay"
	shapesSheetName = "Shapes"
)

// ExportWorkbook writes the replay step log and per-shape statistics to an
// Excel workbook with two sheets.
func ExportWorkbook(path string, p model.PackingPlan, snapshots []replay.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", replaySheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(shapesSheetName); err != nil {
		return fmt.Errorf("add shapes sheet: %w", err)
	}

	if err := writeReplaySheet(f, snapshots); err != nil {
		return err
	}
	if err := writeShapesSheet(f, p); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeReplaySheet(f *excelize.File, snapshots []replay.Snapshot) error {
	headers := []string{"Step", "Bin", "Item", "Items In Bin", "Area In Bin", "Value In Bin", "Progress"}
	if err := writeRow(f, replaySheetName, 1, toAnySlice(headers)); err != nil {
		return err
	}

	for i, snap := range snapshots {
		row := []any{
			snap.Step,
			snap.BinID,
			snap.ItemID,
			snap.ItemsIn,
			snap.AreaIn,
			snap.ValueIn,
			snap.Progress,
		}
		if err := writeRow(f, replaySheetName, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeShapesSheet(f *excelize.File, p model.PackingPlan) error {
	headers := []string{"Shape", "Count", "Total Value", "Actual Area", "Bounding Area", "Efficiency %"}
	if err := writeRow(f, shapesSheetName, 1, toAnySlice(headers)); err != nil {
		return err
	}

	for i, st := range model.AnalyzeShapes(p) {
		row := []any{
			string(st.Shape),
			st.Count,
			st.TotalValue,
			st.ActualArea,
			st.BoundingArea,
			st.Efficiency(),
		}
		if err := writeRow(f, shapesSheetName, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name for col %d row %d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
