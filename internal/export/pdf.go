// Package export writes packing results to various file formats: a visual
// PDF report, QR-coded pick labels, a replay statistics workbook, and a DXF
// layout for CAD handoff.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// shapeColor represents an RGB fill color for a placed item.
type shapeColor struct {
	R, G, B int
}

// shapeColors mirrors the palette of the original plan visualizations.
var shapeColors = map[model.Shape]shapeColor{
	model.ShapeRectangle: {R: 255, G: 107, B: 107}, // red
	model.ShapeCircle:    {R: 78, G: 205, B: 196},  // teal
	model.ShapeTriangle:  {R: 150, G: 206, B: 180}, // green
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF report of the packing plan. Each bin is rendered
// on its own page with its placed shapes, followed by a summary page with
// per-shape statistics.
func ExportPDF(path string, p model.PackingPlan) error {
	if len(p.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, bin := range p.Bins {
		pdf.AddPage()
		if err := renderBinPage(pdf, bin, i+1); err != nil {
			return err
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, p)

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single bin and its items on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, bin model.Bin, pageNum int) error {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%g x %g)", bin.BinID, bin.Width, bin.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	var usedArea float64
	for _, it := range bin.Items {
		usedArea += it.ActualArea()
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used area: %.1f / %.0f | Value: $%.2f",
		len(bin.Items), usedArea, bin.Area(), bin.TotalValue())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / bin.Width
	scaleY := drawHeight / bin.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := bin.Width * scale
	canvasH := bin.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Bin outline
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Items. The bin's coordinate space has its origin at the lower-left,
	// PDF pages at the top-left, so Y is flipped when projecting.
	for _, it := range bin.Items {
		col, ok := shapeColors[it.Shape]
		if !ok {
			col = shapeColor{R: 204, G: 204, B: 204}
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)

		switch it.Shape {
		case model.ShapeCircle:
			radius := math.Min(it.Width, it.Height) / 2.0 * scale
			cx := offsetX + (it.X+it.Width/2.0)*scale
			cy := offsetY + (bin.Height-(it.Y+it.Height/2.0))*scale
			pdf.Circle(cx, cy, radius, "FD")

		case model.ShapeTriangle:
			corners, err := model.CornerPoints(it.Shape, it.X, it.Y, it.Width, it.Height, it.Rotation)
			if err != nil {
				return fmt.Errorf("item %q: %w", it.ID, err)
			}
			points := make([]fpdf.PointType, 0, len(corners))
			for _, c := range corners {
				points = append(points, fpdf.PointType{
					X: offsetX + c.X*scale,
					Y: offsetY + (bin.Height-c.Y)*scale,
				})
			}
			pdf.Polygon(points, "FD")

		default:
			px := offsetX + it.X*scale
			py := offsetY + (bin.Height-(it.Y+it.Height))*scale
			pdf.Rect(px, py, it.Width*scale, it.Height*scale, "FD")
		}

		drawItemLabel(pdf, bin, it, scale, offsetX, offsetY)
	}

	return nil
}

// drawItemLabel writes the item id and price at the center of its bounding
// box, when the box is large enough to hold text.
func drawItemLabel(pdf *fpdf.Fpdf, bin model.Bin, it model.Item, scale, offsetX, offsetY float64) {
	w := it.Width * scale
	h := it.Height * scale
	if w < 15 || h < 8 {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(w, h))
	pdf.SetTextColor(0, 0, 0)

	label := it.ID
	price := fmt.Sprintf("$%.1f", it.Price)
	cx := offsetX + (it.X+it.Width/2.0)*scale
	cy := offsetY + (bin.Height-(it.Y+it.Height/2.0))*scale

	labelW := pdf.GetStringWidth(label)
	if labelW < w-2 {
		pdf.SetXY(cx-labelW/2, cy-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	priceW := pdf.GetStringWidth(price)
	if h > 14 && priceW < w-2 {
		pdf.SetXY(cx-priceW/2, cy)
		pdf.CellFormat(priceW, 4, price, "", 0, "C", false, 0, "")
	}
}

// renderSummaryPage draws the final page with overall and per-shape figures.
func renderSummaryPage(pdf *fpdf.Fpdf, p model.PackingPlan) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Bins", fmt.Sprintf("%d", len(p.Bins))},
		{"Total Items", fmt.Sprintf("%d", p.TotalItems())},
		{"Total Value", fmt.Sprintf("$%.2f", p.TotalValue())},
		{"Total Occupied Area", fmt.Sprintf("%.1f", p.TotalActualArea())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Shape Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 25, 35, 45, 50, 35}
	headers := []string{"Shape", "Count", "Value", "Actual Area", "Bounding Area", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, st := range model.AnalyzeShapes(p) {
		xPos = marginLeft
		rowData := []string{
			string(st.Shape),
			fmt.Sprintf("%d", st.Count),
			fmt.Sprintf("$%.2f", st.TotalValue),
			fmt.Sprintf("%.1f", st.ActualArea),
			fmt.Sprintf("%.1f", st.BoundingArea),
			fmt.Sprintf("%.0f%%", st.Efficiency()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by packbot - Packing Plan Executor", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a label box.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
