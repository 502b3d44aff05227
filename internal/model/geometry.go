package model

import (
	"fmt"
	"math"
)

// ActualArea returns the true occupied area for a shape inscribed in a
// width x height bounding box. Triangles are right triangles spanning the
// box, so their area is half the box regardless of rotation. Circles are
// inscribed, with diameter min(width, height). Any other shape occupies the
// full bounding box.
func ActualArea(shape Shape, width, height float64) float64 {
	switch shape {
	case ShapeTriangle:
		return width * height / 2.0
	case ShapeCircle:
		radius := math.Min(width, height) / 2.0
		return math.Pi * radius * radius
	default:
		return width * height
	}
}

// circleSegments is the number of polygon segments used to approximate an
// inscribed circle's outline.
const circleSegments = 64

// CornerPoints returns the outline polygon of an item's shape at position
// (x, y). For triangles the rotation selects the corner of the bounding box
// that holds the right angle:
//
//	0:   bottom-left   (x, y)
//	90:  bottom-right  (x+w, y)
//	180: top-right     (x+w, y+h)
//	270: top-left      (x, y+h)
//
// Rectangles return their four bounding-box corners and circles a polygon
// approximation of the inscribed circle; rotation is cosmetic for both.
// A rotation outside {0, 90, 180, 270} is rejected rather than silently
// treated as 0.
func CornerPoints(shape Shape, x, y, width, height float64, rotation Rotation) ([]Point2D, error) {
	if !rotation.Valid() {
		return nil, fmt.Errorf("rotation %d must be one of 0, 90, 180, 270", rotation)
	}

	switch shape {
	case ShapeTriangle:
		switch rotation {
		case Rotation90:
			return []Point2D{{X: x, Y: y}, {X: x + width, Y: y}, {X: x + width, Y: y + height}}, nil
		case Rotation180:
			return []Point2D{{X: x + width, Y: y}, {X: x + width, Y: y + height}, {X: x, Y: y + height}}, nil
		case Rotation270:
			return []Point2D{{X: x, Y: y + height}, {X: x + width, Y: y + height}, {X: x, Y: y}}, nil
		default:
			return []Point2D{{X: x, Y: y}, {X: x + width, Y: y}, {X: x, Y: y + height}}, nil
		}

	case ShapeCircle:
		radius := math.Min(width, height) / 2.0
		cx := x + width/2.0
		cy := y + height/2.0
		points := make([]Point2D, 0, circleSegments)
		for i := 0; i < circleSegments; i++ {
			angle := 2.0 * math.Pi * float64(i) / float64(circleSegments)
			points = append(points, Point2D{
				X: cx + radius*math.Cos(angle),
				Y: cy + radius*math.Sin(angle),
			})
		}
		return points, nil

	default:
		return []Point2D{
			{X: x, Y: y},
			{X: x + width, Y: y},
			{X: x + width, Y: y + height},
			{X: x, Y: y + height},
		}, nil
	}
}
