// Package stars generates constellation shapes and the background star
// field for a level, and decides when the player's reference shape matches
// the hidden constellation.
package stars

import (
	"math"

	"constellations/internal/geom"
)

// MinShapePoints is the smallest polygon the generator will produce.
// Smaller requests are clamped, not rejected.
const MinShapePoints = 3

// Angular jitter applied to each evenly spaced vertex, in radians.
const angleJitter = 0.2

// ShapePoints returns n points around center. Vertex i sits at angle
// i*2π/n plus a jitter in [-0.2, 0.2) rad, at a radius drawn from
// [0.5*maxRadius, maxRadius). Offsets are truncated toward zero.
func ShapePoints(r *geom.Rand, center geom.Point, maxRadius float64, n int) []geom.Point {
	if n < MinShapePoints {
		n = MinShapePoints
	}
	step := 2 * math.Pi / float64(n)
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		radius := r.RangeF(maxRadius*0.5, maxRadius)
		angle := float64(i)*step + r.RangeF(-angleJitter, angleJitter)
		pts = append(pts, geom.Point{
			X: center.X + int(radius*math.Cos(angle)),
			Y: center.Y + int(radius*math.Sin(angle)),
		})
	}
	return pts
}

// RectFromPoints returns the bounding box of points. The box is closed:
// points on the max edges satisfy Rect.ContainsClosed.
func RectFromPoints(points []geom.Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return geom.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// Matched reports whether the centres of a and b are within threshold
// pixels of each other. The boundary counts as a match.
func Matched(a, b geom.Rect, threshold float64) bool {
	return a.Center().Dist(b.Center()) <= threshold
}

// Shape is a polygon of stars stored relative to its bounding rectangle.
// Moving the shape only moves Rect.
type Shape struct {
	Local      []geom.Point
	Rect       geom.Rect
	Radius     []float32
	Brightness []float32
}

// Points returns the shape's vertices in screen coordinates.
func (s Shape) Points() []geom.Point {
	out := make([]geom.Point, len(s.Local))
	origin := s.Rect.Min()
	for i, p := range s.Local {
		out[i] = origin.Add(p)
	}
	return out
}

// Copy returns a deep copy of s.
func (s Shape) Copy() Shape {
	return Shape{
		Local:      append([]geom.Point(nil), s.Local...),
		Rect:       s.Rect,
		Radius:     append([]float32(nil), s.Radius...),
		Brightness: append([]float32(nil), s.Brightness...),
	}
}

// newShape converts absolute points into a Shape anchored at their
// bounding box.
func newShape(points []geom.Point) Shape {
	rect := RectFromPoints(points)
	local := make([]geom.Point, len(points))
	for i, p := range points {
		local[i] = p.Sub(rect.Min())
	}
	return Shape{Local: local, Rect: rect}
}
