package stars

import (
	"constellations/internal/geom"
)

// InstanceFloats is the per-star stride of instance data:
// x, y, radius, brightness.
const InstanceFloats = 4

// Star is a single background star.
type Star struct {
	Pos        geom.Point
	Radius     float32
	Brightness float32
}

// FieldParams sizes a level.
type FieldParams struct {
	ScreenW, ScreenH int

	// Panel is the bottom UI panel; no stars are placed inside it and the
	// constellation stays above it.
	Panel geom.Rect
	// Outline is the box inside the panel the reference shape rests in.
	Outline geom.Rect

	ConstellationPoints    int
	MaxConstellationPoints int
	RandomPoints           int
	MaxRandomPoints        int

	MaxRadius     int // constellation max radius
	StarMinRadius int
	StarMaxRadius int

	MatchThreshold float64
}

// Field is the generated geometry of one level.
type Field struct {
	Constellation Shape
	Reference     Shape
	Random        []Star

	referenceHome geom.Rect
	threshold     float64
}

// NewField generates a fresh level from r. Point counts are clamped to
// [3, max] before generation.
func NewField(r *geom.Rand, p FieldParams) *Field {
	nConst := geom.Clamp(p.ConstellationPoints, MinShapePoints, max(p.MaxConstellationPoints, MinShapePoints))
	nRand := geom.Clamp(p.RandomPoints, MinShapePoints, max(p.MaxRandomPoints, MinShapePoints))

	// Generate around a centre far enough from the origin that every
	// vertex stays in positive coordinates before the shape is placed.
	offset := p.MaxRadius + p.StarMaxRadius*2
	pts := ShapePoints(r, geom.Point{X: offset, Y: offset}, float64(p.MaxRadius), nConst)
	constellation := newShape(pts)
	constellation.Radius = make([]float32, len(pts))
	constellation.Brightness = make([]float32, len(pts))
	for i := range pts {
		constellation.Radius[i] = float32(r.Range(p.StarMinRadius, p.StarMaxRadius))
		constellation.Brightness[i] = float32(r.RangeF(0.6, 1.0))
	}

	w, h := constellation.Rect.W, constellation.Rect.H
	center := geom.Point{
		X: r.Range(w/2+p.StarMaxRadius, p.ScreenW-w/2-p.StarMaxRadius),
		Y: r.Range(h/2+p.StarMaxRadius, p.Panel.Y-h/2-p.StarMaxRadius),
	}
	constellation.Rect = constellation.Rect.WithCenter(center)

	reference := constellation.Copy()
	for i := range reference.Radius {
		reference.Radius[i] = float32(p.StarMinRadius)
		reference.Brightness[i] = 1
	}
	home := reference.Rect.WithCenter(p.Outline.Center())
	reference.Rect = home

	f := &Field{
		Constellation: constellation,
		Reference:     reference,
		referenceHome: home,
		threshold:     p.MatchThreshold,
	}
	f.Random = randomStars(r, p, nRand, constellation.Rect)
	return f
}

// randomStars scatters n candidate stars over the screen and drops those
// that land on the constellation or the panel, so fewer than n may come
// back.
func randomStars(r *geom.Rand, p FieldParams, n int, avoid geom.Rect) []Star {
	out := make([]Star, 0, n)
	for i := 0; i < n; i++ {
		pt := geom.Point{X: r.Range(0, p.ScreenW), Y: r.Range(0, p.ScreenH)}
		radius := float32(r.Range(p.StarMinRadius, p.StarMaxRadius))
		brightness := float32(r.RangeF(0.35, 1.0))
		if avoid.ContainsClosed(pt) || p.Panel.Contains(pt) {
			continue
		}
		out = append(out, Star{Pos: pt, Radius: radius, Brightness: brightness})
	}
	return out
}

// Threshold returns the match distance in pixels.
func (f *Field) Threshold() float64 { return f.threshold }

// ReferenceHome returns where the reference shape rests between drags.
func (f *Field) ReferenceHome() geom.Rect { return f.referenceHome }

// MoveReference translates the reference shape.
func (f *Field) MoveReference(dx, dy int) {
	f.Reference.Rect = f.Reference.Rect.Translate(dx, dy)
}

// ResetReference puts the reference shape back in its outline box.
func (f *Field) ResetReference() {
	f.Reference.Rect = f.referenceHome
}

// Matched reports whether the reference currently matches the
// constellation.
func (f *Field) Matched() bool {
	return Matched(f.Reference.Rect, f.Constellation.Rect, f.threshold)
}

// ConstellationStars returns the constellation vertices as stars in screen
// coordinates.
func (f *Field) ConstellationStars() []Star {
	pts := f.Constellation.Points()
	out := make([]Star, len(pts))
	for i, pt := range pts {
		out[i] = Star{Pos: pt, Radius: f.Constellation.Radius[i], Brightness: f.Constellation.Brightness[i]}
	}
	return out
}

// AppendInstances appends the instance data for stars to buf.
func AppendInstances(buf []float32, stars []Star) []float32 {
	for _, s := range stars {
		buf = append(buf, float32(s.Pos.X), float32(s.Pos.Y), s.Radius, s.Brightness)
	}
	return buf
}
