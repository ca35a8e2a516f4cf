package game

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"constellations/internal/geom"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// canvas draws antialiased shapes onto an RGBA image. The rasterizer is
// sized to each shape's bounding box so small shapes stay cheap.
type canvas struct {
	dst *image.RGBA
	z   vector.Rasterizer
}

func newCanvas(w, h int) *canvas {
	return &canvas{dst: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (cv *canvas) clear() {
	clear(cv.dst.Pix)
}

func (cv *canvas) fillRect(r geom.Rect, c color.Color) {
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom())
	draw.Draw(cv.dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// begin prepares the rasterizer for a shape covering r and returns the
// offset to subtract from screen coordinates.
func (cv *canvas) begin(r image.Rectangle) (image.Rectangle, float32, float32, bool) {
	r = r.Intersect(cv.dst.Bounds())
	if r.Empty() {
		return r, 0, 0, false
	}
	cv.z.Reset(r.Dx(), r.Dy())
	cv.z.DrawOp = draw.Over
	return r, float32(r.Min.X), float32(r.Min.Y), true
}

func (cv *canvas) finish(r image.Rectangle, c color.Color) {
	cv.z.Draw(cv.dst, r, image.NewUniform(c), image.Point{})
}

// roundRectPath adds a rounded rectangle to the rasterizer. reverse winds it
// the other way so it cuts a hole in a previous path.
func (cv *canvas) roundRectPath(x0, y0, x1, y1, rad float32, reverse bool) {
	rad = min(rad, (x1-x0)/2, (y1-y0)/2)
	k := rad * (1 - kappa)
	z := &cv.z
	if !reverse {
		z.MoveTo(x0+rad, y0)
		z.LineTo(x1-rad, y0)
		z.CubeTo(x1-k, y0, x1, y0+k, x1, y0+rad)
		z.LineTo(x1, y1-rad)
		z.CubeTo(x1, y1-k, x1-k, y1, x1-rad, y1)
		z.LineTo(x0+rad, y1)
		z.CubeTo(x0+k, y1, x0, y1-k, x0, y1-rad)
		z.LineTo(x0, y0+rad)
		z.CubeTo(x0, y0+k, x0+k, y0, x0+rad, y0)
	} else {
		z.MoveTo(x0+rad, y0)
		z.CubeTo(x0+k, y0, x0, y0+k, x0, y0+rad)
		z.LineTo(x0, y1-rad)
		z.CubeTo(x0, y1-k, x0+k, y1, x0+rad, y1)
		z.LineTo(x1-rad, y1)
		z.CubeTo(x1-k, y1, x1, y1-k, x1, y1-rad)
		z.LineTo(x1, y0+rad)
		z.CubeTo(x1, y0+k, x1-k, y0, x1-rad, y0)
	}
	z.ClosePath()
}

func (cv *canvas) fillRoundRect(r geom.Rect, radius int, c color.Color) {
	b, ox, oy, ok := cv.begin(image.Rect(r.X, r.Y, r.Right(), r.Bottom()))
	if !ok {
		return
	}
	cv.roundRectPath(float32(r.X)-ox, float32(r.Y)-oy, float32(r.Right())-ox, float32(r.Bottom())-oy, float32(radius), false)
	cv.finish(b, c)
}

// strokeRoundRect outlines r with a border width pixels wide drawn inside it.
func (cv *canvas) strokeRoundRect(r geom.Rect, radius, width int, c color.Color) {
	b, ox, oy, ok := cv.begin(image.Rect(r.X, r.Y, r.Right(), r.Bottom()))
	if !ok {
		return
	}
	x0, y0 := float32(r.X)-ox, float32(r.Y)-oy
	x1, y1 := float32(r.Right())-ox, float32(r.Bottom())-oy
	w := float32(width)
	cv.roundRectPath(x0, y0, x1, y1, float32(radius), false)
	if x1-x0 > 2*w && y1-y0 > 2*w {
		cv.roundRectPath(x0+w, y0+w, x1-w, y1-w, max(0, float32(radius)-w), true)
	}
	cv.finish(b, c)
}

// line draws a segment of the given width with square ends.
func (cv *canvas) line(a, b geom.Point, width float32, c color.Color) {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Unit normal scaled to half the width.
	nx := float32(-dy/length) * width / 2
	ny := float32(dx/length) * width / 2
	pad := int(math.Ceil(float64(width)))
	bounds := image.Rect(min(a.X, b.X)-pad, min(a.Y, b.Y)-pad, max(a.X, b.X)+pad+1, max(a.Y, b.Y)+pad+1)
	r, ox, oy, ok := cv.begin(bounds)
	if !ok {
		return
	}
	ax, ay := float32(a.X)-ox, float32(a.Y)-oy
	bx, by := float32(b.X)-ox, float32(b.Y)-oy
	cv.z.MoveTo(ax+nx, ay+ny)
	cv.z.LineTo(bx+nx, by+ny)
	cv.z.LineTo(bx-nx, by-ny)
	cv.z.LineTo(ax-nx, ay-ny)
	cv.z.ClosePath()
	cv.finish(r, c)
}

// disc fills a circle of radius rad centred on p.
func (cv *canvas) disc(p geom.Point, rad float32, c color.Color) {
	if rad <= 0 {
		return
	}
	pad := int(math.Ceil(float64(rad))) + 1
	r, ox, oy, ok := cv.begin(image.Rect(p.X-pad, p.Y-pad, p.X+pad+1, p.Y+pad+1))
	if !ok {
		return
	}
	cx, cy := float32(p.X)-ox, float32(p.Y)-oy
	k := rad * kappa
	z := &cv.z
	z.MoveTo(cx+rad, cy)
	z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	z.ClosePath()
	cv.finish(r, c)
}
