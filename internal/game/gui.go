package game

import (
	"fmt"
	"image"

	"golang.org/x/image/font"

	"constellations/internal/geom"
)

const (
	instructionsText = "Drag the reference shape to match the constellation!"
	continueText     = "Click to continue..."
)

// GUI rasterises the 2D overlay: the bottom panel, buttons, the reference
// shape, the reveal outline and text boxes. The result is uploaded as the
// top render layer.
type GUI struct {
	layout Layout
	face   font.Face
	cv     *canvas
}

func NewGUI(layout Layout, face font.Face) *GUI {
	return &GUI{
		layout: layout,
		face:   face,
		cv:     newCanvas(layout.Width, layout.Height),
	}
}

// Image is the overlay drawn by the last Draw call.
func (g *GUI) Image() *image.RGBA { return g.cv.dst }

// Draw redraws the overlay for v.
func (g *GUI) Draw(v View) *image.RGBA {
	l := g.layout
	g.cv.clear()

	g.cv.fillRect(l.Panel, Palette.Panel)
	g.drawStats(v)
	g.drawButtons(v)

	if v.State != StateGameComplete {
		g.drawReference(v)
	}
	if v.Reveal {
		g.cv.strokeRoundRect(v.Constellation, l.CornerRadius, l.LineWidth, Palette.Hint)
	}
	if v.Instructions {
		g.drawInstructions()
	}
	if v.Fact != "" {
		g.drawFact(v.Fact)
	}
	if v.State == StateGameComplete {
		g.drawComplete()
	}
	return g.cv.dst
}

func (g *GUI) drawStats(v View) {
	text := fmt.Sprintf("Constellations completed: %d/%d\n\nCurrent Time: %d seconds", v.Completed, v.MaxLevel, v.Seconds)
	tb := layoutText(g.face, text, 0)
	_, h := tb.Size()
	p := g.layout.Panel
	tb.draw(g.cv.dst, g.face, g.layout.StatsX, p.Y+p.H/2-h/2, Palette.White, false)
}

func (g *GUI) drawButtons(v View) {
	hint := Palette.Hint
	if v.Hints <= 0 {
		hint = Palette.HintEmpty
	}
	g.drawButton(g.layout.Hint, fmt.Sprintf("Show Hint (%d)", v.Hints), hint, Palette.Black)
	g.drawButton(g.layout.Reset, "Reset", Palette.Black, Palette.White)
}

func (g *GUI) drawButton(b Button, label string, bg, fg RGB) {
	g.cv.fillRect(b.Rect, bg)
	tb := layoutText(g.face, label, 0)
	w, h := tb.Size()
	c := b.Rect.Center()
	tb.draw(g.cv.dst, g.face, c.X-w/2, c.Y-h/2, fg, true)
}

// drawReference draws the outline box, then the reference polygon as red
// connecting lines with white points.
func (g *GUI) drawReference(v View) {
	l := g.layout
	g.cv.fillRoundRect(l.Outline, l.CornerRadius, Palette.Black)
	g.cv.strokeRoundRect(l.Outline, l.CornerRadius, l.LineWidth, Palette.White)

	pts := v.Reference
	for i := range pts {
		g.cv.line(pts[i], pts[(i+1)%len(pts)], 2, Palette.Red)
	}
	for _, p := range pts {
		g.cv.disc(p, max(v.ReferenceRadius, 1), Palette.White)
	}
}

func (g *GUI) drawInstructions() {
	l := g.layout
	tb := layoutText(g.face, instructionsText, 0)
	w, h := tb.Size()
	banner := geom.NewRect(l.Width/2-w, l.Panel.Y-h, w*2, h)
	g.cv.fillRoundRect(banner, max(1, l.Width/200), Palette.Banner)
	tb.draw(g.cv.dst, g.face, l.Width/2-w/2, l.Panel.Y-h, Palette.BannerText, true)
}

func (g *GUI) drawFact(fact string) {
	l := g.layout
	g.cv.fillRect(l.Fact, Palette.Fact)
	tb := layoutText(g.face, fact+"\n\n"+continueText, l.Width-l.Width/10)
	w, h := tb.Size()
	c := l.Fact.Center()
	tb.draw(g.cv.dst, g.face, c.X-w/2, c.Y-h/2, Palette.White, true)
}

func (g *GUI) drawComplete() {
	box := g.layout.Complete
	g.cv.fillRect(box, Palette.White)

	title := layoutText(g.face, "Congratulations!", 0)
	sub := layoutText(g.face, "You completed the game!", 0)
	tw, th := title.Size()
	sw, sh := sub.Size()
	cx := box.X + box.W/2
	y := box.Y + box.H/3 - th/2
	title.draw(g.cv.dst, g.face, cx-tw/2, y, Palette.Black, true)
	sub.draw(g.cv.dst, g.face, cx-sw/2, y+sh*2, Palette.Black, true)
}
