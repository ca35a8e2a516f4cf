package game

import "constellations/internal/geom"

// Button is a clickable rectangle.
type Button struct {
	Rect geom.Rect
}

// Hit reports whether p is on the button.
func (b Button) Hit(p geom.Point) bool { return b.Rect.Contains(p) }

// Layout is the screen-space placement of every GUI element. All sizes
// derive from the screen size with integer division.
type Layout struct {
	Width, Height int

	Panel    geom.Rect // bottom panel, a quarter of the height
	Outline  geom.Rect // square box the reference shape rests in
	Hint     Button
	Reset    Button
	Fact     geom.Rect // above the panel
	Complete geom.Rect // centred
	StatsX   int

	CornerRadius int // reveal and outline boxes
	LineWidth    int
}

func NewLayout(w, h int) Layout {
	panel := geom.NewRect(0, h-h/4, w, h/4)
	outline := geom.NewRect(0, panel.Y, panel.H, panel.H).WithCenter(geom.Point{X: w / 2, Y: panel.Y + panel.H/2})
	btnX, btnW, btnH := w-w/4, w/5, h/20
	return Layout{
		Width:        w,
		Height:       h,
		Panel:        panel,
		Outline:      outline,
		Hint:         Button{Rect: geom.NewRect(btnX, panel.Y+h/80, btnW, btnH)},
		Reset:        Button{Rect: geom.NewRect(btnX, panel.Y+h/10, btnW, btnH)},
		Fact:         geom.NewRect(0, 0, w, h/2).WithCenter(geom.Point{X: w / 2, Y: (h - panel.H) / 2}),
		Complete:     geom.NewRect(0, 0, w/2, h/3).WithCenter(geom.Point{X: w / 2, Y: h / 2}),
		StatsX:       w / 100,
		CornerRadius: w / 24,
		LineWidth:    max(1, w/200),
	}
}
