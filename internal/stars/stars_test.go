package stars

import (
	"math"
	"testing"

	"constellations/internal/geom"
)

func TestShapePointsCountAndRadius(t *testing.T) {
	r := geom.NewRand(1)
	center := geom.Point{X: 200, Y: 200}
	const maxRadius = 66.0

	for n := 3; n <= 12; n++ {
		for trial := 0; trial < 20; trial++ {
			pts := ShapePoints(r, center, maxRadius, n)
			if len(pts) != n {
				t.Fatalf("n=%d: got %d points", n, len(pts))
			}
			for _, p := range pts {
				d := p.Dist(center)
				// Truncation toward zero can pull a point in by < 1px per axis.
				if d < maxRadius*0.5-math.Sqrt2 || d > maxRadius {
					t.Fatalf("n=%d: point %v at distance %.2f outside [%.1f, %.1f]",
						n, p, d, maxRadius*0.5, maxRadius)
				}
			}
		}
	}
}

func TestShapePointsClampsDegenerate(t *testing.T) {
	r := geom.NewRand(2)
	for _, n := range []int{-5, 0, 1, 2} {
		if got := len(ShapePoints(r, geom.Point{}, 10, n)); got != MinShapePoints {
			t.Errorf("ShapePoints(n=%d) returned %d points, expected %d", n, got, MinShapePoints)
		}
	}
}

func TestShapePointsAngularOrder(t *testing.T) {
	// Jitter is smaller than half a step for n <= 15, so vertices stay in
	// angular order around the centre.
	r := geom.NewRand(3)
	center := geom.Point{X: 500, Y: 500}
	pts := ShapePoints(r, center, 200, 8)
	prev := -1.0
	for i, p := range pts {
		a := math.Atan2(float64(p.Y-center.Y), float64(p.X-center.X))
		if a < -0.3 {
			a += 2 * math.Pi
		}
		if i > 0 && a <= prev {
			t.Fatalf("vertex %d at angle %.3f not after %.3f", i, a, prev)
		}
		prev = a
	}
}

func TestRectFromPointsContainsAll(t *testing.T) {
	r := geom.NewRand(4)
	for trial := 0; trial < 50; trial++ {
		pts := ShapePoints(r, geom.Point{X: 300, Y: 250}, 80, 3+trial%6)
		rect := RectFromPoints(pts)
		for _, p := range pts {
			if !rect.ContainsClosed(p) {
				t.Fatalf("rect %+v does not contain %v", rect, p)
			}
		}
	}
}

func TestRectFromPointsExtent(t *testing.T) {
	pts := []geom.Point{{X: 10, Y: 40}, {X: 30, Y: 20}, {X: 25, Y: 60}}
	rect := RectFromPoints(pts)
	want := geom.NewRect(10, 20, 20, 40)
	if rect != want {
		t.Errorf("RectFromPoints = %+v, expected %+v", rect, want)
	}
	if empty := RectFromPoints(nil); empty != (geom.Rect{}) {
		t.Errorf("RectFromPoints(nil) = %+v", empty)
	}
}

func TestMatched(t *testing.T) {
	base := geom.NewRect(100, 100, 20, 20) // centre (110,110)

	tests := []struct {
		name     string
		other    geom.Rect
		expected bool
	}{
		{"same position", base, true},
		{"inside threshold", base.Translate(3, 4), true}, // distance 5
		{"exactly on threshold", base.Translate(6, 8), true},
		{"just outside", base.Translate(6, 9), false},
		{"far away", base.Translate(200, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matched(tc.other, base, 10); got != tc.expected {
				t.Errorf("Matched() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func testParams() FieldParams {
	const w, h = 800, 600
	panel := geom.NewRect(0, h-h/4, w, h/4)
	outline := geom.NewRect(w/2-panel.H/2, panel.Y, panel.H, panel.H)
	return FieldParams{
		ScreenW:                w,
		ScreenH:                h,
		Panel:                  panel,
		Outline:                outline,
		ConstellationPoints:    4,
		MaxConstellationPoints: 8,
		RandomPoints:           25,
		MaxRandomPoints:        100,
		MaxRadius:              w / 12,
		StarMinRadius:          w / 400,
		StarMaxRadius:          w / 200,
		MatchThreshold:         float64(w / 120),
	}
}

func TestNewFieldLayout(t *testing.T) {
	p := testParams()
	for seed := uint64(1); seed <= 50; seed++ {
		f := NewField(geom.NewRand(seed), p)

		if n := len(f.Constellation.Local); n != 4 {
			t.Fatalf("seed %d: constellation has %d points", seed, n)
		}
		if f.Constellation.Rect.Bottom() > p.Panel.Y {
			t.Errorf("seed %d: constellation %+v overlaps panel", seed, f.Constellation.Rect)
		}
		if f.Reference.Rect.Center() != p.Outline.Center() {
			t.Errorf("seed %d: reference not centred in outline", seed)
		}
		if len(f.Random) > 25 {
			t.Errorf("seed %d: %d random stars, expected at most 25", seed, len(f.Random))
		}
		for _, s := range f.Random {
			if p.Panel.Contains(s.Pos) {
				t.Errorf("seed %d: random star %v inside panel", seed, s.Pos)
			}
			if f.Constellation.Rect.ContainsClosed(s.Pos) {
				t.Errorf("seed %d: random star %v inside constellation", seed, s.Pos)
			}
		}
		for i := range f.Constellation.Local {
			if f.Constellation.Local[i] != f.Reference.Local[i] {
				t.Fatalf("seed %d: reference is not a copy of the constellation", seed)
			}
		}
	}
}

func TestNewFieldClampsCounts(t *testing.T) {
	p := testParams()
	p.ConstellationPoints = 50
	p.RandomPoints = 1
	f := NewField(geom.NewRand(9), p)
	if n := len(f.Constellation.Local); n != p.MaxConstellationPoints {
		t.Errorf("constellation points = %d, expected clamp to %d", n, p.MaxConstellationPoints)
	}
	if n := len(f.Random); n > MinShapePoints {
		t.Errorf("random points = %d, expected at most %d", n, MinShapePoints)
	}
}

func TestFieldMatchAndReset(t *testing.T) {
	f := NewField(geom.NewRand(11), testParams())
	if f.Matched() {
		t.Skip("constellation generated inside the outline box")
	}

	target := f.Constellation.Rect.Center()
	cur := f.Reference.Rect.Center()
	f.MoveReference(target.X-cur.X, target.Y-cur.Y)
	if !f.Matched() {
		t.Fatal("reference moved onto constellation should match")
	}

	f.ResetReference()
	if f.Reference.Rect != f.ReferenceHome() {
		t.Error("ResetReference did not restore home position")
	}
}

func TestFieldIndependentAcrossSeeds(t *testing.T) {
	p := testParams()
	a := NewField(geom.NewRand(100), p)
	b := NewField(geom.NewRand(101), p)
	same := true
	for i := range a.Constellation.Local {
		if a.Constellation.Local[i] != b.Constellation.Local[i] {
			same = false
			break
		}
	}
	if same && a.Constellation.Rect == b.Constellation.Rect {
		t.Error("different seeds produced identical constellations")
	}
}

func TestAppendInstances(t *testing.T) {
	stars := []Star{
		{Pos: geom.Point{X: 1, Y: 2}, Radius: 3, Brightness: 0.5},
		{Pos: geom.Point{X: 4, Y: 5}, Radius: 6, Brightness: 1},
	}
	buf := AppendInstances(nil, stars)
	want := []float32{1, 2, 3, 0.5, 4, 5, 6, 1}
	if len(buf) != len(want) {
		t.Fatalf("len = %d, expected %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, expected %v", i, buf[i], want[i])
		}
	}
}
