package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"constellations/internal/geom"
)

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
	cursor    geom.Point
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Button reports the edges of btn since the previous call.
func (in *Input) Button(window *glfw.Window, btn glfw.MouseButton) (pressed, released bool) {
	down := window.GetMouseButton(btn) == glfw.Press
	was := in.prevMouse[btn]
	in.prevMouse[btn] = down
	return down && !was, !down && was
}

// Cursor returns the cursor in logical screen pixels and whether it moved
// since the previous call. Window coordinates are scaled so the result
// matches the layout on HiDPI displays.
func (in *Input) Cursor(window *glfw.Window, logicalW, logicalH int) (geom.Point, bool) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return in.cursor, false
	}
	p := geom.Point{
		X: int(cx * float64(logicalW) / float64(winW)),
		Y: int(cy * float64(logicalH) / float64(winH)),
	}
	moved := p != in.cursor
	in.cursor = p
	return p, moved
}
