package game

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace loads a TrueType/OpenType face at size pixels. An empty path
// uses the embedded Go Regular font.
func LoadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// wrapText splits text into lines no wider than width pixels. Explicit
// newlines are kept, blank lines included. A single word wider than width
// gets a line of its own.
func wrapText(face font.Face, text string, width int) []string {
	limit := fixed.I(width)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width > 0 && font.MeasureString(face, candidate) > limit {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// textBlock is laid-out multi-line text.
type textBlock struct {
	lines      []string
	widths     []int
	lineHeight int
	ascent     int
}

func layoutText(face font.Face, text string, width int) textBlock {
	m := face.Metrics()
	tb := textBlock{
		lines:      wrapText(face, text, width),
		lineHeight: m.Height.Ceil(),
		ascent:     m.Ascent.Ceil(),
	}
	tb.widths = make([]int, len(tb.lines))
	for i, l := range tb.lines {
		tb.widths[i] = font.MeasureString(face, l).Ceil()
	}
	return tb
}

// Size is the bounding size of the block.
func (tb textBlock) Size() (w, h int) {
	for _, lw := range tb.widths {
		w = max(w, lw)
	}
	return w, tb.lineHeight * len(tb.lines)
}

// draw renders the block with its top-left at (x, y). Each line is
// centred within the block's width when centre is set.
func (tb textBlock) draw(dst *image.RGBA, face font.Face, x, y int, c color.Color, centre bool) {
	bw, _ := tb.Size()
	d := font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	for i, l := range tb.lines {
		lx := x
		if centre {
			lx += (bw - tb.widths[i]) / 2
		}
		d.Dot = fixed.P(lx, y+tb.ascent+i*tb.lineHeight)
		d.DrawString(l)
	}
}
