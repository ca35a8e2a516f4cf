package game

import "image/color"

// RGB is an opaque 8-bit per channel colour. It implements color.Color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

// Lerp mixes c towards d by t in [0, 1].
func (c RGB) Lerp(d RGB, t float64) RGB {
	t = min(max(t, 0), 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{R: mix(c.R, d.R), G: mix(c.G, d.G), B: mix(c.B, d.B)}
}

// Floats returns c as normalised float32 components.
func (c RGB) Floats() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

var Palette = struct {
	Black      RGB
	White      RGB
	Red        RGB
	Panel      RGB
	Hint       RGB
	HintEmpty  RGB
	Banner     RGB
	BannerText RGB
	Fact       color.NRGBA

	AuroraStart RGB
	AuroraEnd   RGB
}{
	Black:      RGB{R: 0, G: 0, B: 0},
	White:      RGB{R: 255, G: 255, B: 255},
	Red:        RGB{R: 255, G: 0, B: 0},
	Panel:      RGB{R: 0, G: 55, B: 115},
	Hint:       RGB{R: 0, G: 150, B: 0},
	HintEmpty:  RGB{R: 100, G: 100, B: 100},
	Banner:     RGB{R: 0, G: 150, B: 0},
	BannerText: RGB{R: 100, G: 255, B: 100},
	Fact:       color.NRGBA{R: 115, G: 55, B: 115, A: 225},

	AuroraStart: RGB{R: 40, G: 230, B: 140},
	AuroraEnd:   RGB{R: 170, G: 80, B: 230},
}

// AuroraTint drifts from green to violet as the game progresses.
func AuroraTint(progress float64) [3]float32 {
	return Palette.AuroraStart.Lerp(Palette.AuroraEnd, progress).Floats()
}
