package render

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"constellations/internal/shader"
	"constellations/internal/stars"
)

// Layer names in draw order.
const (
	LayerBackground    = "background"
	LayerAurora        = "aurora"
	LayerStars         = "stars"
	LayerConstellation = "constellation"
	LayerOverlay       = "overlay"
)

// starAttributes matches stars.AppendInstances: vec2 pos, float radius,
// float brightness.
var starAttributes = []Attribute{
	{Location: 0, Components: 2},
	{Location: 1, Components: 1},
	{Location: 2, Components: 1},
}

// Layers returns the pipeline specs of the scene for a w x h framebuffer.
func Layers(w, h, maxStars int) []PipelineSpec {
	return []PipelineSpec{
		{Name: LayerBackground, Vertex: "default", Fragment: "background", Blend: BlendNone},
		{Name: LayerAurora, Vertex: "default", Fragment: "aurora", Blend: BlendAdditive},
		{
			Name: LayerStars, Vertex: "star", Fragment: "star",
			Instances: starAttributes, MaxInstances: maxStars,
			Blend: BlendAdditive,
		},
		{
			Name: LayerConstellation, Vertex: "star", Fragment: "constellation",
			Instances: starAttributes, MaxInstances: maxStars,
			Blend: BlendAdditive,
		},
		{
			Name: LayerOverlay, Vertex: "default", Fragment: "overlay",
			Texture: true, Width: w, Height: h,
			Blend: BlendAlpha,
		},
	}
}

// SourcePairs lists the (vertex, fragment) ids the scene needs.
func SourcePairs(specs []PipelineSpec) [][2]string {
	out := make([][2]string, len(specs))
	for i, s := range specs {
		out[i] = [2]string{s.Vertex, s.Fragment}
	}
	return out
}

// Frame is everything the scene draws in one frame.
type Frame struct {
	Uniforms      shader.FrameValues
	Stars         []stars.Star
	Constellation []stars.Star
	Overlay       *image.RGBA
}

// Scene composites the layers over the shared uniform buffer.
type Scene struct {
	ubo    *UniformBuffer
	layers []*Pipeline
	byName map[string]*Pipeline

	starBuf, constBuf []float32
}

// NewScene builds every layer. maxStars bounds the instance buffers.
func NewScene(src *shader.Sources, layout *shader.Layout, w, h, maxStars int) (*Scene, error) {
	s := &Scene{
		ubo:    NewUniformBuffer(layout),
		byName: make(map[string]*Pipeline),
		// Non-nil so an empty star list still clears the instance count.
		starBuf:  make([]float32, 0, maxStars*stars.InstanceFloats),
		constBuf: make([]float32, 0, maxStars*stars.InstanceFloats),
	}
	for _, spec := range Layers(w, h, maxStars) {
		p, err := NewPipeline(src, spec)
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		s.layers = append(s.layers, p)
		s.byName[spec.Name] = p
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)
	return s, nil
}

// Draw uploads the frame and renders every layer. fbW/fbH is the current
// framebuffer size, which differs from the logical size on HiDPI displays.
func (s *Scene) Draw(f *Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	s.ubo.Update(&f.Uniforms)

	s.starBuf = stars.AppendInstances(s.starBuf[:0], f.Stars)
	s.constBuf = stars.AppendInstances(s.constBuf[:0], f.Constellation)

	s.byName[LayerBackground].Render(Draw{})
	s.byName[LayerAurora].Render(Draw{})
	s.byName[LayerStars].Render(Draw{Instances: s.starBuf})
	s.byName[LayerConstellation].Render(Draw{Instances: s.constBuf})
	s.byName[LayerOverlay].Render(Draw{Image: f.Overlay})
}

func (s *Scene) Destroy() {
	for _, p := range s.layers {
		p.Destroy()
	}
	s.layers = nil
	if s.ubo != nil {
		s.ubo.Destroy()
	}
}
