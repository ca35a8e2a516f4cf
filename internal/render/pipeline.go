package render

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"constellations/internal/shader"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Blend selects the fixed-function blend state of a pipeline.
type Blend int

const (
	BlendAlpha Blend = iota
	BlendAdditive
	BlendNone
)

func (b Blend) String() string {
	switch b {
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	case BlendNone:
		return "none"
	}
	return fmt.Sprintf("Blend(%d)", int(b))
}

// Attribute is one float vector of the per-instance vertex layout.
type Attribute struct {
	Location   uint32
	Components int32
}

// PipelineSpec describes one layer.
type PipelineSpec struct {
	Name     string
	Vertex   string // source id of the .vert file
	Fragment string // source id of the .frag file

	// Texture allocates an RGBA texture of Width x Height sampled as
	// uTexture.
	Texture       bool
	Width, Height int

	// Instances, when non-empty, allocates an instance buffer of
	// MaxInstances entries laid out as the given attributes.
	Instances    []Attribute
	MaxInstances int

	Blend Blend
}

// stride returns the instance stride in floats.
func (s PipelineSpec) stride() int {
	n := 0
	for _, a := range s.Instances {
		n += int(a.Components)
	}
	return n
}

// Draw is the per-frame input of a pipeline. Zero values keep the previous
// texture and instance data.
type Draw struct {
	Image     *image.RGBA
	Instances []float32
}

// instanceCount is the number of instances a draw of data issues. Passes
// without an instance layout always draw one.
func instanceCount(data []float32, stride, maxInstances int) int32 {
	if stride == 0 {
		return 1
	}
	n := len(data) / stride
	if n > maxInstances {
		n = maxInstances
	}
	return int32(n)
}

// Pipeline is a program drawing a 4-vertex triangle strip, optionally
// instanced and textured.
type Pipeline struct {
	name  string
	prog  uint32
	vao   uint32
	ivbo  uint32
	tex   uint32
	blend Blend

	stride, maxInstances int
	count                int32
	width, height        int32
}

// NewPipeline compiles the sources named by spec and binds the shared uniform block.
func NewPipeline(src *shader.Sources, spec PipelineSpec) (*Pipeline, error) {
	vert, err := src.Load(spec.Vertex, shader.StageVertex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	frag, err := src.Load(spec.Fragment, shader.StageFragment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	prog, err := linkProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", spec.Name, err)
	}

	p := &Pipeline{
		name:         spec.Name,
		prog:         prog,
		blend:        spec.Blend,
		stride:       spec.stride(),
		maxInstances: spec.MaxInstances,
		count:        1,
	}

	idx := gl.GetUniformBlockIndex(prog, gl.Str(shader.BlockName+"\x00"))
	if idx != gl.INVALID_INDEX {
		gl.UniformBlockBinding(prog, idx, UniformBinding)
	}

	// Core profile needs a bound VAO even when the quad comes from
	// gl_VertexID.
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	if p.stride > 0 {
		gl.GenBuffers(1, &p.ivbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, p.ivbo)
		gl.BufferData(gl.ARRAY_BUFFER, p.maxInstances*p.stride*4, nil, gl.STREAM_DRAW)
		strideBytes := int32(p.stride * 4)
		off := 0
		for _, a := range spec.Instances {
			gl.EnableVertexAttribArray(a.Location)
			gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, strideBytes, glOffset(off))
			gl.VertexAttribDivisor(a.Location, 1)
			off += int(a.Components) * 4
		}
		p.count = 0
	}
	gl.BindVertexArray(0)

	if spec.Texture {
		p.width, p.height = int32(spec.Width), int32(spec.Height)
		gl.GenTextures(1, &p.tex)
		gl.BindTexture(gl.TEXTURE_2D, p.tex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, p.width, p.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		gl.UseProgram(prog)
		gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("uTexture\x00")), 0)
		gl.UseProgram(0)
	}
	return p, nil
}

// Render uploads any new data in d and issues the draw.
func (p *Pipeline) Render(d Draw) {
	if d.Image != nil && p.tex != 0 {
		b := d.Image.Bounds()
		gl.BindTexture(gl.TEXTURE_2D, p.tex)
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(d.Image.Stride/4))
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
			min(int32(b.Dx()), p.width), min(int32(b.Dy()), p.height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&d.Image.Pix[0]))
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	}
	if d.Instances != nil && p.ivbo != 0 {
		p.count = instanceCount(d.Instances, p.stride, p.maxInstances)
		if p.count > 0 {
			gl.BindBuffer(gl.ARRAY_BUFFER, p.ivbo)
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, int(p.count)*p.stride*4, gl.Ptr(&d.Instances[0]))
			gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		}
	}
	if p.count == 0 {
		return
	}

	switch p.blend {
	case BlendNone:
		gl.Disable(gl.BLEND)
	case BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.UseProgram(p.prog)
	gl.BindVertexArray(p.vao)
	if p.tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, p.tex)
	}
	if p.ivbo != 0 {
		gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, p.count)
	} else {
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}
	gl.BindVertexArray(0)
}

func (p *Pipeline) Destroy() {
	if p.ivbo != 0 {
		gl.DeleteBuffers(1, &p.ivbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
	}
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
	}
}
