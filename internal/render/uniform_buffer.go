package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"constellations/internal/shader"
)

// UniformBinding is the binding point of the shared block.
const UniformBinding = 0

// UniformBuffer is the GL buffer behind the shared std140 block.
type UniformBuffer struct {
	id     uint32
	layout *shader.Layout
	data   []byte
}

func NewUniformBuffer(layout *shader.Layout) *UniformBuffer {
	u := &UniformBuffer{layout: layout}
	gl.GenBuffers(1, &u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferData(gl.UNIFORM_BUFFER, layout.BufferSize(), nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, UniformBinding, u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return u
}

func (u *UniformBuffer) Layout() *shader.Layout { return u.layout }

// Update packs f and uploads it.
func (u *UniformBuffer) Update(f *shader.FrameValues) {
	u.data = u.layout.Pack(u.data, f)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(u.data), gl.Ptr(&u.data[0]))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (u *UniformBuffer) Destroy() {
	if u.id != 0 {
		gl.DeleteBuffers(1, &u.id)
		u.id = 0
	}
}
