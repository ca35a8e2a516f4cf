// Package shader lays out the shared std140 uniform block and loads GLSL
// sources by pipeline id. Nothing here touches a GL context; the GL side
// lives in internal/render.
package shader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownType is returned for a uniform type tag the packer does not know.
var ErrUnknownType = errors.New("unknown uniform type")

// Type is a GLSL uniform type supported by the packer.
type Type int

const (
	TypeFloat Type = iota
	TypeInt
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat4
)

var typeNames = [...]string{"float", "int", "vec2", "vec3", "vec4", "mat4"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType maps a GLSL type tag to a Type.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// std140 size and base alignment in bytes.
func (t Type) size() int {
	switch t {
	case TypeFloat, TypeInt:
		return 4
	case TypeVec2:
		return 8
	case TypeVec3:
		return 12
	case TypeVec4:
		return 16
	case TypeMat4:
		return 64
	}
	return 0
}

func (t Type) align() int {
	switch t {
	case TypeFloat, TypeInt:
		return 4
	case TypeVec2:
		return 8
	}
	return 16
}

func (t Type) components() int { return t.size() / 4 }

// HeaderSize is the reserve at the start of the block. It holds
// vec4 uFrame = (frame index, elapsed seconds, delta seconds, 0).
const HeaderSize = 16

// HeaderName is the GLSL name of the header slot.
const HeaderName = "uFrame"

// Source names the per-frame value that feeds a uniform slot.
type Source int

const (
	SourceTime       Source = iota // seconds since start
	SourceResolution               // framebuffer size in pixels
	SourcePointer                  // cursor position in pixels
	SourceProgress                 // completed / max, 0..1
	SourceLevel                    // current level number
	SourceHint                     // 1 while the constellation is revealed
	SourceReveal                   // constellation rect x, y, w, h in pixels
	SourceAuroraTint               // aurora colour
	SourceProjection               // pixel to clip space, column-major
)

var sourceNames = [...]string{
	"time", "resolution", "pointer", "progress", "level",
	"hint", "reveal", "aurora_tint", "projection",
}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return fmt.Sprintf("Source(%d)", int(s))
	}
	return sourceNames[s]
}

// FrameValues is everything a Source can read for one frame.
type FrameValues struct {
	Frame      uint64
	Time       float32
	Delta      float32
	Resolution [2]float32
	Pointer    [2]float32
	Progress   float32
	Level      int32
	Hint       bool
	Reveal     [4]float32
	AuroraTint [3]float32
	Projection [16]float32
}

// value writes the components of s into out and returns how many it wrote.
func (f *FrameValues) value(s Source, out *[16]float32) int {
	switch s {
	case SourceTime:
		out[0] = f.Time
		return 1
	case SourceResolution:
		copy(out[:], f.Resolution[:])
		return 2
	case SourcePointer:
		copy(out[:], f.Pointer[:])
		return 2
	case SourceProgress:
		out[0] = f.Progress
		return 1
	case SourceLevel:
		out[0] = float32(f.Level)
		return 1
	case SourceHint:
		out[0] = 0
		if f.Hint {
			out[0] = 1
		}
		return 1
	case SourceReveal:
		copy(out[:], f.Reveal[:])
		return 4
	case SourceAuroraTint:
		copy(out[:], f.AuroraTint[:])
		return 3
	case SourceProjection:
		copy(out[:], f.Projection[:])
		return 16
	}
	return 0
}

// Ortho returns a column-major matrix mapping pixel coordinates (origin
// top-left, y down) to clip space.
func Ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

// Uniform declares one slot of the block.
type Uniform struct {
	Name   string
	Type   string
	Source Source
}

// Entry is a placed uniform. Offset is relative to the packed region, which
// starts HeaderSize bytes into the buffer.
type Entry struct {
	Name   string
	Type   Type
	Source Source
	Offset int
	Size   int
}

// Layout is the computed std140 placement of a uniform list.
type Layout struct {
	Entries []Entry
	// Size is the end of the last entry, before the header and before
	// rounding to the block alignment.
	Size int
}

// NewLayout places uniforms in order, padding each to its std140 base
// alignment.
func NewLayout(uniforms []Uniform) (*Layout, error) {
	l := &Layout{Entries: make([]Entry, 0, len(uniforms))}
	seen := make(map[string]bool, len(uniforms))
	offset := 0
	for _, u := range uniforms {
		t, err := ParseType(u.Type)
		if err != nil {
			return nil, fmt.Errorf("uniform %s: %w", u.Name, err)
		}
		if u.Name == "" || u.Name == HeaderName || seen[u.Name] {
			return nil, fmt.Errorf("uniform %q: duplicate or reserved name", u.Name)
		}
		seen[u.Name] = true
		offset = roundUp(offset, t.align())
		l.Entries = append(l.Entries, Entry{
			Name:   u.Name,
			Type:   t,
			Source: u.Source,
			Offset: offset,
			Size:   t.size(),
		})
		offset += t.size()
	}
	l.Size = offset
	return l, nil
}

// MustLayout is NewLayout for static uniform lists.
func MustLayout(uniforms []Uniform) *Layout {
	l, err := NewLayout(uniforms)
	if err != nil {
		panic(err)
	}
	return l
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}

// Offset returns the packed-region offset of name.
func (l *Layout) Offset(name string) (int, bool) {
	for _, e := range l.Entries {
		if e.Name == name {
			return e.Offset, true
		}
	}
	return 0, false
}

// BufferSize is the byte size of the GPU buffer: header plus the packed
// region rounded up to 16.
func (l *Layout) BufferSize() int {
	return HeaderSize + roundUp(l.Size, 16)
}

// Declaration returns the GLSL block declaration for the layout.
func (l *Layout) Declaration(block string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "layout(std140) uniform %s {\n", block)
	fmt.Fprintf(&b, "    vec4 %s;\n", HeaderName)
	for _, e := range l.Entries {
		fmt.Fprintf(&b, "    %s %s;\n", e.Type, e.Name)
	}
	b.WriteString("};\n")
	return b.String()
}

// Pack encodes f into dst following the layout and returns the buffer,
// growing it to BufferSize if needed. Padding bytes are zeroed.
func (l *Layout) Pack(dst []byte, f *FrameValues) []byte {
	n := l.BufferSize()
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	clear(dst)

	le := binary.LittleEndian
	le.PutUint32(dst[0:], math.Float32bits(float32(f.Frame)))
	le.PutUint32(dst[4:], math.Float32bits(f.Time))
	le.PutUint32(dst[8:], math.Float32bits(f.Delta))

	var vals [16]float32
	for _, e := range l.Entries {
		got := f.value(e.Source, &vals)
		base := HeaderSize + e.Offset
		if e.Type == TypeInt {
			le.PutUint32(dst[base:], uint32(int32(vals[0])))
			continue
		}
		for i := 0; i < e.Type.components() && i < got; i++ {
			le.PutUint32(dst[base+4*i:], math.Float32bits(vals[i]))
		}
	}
	return dst
}

// CommonUniforms is the block shared by every pipeline.
var CommonUniforms = []Uniform{
	{Name: "uTime", Type: "float", Source: SourceTime},
	{Name: "uResolution", Type: "vec2", Source: SourceResolution},
	{Name: "uPointer", Type: "vec2", Source: SourcePointer},
	{Name: "uProgress", Type: "float", Source: SourceProgress},
	{Name: "uLevel", Type: "int", Source: SourceLevel},
	{Name: "uHint", Type: "float", Source: SourceHint},
	{Name: "uReveal", Type: "vec4", Source: SourceReveal},
	{Name: "uAuroraTint", Type: "vec3", Source: SourceAuroraTint},
	{Name: "uProjection", Type: "mat4", Source: SourceProjection},
}

// BlockName is the GLSL name of the shared block.
const BlockName = "Common"
