package layout

import (
	"image/color"

	"github.com/gogpu/gputypes"
)

// VertexStride is the size in bytes of one vertex written by AppendVertices:
// position (float32x2), texture coordinate (float32x2) and color (float32x4).
const VertexStride = 32

// FloatsPerVertex is VertexStride in float32 units.
const FloatsPerVertex = VertexStride / 4

// VerticesPerQuad is the number of vertices emitted for one quad, drawn as
// two triangles.
const VerticesPerQuad = 6

// VertexBufferLayouts describes the vertex data written by AppendVertices.
func VertexBufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// PrimitiveState is the primitive assembly matching AppendVertices.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}

// AppendVertices appends two triangles per quad to dst. Quads without a
// texture region get zero texture coordinates.
func AppendVertices(dst []float32, quads []Quad) []float32 {
	for i := range quads {
		q := &quads[i]
		x0, y0, x1, y1 := float32(q.X0), float32(q.Y0), float32(q.X1), float32(q.Y1)
		u0, v0, u1, v1 := float32(q.Tex.X0), float32(q.Tex.Y0), float32(q.Tex.X1), float32(q.Tex.Y1)
		r, g, b, a := premultiplied(q.Color)

		dst = append(dst,
			x0, y0, u0, v0, r, g, b, a,
			x1, y0, u1, v0, r, g, b, a,
			x0, y1, u0, v1, r, g, b, a,

			x1, y0, u1, v0, r, g, b, a,
			x1, y1, u1, v1, r, g, b, a,
			x0, y1, u0, v1, r, g, b, a,
		)
	}
	return dst
}

// premultiplied converts an 8-bit color to normalized float components.
// color.RGBA is already alpha-premultiplied.
func premultiplied(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// AppendVertices appends the geometry of the visible lines to dst.
func (e *Engine) AppendVertices(dst []float32) []float32 {
	for i := e.visibleStart; i < e.visibleEnd; i++ {
		for j := range e.lines[i].Boxes {
			dst = AppendVertices(dst, e.lines[i].Boxes[j].quads)
		}
	}
	return dst
}
