package vstage

import (
	"encoding/binary"
	"math"
)

// VertexInput is one invocation's model-space attributes. Position is
// always meaningful; Normal, Texcoord and Color are read only when the
// stage's variant enables the corresponding flag, and ignored otherwise.
type VertexInput struct {
	Position Vec3
	Normal   Vec3
	Texcoord Vec2
	Color    Vec3
}

// VertexOutput is one invocation's produced interpolants. ClipPosition is
// the rasterizer-consumed position; WorldPosition is always emitted. The
// optional fields mirror the presence of the corresponding inputs: they
// hold zero values under variants that do not enable them.
type VertexOutput struct {
	ClipPosition  Vec4
	WorldPosition Vec3
	WorldNormal   Vec3
	Texcoord      Vec2
	Color         Vec3
}

// PackVertices serializes vertices into the interleaved float32 layout the
// variant declares (see Variant.Attributes), ready for upload to a vertex
// buffer. Attributes outside the variant are not written; the result is
// len(vertices) * v.Stride() bytes.
func PackVertices(v Variant, vertices []VertexInput) []byte {
	stride := v.Stride()
	buf := make([]byte, len(vertices)*stride)
	offset := 0
	for i := range vertices {
		vert := &vertices[i]
		putVec3(buf[offset:], vert.Position)
		n := offset + 12
		if v.Has(VariantNorm) {
			putVec3(buf[n:], vert.Normal)
			n += 12
		}
		if v.Has(VariantTex) {
			putF32(buf[n:], vert.Texcoord.X)
			putF32(buf[n+4:], vert.Texcoord.Y)
			n += 8
		}
		if v.Has(VariantColor) {
			putVec3(buf[n:], vert.Color)
		}
		offset += stride
	}
	return buf
}

func putVec3(buf []byte, v Vec3) {
	putF32(buf, v.X)
	putF32(buf[4:], v.Y)
	putF32(buf[8:], v.Z)
}

func putF32(buf []byte, f float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
}
