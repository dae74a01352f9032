package vstage

import "github.com/gogpu/vstage/internal/parallel"

// Stage is one build variant of the vertex transform stage. It is a pure
// per-invocation function: no state persists across invocations, and the
// only shared input is the read-only TransformBlock.
//
// Stage is safe for concurrent use.
type Stage struct {
	variant Variant
}

// NewStage creates a stage for the given variant. Undefined flag bits are
// masked off.
func NewStage(v Variant) *Stage {
	return &Stage{variant: v & variantMask}
}

// Variant returns the variant the stage was built for.
func (s *Stage) Variant() Variant {
	return s.variant
}

// Invoke runs one vertex invocation: it computes the world and clip
// positions and forwards the variant's enabled attributes.
//
// The world normal is transformed with a zero homogeneous component
// (direction, not point), so it ignores the model translation. This is
// correct for uniform scale only; non-uniform scale would need the
// inverse-transpose of the model matrix, which the stage does not apply.
//
// Invoke never fails: a clip-space w at or near zero yields non-finite
// components in ClipPosition, left for downstream clipping to discard.
func (s *Stage) Invoke(block *TransformBlock, in VertexInput) VertexOutput {
	var out VertexOutput

	worldPos := block.Model.MulVec4(in.Position.Point())
	out.WorldPosition = worldPos.XYZ()

	if s.variant.Has(VariantNorm) {
		out.WorldNormal = block.Model.MulDirection(in.Normal)
	}
	if s.variant.Has(VariantTex) {
		out.Texcoord = V2(in.Texcoord.X, 1-in.Texcoord.Y)
	}
	if s.variant.Has(VariantColor) {
		out.Color = in.Color
	}

	clip := block.Proj.MulVec4(block.View.MulVec4(worldPos))
	out.ClipPosition = PackClip(clip, block.XOffset)
	return out
}

// TransformAll runs one invocation per input vertex across parallel
// workers and returns the outputs in input order. Invocations share only
// the read-only block and execute in no particular order.
func (s *Stage) TransformAll(block *TransformBlock, in []VertexInput) []VertexOutput {
	out := make([]VertexOutput, len(in))
	parallel.For(len(in), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = s.Invoke(block, in[i])
		}
	})
	return out
}

// PackClip remaps a standard clip-space position so the draw lands in a
// half-width horizontal band of the target, shifted by xoffset:
//
//	c.x = c.x / (2*c.w)   pre-scale the eventual NDC x by one half
//	c.x = c.x + xoffset   shift the band
//	c.x = c.x * c.w       restore clip-space (pre-divide) form
//
// After the hardware's own perspective divide the net effect is
//
//	x_ndc' = x_ndc/2 + xoffset
//
// so two draws with xoffset -0.5 and +0.5 pack into the left and right
// halves of NDC x in [-1, 1] with no other pipeline state change. The y,
// z and w components pass through untouched.
//
// PackClip assumes c.W > 0 (vertex in front of the camera, not yet
// clipped). For c.W at or near zero the divide/remultiply is degenerate
// and produces non-finite or sign-flipped results; such vertices are
// expected to be discarded by later clipping, not corrected here.
func PackClip(c Vec4, xoffset float32) Vec4 {
	c.X = c.X / (2 * c.W)
	c.X = c.X + xoffset
	c.X = c.X * c.W
	return c
}
