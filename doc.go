// Package vstage implements the per-vertex geometry transform stage of a
// rendering pipeline: model-space vertices in, clip-space positions plus a
// configurable set of interpolated attributes out.
//
// # Overview
//
// The stage has two jobs. First, it forwards optional per-vertex attributes
// (surface normal, texture coordinate, color) selected at build time by a
// [Variant] bitmask. Each of the eight flag combinations is a distinct
// input/output contract, not a runtime branch: enabling an attribute changes
// the declared vertex layout and the generated shader interface.
//
// Second, it packs geometry into a horizontal sub-region of the render
// target entirely in clip space, so two independently offset sub-views
// (such as the left and right eye of a stereo pair) can share one target
// without any per-draw viewport state change. See [PackClip] for the
// algorithm.
//
// # Usage
//
//	stage := vstage.NewStage(vstage.VariantNorm | vstage.VariantTex)
//
//	block := vstage.TransformBlock{
//	    Model:   vstage.Identity(),
//	    View:    view,
//	    Proj:    proj,
//	    XOffset: vstage.XOffsetLeft,
//	}
//
//	out := stage.Invoke(&block, vstage.VertexInput{
//	    Position: vstage.V3(0, 1, -2),
//	    Normal:   vstage.V3(0, 1, 0),
//	    Texcoord: vstage.V2(0.5, 0.5),
//	})
//
// The same semantics run on the GPU: [ShaderSource] generates the WGSL for
// a variant, and the backend/wgpu package compiles it and builds the
// matching render pipeline.
//
// # Invocation model
//
// Stage invocations are pure and stateless. The [TransformBlock] is the
// only shared input; the host must treat it as immutable for the span of a
// draw (update-then-draw, never update-during-draw). Invocations never
// observe each other, never block, and never return errors: numeric
// degeneracies (a clip-space w near zero) propagate as non-finite values
// and are expected to be discarded by downstream clipping.
//
// # Logging
//
// vstage produces no log output by default. Call [SetLogger] to enable
// structured logging in this package and its sub-packages.
package vstage
