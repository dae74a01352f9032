// Package wgpu builds GPU render pipelines for the vstage vertex
// transform stage on top of gogpu/wgpu.
//
// Each [vstage.Variant] compiles to its own pipeline: the generated WGSL
// is translated to SPIR-V through gogpu/naga, wrapped in a hal shader
// module, and paired with the vertex buffer layout the variant declares.
// A [PipelineCache] builds and caches the pipelines lazily, one per
// variant.
//
// All stage failure is build-time. Shader compilation errors, attribute
// mismatches between the variant and a host-supplied vertex layout, and
// uniform blocks of the wrong byte size are all reported as errors from
// pipeline construction or upload; there is no runtime error path inside
// the stage itself.
//
// The uniform block contract is positional: the host writes model, view,
// proj and xoffset at the offsets fixed by [vstage.TransformBlockSize]
// and the TransformBlock layout. [StagePipeline.UpdateTransform] packs a
// block correctly; [StagePipeline.WriteRawTransform] accepts pre-packed
// bytes and rejects any other length.
package wgpu
