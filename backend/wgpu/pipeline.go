package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vstage"
)

// Config configures a stage pipeline build.
type Config struct {
	// Variant selects the optional attribute channels. Each variant is a
	// distinct pipeline with its own vertex layout and shader interface.
	Variant vstage.Variant

	// ColorFormat is the render target format.
	// If zero, defaults to BGRA8Unorm.
	ColorFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count. If 0, defaults to 1.
	SampleCount uint32

	// VertexBuffers optionally overrides the canonical interleaved vertex
	// layout. When set, the layout is validated against the variant's
	// declared attributes and the build fails on any mismatch. When nil,
	// VertexLayout(Variant) is used.
	VertexBuffers []gputypes.VertexBufferLayout
}

// StagePipeline holds the GPU objects for one build variant of the vertex
// transform stage: the compiled shader, the pipeline, and the uniform
// buffer backing the TransformBlock.
//
// The uniform buffer is the draw's only shared state. The host must
// follow update-then-draw discipline: UpdateTransform between draws,
// never while a draw's invocations are in flight.
type StagePipeline struct {
	device  hal.Device
	queue   hal.Queue
	variant vstage.Variant

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup

	destroyed bool
}

// NewStagePipeline builds the pipeline for cfg.Variant. All failure modes
// are build-time: shader compilation, attribute mismatches and resource
// creation errors are reported here, never during invocation.
func NewStagePipeline(device hal.Device, queue hal.Queue, cfg Config) (*StagePipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if !cfg.Variant.Valid() {
		return nil, fmt.Errorf("%w: 0x%x", ErrInvalidVariant, uint8(cfg.Variant))
	}
	if cfg.ColorFormat == 0 {
		cfg.ColorFormat = gputypes.TextureFormatBGRA8Unorm
	}
	if cfg.SampleCount == 0 {
		cfg.SampleCount = 1
	}

	buffers := cfg.VertexBuffers
	if buffers == nil {
		buffers = VertexLayout(cfg.Variant)
	} else if err := validateVertexBuffers(cfg.Variant, buffers); err != nil {
		return nil, err
	}

	p := &StagePipeline{
		device:  device,
		queue:   queue,
		variant: cfg.Variant,
	}
	if err := p.build(cfg, buffers); err != nil {
		p.Destroy()
		return nil, err
	}

	vstage.Logger().Info("vstage: pipeline built",
		"variant", cfg.Variant.String(), "stride", cfg.Variant.Stride())
	return p, nil
}

func (p *StagePipeline) build(cfg Config, buffers []gputypes.VertexBufferLayout) error {
	shader, err := compileVariantShader(p.device, cfg.Variant)
	if err != nil {
		return err
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vstage_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vstage_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "vstage_pipeline_" + cfg.Variant.String(),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vstage.VertexEntryPoint,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: vstage.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    cfg.ColorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: cfg.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vstage_transform_block",
		Size:  vstage.TransformBlockSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create transform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vstage_transform_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: vstage.TransformBlockSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create transform bind group: %w", err)
	}
	p.bindGroup = bindGroup

	return nil
}

// Variant returns the variant the pipeline was built for.
func (p *StagePipeline) Variant() vstage.Variant { return p.variant }

// Pipeline returns the render pipeline for encoding draws.
func (p *StagePipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// BindGroup returns the bind group carrying the transform block at
// @group(0).
func (p *StagePipeline) BindGroup() hal.BindGroup { return p.bindGroup }

// UpdateTransform packs the block into its uniform layout and uploads it.
// Call between draws only; the block must stay untouched for the span of
// a draw's invocations.
func (p *StagePipeline) UpdateTransform(block *vstage.TransformBlock) error {
	if p.destroyed {
		return ErrDestroyed
	}
	p.queue.WriteBuffer(p.uniformBuf, 0, block.Pack())
	return nil
}

// WriteRawTransform uploads a pre-packed transform block. The data length
// must be exactly TransformBlockSize; anything else indicates the host
// packed a different layout and is rejected as ErrLayoutMismatch. Field
// order within a correctly sized block is the host's contract to keep.
func (p *StagePipeline) WriteRawTransform(data []byte) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if len(data) != vstage.TransformBlockSize {
		return fmt.Errorf("%w: got %d bytes, want %d",
			ErrLayoutMismatch, len(data), vstage.TransformBlockSize)
	}
	p.queue.WriteBuffer(p.uniformBuf, 0, data)
	return nil
}

// UploadVertices packs the vertices into the variant's interleaved layout
// and uploads them to a new vertex buffer. The caller owns the buffer and
// destroys it via the device when the draw completes.
func (p *StagePipeline) UploadVertices(vertices []vstage.VertexInput) (hal.Buffer, error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}
	data := vstage.PackVertices(p.variant, vertices)
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vstage_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times.
func (p *StagePipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.destroyed = true
}

// VertexLayout returns the canonical interleaved vertex buffer layout for
// a variant: position at location 0, then the enabled attributes in norm,
// tex, color order at successive locations and offsets.
func VertexLayout(v vstage.Variant) []gputypes.VertexBufferLayout {
	attrs := v.Attributes()
	out := make([]gputypes.VertexAttribute, len(attrs))
	for i, a := range attrs {
		out[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(a.Components),
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(a.Location),
		}
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(v.Stride()),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  out,
		},
	}
}

// validateVertexBuffers checks a host-supplied layout against the
// variant's declared attributes. Every declared attribute location must
// be bound with the declared format; mismatches fail the build, wrapped
// around vstage.ErrAttributeMismatch.
func validateVertexBuffers(v vstage.Variant, buffers []gputypes.VertexBufferLayout) error {
	bound := make(map[uint32]gputypes.VertexFormat)
	for _, b := range buffers {
		for _, a := range b.Attributes {
			bound[a.ShaderLocation] = a.Format
		}
	}
	for _, a := range v.Attributes() {
		format, ok := bound[uint32(a.Location)]
		if !ok {
			return fmt.Errorf("%w: attribute %q (location %d) declared by variant %s is not bound",
				vstage.ErrAttributeMismatch, a.Name, a.Location, v)
		}
		if want := vertexFormat(a.Components); format != want {
			return fmt.Errorf("%w: attribute %q (location %d) bound with format %v, want %v",
				vstage.ErrAttributeMismatch, a.Name, a.Location, format, want)
		}
	}
	return nil
}

func vertexFormat(components int) gputypes.VertexFormat {
	switch components {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	default:
		return gputypes.VertexFormatFloat32x4
	}
}
