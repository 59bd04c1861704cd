package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineOption configures a QuadPipeline.
type PipelineOption func(*pipelineConfig)

type pipelineConfig struct {
	format gputypes.TextureFormat
	filter gputypes.FilterMode
	spirv  bool
}

func defaultPipelineConfig() pipelineConfig {
	return pipelineConfig{
		format: gputypes.TextureFormatBGRA8Unorm,
		filter: gputypes.FilterModeNearest,
	}
}

// WithTargetFormat sets the color format of the render pass the pipeline
// draws into. Default: BGRA8Unorm.
func WithTargetFormat(f gputypes.TextureFormat) PipelineOption {
	return func(c *pipelineConfig) {
		c.format = f
	}
}

// WithLinearFilter samples pages with linear filtering instead of nearest.
// Only useful when glyphs are drawn scaled.
func WithLinearFilter() PipelineOption {
	return func(c *pipelineConfig) {
		c.filter = gputypes.FilterModeLinear
	}
}

// WithSPIRV makes the pipeline compile its shader to SPIR-V with naga
// instead of handing WGSL to the device.
func WithSPIRV() PipelineOption {
	return func(c *pipelineConfig) {
		c.spirv = true
	}
}

// QuadPipeline draws QuadBatcher output into a render pass owned by the host.
//
// Architecture:
//
//	QuadPipeline owns shader, layouts, pipeline, sampler
//	one viewport uniform buffer and bind group (group 0)
//	one bind group per page texture (group 1), destroyed with the texture
//	vertex and index buffers, grown as needed and reused across frames
//
// GPU objects are created on the first Prepare.
type QuadPipeline struct {
	device hal.Device
	queue  hal.Queue
	cfg    pipelineConfig

	mu        sync.Mutex
	destroyed bool

	shader         hal.ShaderModule
	viewportLayout hal.BindGroupLayout
	textureLayout  hal.BindGroupLayout
	pipeLayout     hal.PipelineLayout
	pipeline       hal.RenderPipeline
	sampler        hal.Sampler

	uniformBuf    hal.Buffer
	viewportGroup hal.BindGroup
	textureGroups map[*Texture]hal.BindGroup

	vertBuf     hal.Buffer
	vertCap     uint64
	idxBuf      hal.Buffer
	idxCapQuads int

	draws []quadDraw
}

// quadDraw is one indexed draw of a batch.
type quadDraw struct {
	texture    *Texture
	group      hal.BindGroup
	indexCount uint32
	baseVertex int32
}

// NewQuadPipeline returns a pipeline for device and queue.
func NewQuadPipeline(device hal.Device, queue hal.Queue, opts ...PipelineOption) (*QuadPipeline, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	cfg := defaultPipelineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &QuadPipeline{
		device:        device,
		queue:         queue,
		cfg:           cfg,
		textureGroups: make(map[*Texture]hal.BindGroup),
	}, nil
}

// NewQuadPipelineFromProvider returns a pipeline sharing the device of an
// external provider. See NewHALUploaderFromProvider.
func NewQuadPipelineFromProvider(provider any, opts ...PipelineOption) (*QuadPipeline, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewQuadPipeline(device, queue, opts...)
}

// Prepare uploads the batches of b for a target of width x height pixels.
// The draws are replayed by Record.
func (p *QuadPipeline) Prepare(b *QuadBatcher, width, height uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroyed {
		return ErrPipelineDestroyed
	}
	if err := p.ensurePipeline(); err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(p.uniformBuf, 0, makeViewportUniform(width, height)); err != nil {
		return fmt.Errorf("write viewport uniform: %w", err)
	}

	p.draws = p.draws[:0]
	batches := b.Batches()
	if len(batches) == 0 {
		return nil
	}

	maxQuads := 0
	var vertexData []byte
	vertex := 0
	for _, batch := range batches {
		group, err := p.textureGroup(batch.Texture)
		if err != nil {
			p.draws = p.draws[:0]
			return err
		}
		vertexData = append(vertexData, buildQuadVertexData(batch.Quads)...)
		p.draws = append(p.draws, quadDraw{
			texture:    batch.Texture,
			group:      group,
			indexCount: uint32(len(batch.Quads) * 6), //nolint:gosec // bounded by maxQuadsPerBatch
			baseVertex: int32(vertex),                //nolint:gosec // vertex count fits int32
		})
		vertex += len(batch.Quads) * 4
		maxQuads = max(maxQuads, len(batch.Quads))
	}

	if err := p.ensureVertexBuffer(uint64(len(vertexData))); err != nil {
		p.draws = p.draws[:0]
		return err
	}
	if err := p.queue.WriteBuffer(p.vertBuf, 0, vertexData); err != nil {
		p.draws = p.draws[:0]
		return fmt.Errorf("write quad vertices: %w", err)
	}
	if err := p.ensureIndexBuffer(maxQuads); err != nil {
		p.draws = p.draws[:0]
		return err
	}

	glyphfont.Logger().Debug("gpu: quads prepared",
		"quads", b.Len(), "draws", len(p.draws), "binds", b.Binds())
	return nil
}

// Record records the draws of the last Prepare into rp. Draws of textures
// released since Prepare, e.g. pages evicted by a bounded atlas, are
// skipped; their bind groups are already destroyed.
func (p *QuadPipeline) Record(rp hal.RenderPassEncoder) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroyed || len(p.draws) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.viewportGroup, nil)
	rp.SetVertexBuffer(0, p.vertBuf, 0)
	rp.SetIndexBuffer(p.idxBuf, gputypes.IndexFormatUint16, 0)

	var bound *Texture
	skipped := 0
	for _, d := range p.draws {
		if d.texture.Released() {
			skipped++
			continue
		}
		if d.texture != bound {
			rp.SetBindGroup(1, d.group, nil)
			bound = d.texture
		}
		rp.DrawIndexed(d.indexCount, 1, 0, d.baseVertex, 0)
	}
	if skipped > 0 {
		glyphfont.Logger().Warn("gpu: skipped draws of released textures", "draws", skipped)
	}
}

// Draws returns the number of draws recorded by the last Prepare.
func (p *QuadPipeline) Draws() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.draws)
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times. Page textures stay valid.
func (p *QuadPipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroyed {
		return
	}
	p.destroyed = true
	p.draws = nil

	for tex, group := range p.textureGroups {
		p.device.DestroyBindGroup(group)
		delete(p.textureGroups, tex)
	}
	if p.vertBuf != nil {
		p.device.DestroyBuffer(p.vertBuf)
		p.vertBuf = nil
		p.vertCap = 0
	}
	if p.idxBuf != nil {
		p.device.DestroyBuffer(p.idxBuf)
		p.idxBuf = nil
		p.idxCapQuads = 0
	}
	p.destroyPipeline()
}

// ensurePipeline creates the shader, layouts, sampler, render pipeline and
// viewport uniform on first use.
func (p *QuadPipeline) ensurePipeline() error {
	if p.pipeline != nil {
		return nil
	}
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		return err
	}
	return nil
}

func (p *QuadPipeline) createPipeline() error {
	source := hal.ShaderSource{WGSL: glyphQuadShaderSource}
	if p.cfg.spirv {
		code, err := CompileQuadShader()
		if err != nil {
			return err
		}
		source = hal.ShaderSource{SPIRV: code}
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_quad_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad shader: %w", err)
	}
	p.shader = shader

	// Group 0: viewport uniform (vertex).
	viewportLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_quad_viewport_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad viewport layout: %w", err)
	}
	p.viewportLayout = viewportLayout

	// Group 1: page texture + sampler (fragment).
	textureLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_quad_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad texture layout: %w", err)
	}
	p.textureLayout = textureLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.viewportLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyph_quad_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    p.cfg.filter,
		MinFilter:    p.cfg.filter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyph_quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.cfg.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad pipeline: %w", err)
	}
	p.pipeline = pipeline

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_quad_uniform",
		Size:  quadUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	viewportGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_quad_viewport_bind",
		Layout: p.viewportLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: quadUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph_quad viewport bind group: %w", err)
	}
	p.viewportGroup = viewportGroup
	return nil
}

// textureGroup returns the bind group sampling tex, creating it on first use.
// The group is destroyed when the texture is released.
func (p *QuadPipeline) textureGroup(tex *Texture) (hal.BindGroup, error) {
	if group, ok := p.textureGroups[tex]; ok {
		return group, nil
	}
	if tex.Released() {
		return nil, ErrTextureReleased
	}
	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_quad_texture_bind",
		Layout: p.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: tex.View().NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create glyph_quad texture bind group: %w", err)
	}
	if !tex.addReleaseHook(func() { p.dropTextureGroup(tex) }) {
		p.device.DestroyBindGroup(group)
		return nil, ErrTextureReleased
	}
	p.textureGroups[tex] = group
	return group, nil
}

// dropTextureGroup destroys the bind group of a released texture.
func (p *QuadPipeline) dropTextureGroup(tex *Texture) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if group, ok := p.textureGroups[tex]; ok {
		p.device.DestroyBindGroup(group)
		delete(p.textureGroups, tex)
	}
}

// TextureGroups returns the number of live per-texture bind groups.
func (p *QuadPipeline) TextureGroups() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textureGroups)
}

// ensureVertexBuffer grows the vertex buffer to hold size bytes.
func (p *QuadPipeline) ensureVertexBuffer(size uint64) error {
	if p.vertBuf != nil && p.vertCap >= size {
		return nil
	}
	capacity := max(size, p.vertCap*2)
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_quad_verts",
		Size:  capacity,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	if p.vertBuf != nil {
		p.device.DestroyBuffer(p.vertBuf)
	}
	p.vertBuf = buf
	p.vertCap = capacity
	return nil
}

// ensureIndexBuffer grows the index buffer to cover numQuads quads. Every
// batch reuses the same indices with its own base vertex.
func (p *QuadPipeline) ensureIndexBuffer(numQuads int) error {
	if p.idxBuf != nil && p.idxCapQuads >= numQuads {
		return nil
	}
	capQuads := min(max(numQuads, p.idxCapQuads*2), maxQuadsPerBatch)
	data := buildQuadIndexData(capQuads)
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_quad_indices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create index buffer: %w", err)
	}
	if err := p.queue.WriteBuffer(buf, 0, data); err != nil {
		p.device.DestroyBuffer(buf)
		return fmt.Errorf("write quad indices: %w", err)
	}
	if p.idxBuf != nil {
		p.device.DestroyBuffer(p.idxBuf)
	}
	p.idxBuf = buf
	p.idxCapQuads = capQuads
	return nil
}

// destroyPipeline releases pipeline objects in reverse creation order.
func (p *QuadPipeline) destroyPipeline() {
	if p.viewportGroup != nil {
		p.device.DestroyBindGroup(p.viewportGroup)
		p.viewportGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.viewportLayout != nil {
		p.device.DestroyBindGroupLayout(p.viewportLayout)
		p.viewportLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
