//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// RendererConfig holds the render target format and colors.
type RendererConfig struct {
	// Format is the color format of the target views passed to Draw.
	Format gputypes.TextureFormat

	// ClearColor fills the target before the text is drawn.
	ClearColor gputypes.Color

	// TextColor tints the atlas samples (RGBA, straight alpha).
	TextColor [4]float32
}

// DefaultRendererConfig returns a BGRA8 target, dark blue clear color
// and yellow text.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Format:     gputypes.TextureFormatBGRA8Unorm,
		ClearColor: gputypes.Color{R: 0.2, G: 0.2, B: 0.6, A: 1},
		TextColor:  [4]float32{1, 1, 0, 1},
	}
}

// Renderer draws the contents of a GeometryBuffer with an atlas texture.
//
// Architecture:
//
//	Program owns the shader modules
//	Texture owns the atlas texture, view and sampler
//	GeometryBuffer owns the vertex buffers
//	Renderer owns the layouts, pipeline, uniform buffer and bind group
type Renderer struct {
	noCopy noCopy

	device *wgpu.Device
	queue  *wgpu.Queue

	program  *Program
	geometry *GeometryBuffer
	texture  *Texture
	config   RendererConfig

	bindLayout *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	pipeline   *wgpu.RenderPipeline
	uniformBuf *wgpu.Buffer
	bindGroup  *wgpu.BindGroup

	textColor Uniform
}

// NewRenderer builds the render pipeline for program and binds texture.
// The vertex buffers are fetched from geometry on every Draw, so a
// growing upload in between is picked up.
func NewRenderer(device *wgpu.Device, program *Program, geometry *GeometryBuffer, texture *Texture, cfg RendererConfig) (*Renderer, error) {
	if device == nil || device.Queue() == nil {
		return nil, ErrNilDevice
	}
	if program == nil || geometry == nil || texture == nil {
		return nil, fmt.Errorf("gpu: renderer needs a program, geometry and texture")
	}

	textColor, err := program.UniformLocation(TextColorUniform)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		device:    device,
		queue:     device.Queue(),
		program:   program,
		geometry:  geometry,
		texture:   texture,
		config:    cfg,
		textColor: textColor,
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createBindings(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.SetTextColor(cfg.TextColor); err != nil {
		r.Destroy()
		return nil, err
	}

	slogger().Debug("text renderer created", "format", cfg.Format)
	return r, nil
}

// createPipeline creates the bind group layout, pipeline layout and
// render pipeline with straight alpha blending and back-face culling.
func (r *Renderer) createPipeline() error {
	// Bind group layout:
	//   Binding 0: TextUniforms (uniform buffer, fragment)
	//   Binding 1: atlas texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "fontview_text_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create text bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "fontview_text_pipe_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create text pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	alphaBlend := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}

	vertex, fragment := r.program.Modules()
	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "fontview_text_pipeline",
		Layout: r.pipeLayout,
		Vertex: wgpu.VertexState{
			Module:     vertex,
			EntryPoint: "vs_main",
			Buffers:    VertexLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fragment,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.config.Format,
					Blend:     &alphaBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create text pipeline: %w", err)
	}
	r.pipeline = pipeline

	return nil
}

// createBindings creates the uniform buffer and the bind group.
func (r *Renderer) createBindings() error {
	size := r.program.UniformSize()
	uniformBuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "fontview_text_uniform",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create text uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "fontview_text_bind",
		Layout: r.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuf, Offset: 0, Size: size},
			{Binding: 1, TextureView: r.texture.View()},
			{Binding: 2, Sampler: r.texture.Sampler()},
		},
	})
	if err != nil {
		return fmt.Errorf("create text bind group: %w", err)
	}
	r.bindGroup = bindGroup

	return nil
}

// SetTextColor writes the tint color into the uniform buffer.
func (r *Renderer) SetTextColor(c [4]float32) error {
	buf := make([]byte, r.textColor.Size)
	for i, v := range c {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	if err := r.queue.WriteBuffer(r.uniformBuf, r.textColor.Offset, buf); err != nil {
		return fmt.Errorf("write text color: %w", err)
	}
	r.config.TextColor = c
	return nil
}

// TextColor returns the current tint color.
func (r *Renderer) TextColor() [4]float32 {
	return r.config.TextColor
}

// Draw clears target and draws the first vertexCount vertices of the
// geometry buffer into it. The commands are submitted to the queue; the
// caller presents the target.
func (r *Renderer) Draw(target *wgpu.TextureView, vertexCount uint32) error {
	if target == nil {
		return ErrNilTarget
	}
	if vertexCount > r.geometry.VertexCount() {
		return fmt.Errorf("%w: %d > %d", ErrVertexCount, vertexCount, r.geometry.VertexCount())
	}

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "fontview_text_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	rp, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "fontview_text_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.config.ClearColor,
			},
		},
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin render pass: %w", err)
	}
	if vertexCount > 0 {
		positions, texcoords := r.geometry.Buffers()
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(PositionSlot, positions, 0)
		rp.SetVertexBuffer(TexCoordSlot, texcoords, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	if err := rp.End(); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end render pass: %w", err)
	}

	cmdBuf, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish encoding: %w", err)
	}
	if _, err := r.queue.Submit(cmdBuf); err != nil {
		cmdBuf.Release()
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// Destroy releases the renderer's own GPU objects. The program, texture
// and geometry buffer are owned by the caller. Safe to call more than once.
func (r *Renderer) Destroy() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Release()
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.pipeLayout.Release()
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.bindLayout.Release()
		r.bindLayout = nil
	}
}
