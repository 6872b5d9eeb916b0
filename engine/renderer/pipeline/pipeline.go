package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingShader is returned when a pipeline is created for a material without both stages.
var ErrMissingShader = errors.New("pipeline: material has no vertex or fragment shader")

// pipeline is the implementation of the Pipeline interface.
// It holds the render state a material is drawn with and, once created, the GPU pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	material material.Material

	// renderPipeline is set by Create, nil before
	renderPipeline *wgpu.RenderPipeline

	// The following properties are derived from the material and can be overridden with the builder options.

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask
	blendState          *wgpu.BlendState
	depthFormat         wgpu.TextureFormat
}

// Pipeline defines the interface for the render pipeline of one composed material. It holds
// the depth, blend, cull and topology state, builds the wgpu descriptor from the material's
// shaders and creates the GPU pipeline on a device.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the material name, or its flavor when unnamed
	PipelineKey() string

	// Material returns the material the pipeline draws.
	Material() material.Material

	// Shader retrieves the material shader of the given stage.
	//
	// Parameters:
	//   - shaderType: vertex or fragment
	//
	// Returns:
	//   - shader.Shader: the shader, nil for an unknown stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the created GPU pipeline, nil before Create.
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	DepthWriteEnabled() bool

	// DepthBias returns the depth bias value configured for this pipeline.
	DepthBias() int32

	// DepthBiasSlopeScale returns the depth bias slope scale configured for this pipeline.
	DepthBiasSlopeScale() float32

	// BlendEnabled returns whether blending is enabled for this pipeline.
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	BlendState() *wgpu.BlendState

	// Descriptor builds the render pipeline descriptor for already created shader modules.
	//
	// Parameters:
	//   - vertex: the module created from the material's vertex shader
	//   - fragment: the module created from the material's fragment shader
	//   - layout: the pipeline layout, nil for an automatic layout
	//   - format: the color target format
	//   - sampleCount: the multisample count, values < 1 are treated as 1
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor
	Descriptor(vertex, fragment *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor

	// Create compiles both stages on the device and creates the render pipeline. The
	// stages are handed to wgpu as their GLSL 450 translation, with the fragment varyings
	// linked to the vertex locations.
	//
	// Parameters:
	//   - device: the GPU device
	//   - format: the color target format
	//   - sampleCount: the multisample count
	//
	// Returns:
	//   - error: ErrMissingShader, or the device error
	Create(device *wgpu.Device, format wgpu.TextureFormat, sampleCount uint32) error

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates the render state for a material. Defaults follow the material:
// points draw as a point list, a material with opacity below 1 blends and skips depth
// writes, and the depth and distance flavors never blend.
//
// Parameters:
//   - m: the composed material
//   - opts: a variadic list of PipelineBuilderOption functions applied after the defaults
//
// Returns:
//   - Pipeline: a new Pipeline for the material
func NewPipeline(m material.Material, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       common.Coalesce(m.Name(), string(m.Flavor())),
		material:          m,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		depthFormat:       wgpu.TextureFormatDepth24Plus,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}

	switch m.Flavor() {
	case shader.FlavorPoints:
		p.topology = wgpu.PrimitiveTopologyPointList
	case shader.FlavorDepth, shader.FlavorDistance:
	default:
		if u, ok := m.Uniforms().Lookup("opacity"); ok && len(u.Value) > 0 && u.Value[0] < 1 {
			p.blendEnabled = true
			p.depthWriteEnabled = false
		}
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Material() material.Material {
	return p.material
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.material.VertexShader()
	case shader.ShaderTypeFragment:
		return p.material.FragmentShader()
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Descriptor(vertex, fragment *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor {
	vertexShader := p.material.VertexShader()
	fragmentShader := p.material.FragmentShader()

	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		target.Blend = p.blendState
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.depthTestEnabled {
		depthCompare = wgpu.CompareFunctionAlways
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vertex,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fragment,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: max(sampleCount, 1),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              p.depthFormat,
			DepthWriteEnabled:   p.depthWriteEnabled,
			DepthCompare:        depthCompare,
			DepthBias:           p.depthBias,
			DepthBiasSlopeScale: p.depthBiasSlopeScale,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}
}

// moduleDescriptors returns the vertex module and the fragment module linked to it.
func (p *pipeline) moduleDescriptors() (*wgpu.ShaderModuleDescriptor, *wgpu.ShaderModuleDescriptor, error) {
	vertexShader := p.material.VertexShader()
	fragmentShader := p.material.FragmentShader()
	if vertexShader == nil || fragmentShader == nil {
		return nil, nil, ErrMissingShader
	}
	return vertexShader.Module(), fragmentShader.LinkedModule(vertexShader.VaryingLocations()), nil
}

func (p *pipeline) Create(device *wgpu.Device, format wgpu.TextureFormat, sampleCount uint32) error {
	vsDesc, fsDesc, err := p.moduleDescriptors()
	if err != nil {
		return err
	}

	vs, err := device.CreateShaderModule(vsDesc)
	if err != nil {
		return fmt.Errorf("%s: %w", vsDesc.Label, err)
	}
	defer vs.Release()
	fs, err := device.CreateShaderModule(fsDesc)
	if err != nil {
		return fmt.Errorf("%s: %w", fsDesc.Label, err)
	}
	defer fs.Release()

	created, err := device.CreateRenderPipeline(p.Descriptor(vs, fs, nil, format, sampleCount))
	if err != nil {
		return fmt.Errorf("%s: %w", p.pipelineKey, err)
	}
	p.Release()
	p.renderPipeline = created
	return nil
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
