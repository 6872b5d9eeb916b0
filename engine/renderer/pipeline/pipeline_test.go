package pipeline

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterial(t *testing.T, flavor shader.Flavor, opts ...material.MaterialBuilderOption) material.Material {
	t.Helper()
	m, err := material.NewMaterial(flavor, opts...)
	require.NoError(t, err)
	return m
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline(newMaterial(t, shader.FlavorPhong))

	assert.Equal(t, "phong", p.PipelineKey())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.False(t, p.BlendEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Nil(t, p.RenderPipeline())
	assert.Equal(t, p.Material().VertexShader(), p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, p.Material().FragmentShader(), p.Shader(shader.ShaderTypeFragment))
}

func TestPipelineFollowsMaterial(t *testing.T) {
	points := NewPipeline(newMaterial(t, shader.FlavorPoints, material.WithName("sparks")))
	assert.Equal(t, "sparks", points.PipelineKey())
	assert.Equal(t, wgpu.PrimitiveTopologyPointList, points.Topology())

	faded := NewPipeline(newMaterial(t, shader.FlavorBasic, material.WithOpacity(0.5)))
	assert.True(t, faded.BlendEnabled())
	assert.False(t, faded.DepthWriteEnabled())

	depth := NewPipeline(newMaterial(t, shader.FlavorDepth, material.WithOpacity(0.5)))
	assert.False(t, depth.BlendEnabled())
	assert.True(t, depth.DepthWriteEnabled())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline(newMaterial(t, shader.FlavorBasic),
		WithKey("overlay"),
		WithTransparent(true),
		WithDepth(false, false),
		WithDepthBias(2, 1.5),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithBlendState(nil),
	)

	assert.Equal(t, "overlay", p.PipelineKey())
	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthTestEnabled())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.NotNil(t, p.BlendState())
}

func TestPipelineDescriptor(t *testing.T) {
	m := newMaterial(t, shader.FlavorLambert, material.WithOpacity(0.25))
	p := NewPipeline(m, WithDepth(false, false))

	desc := p.Descriptor(nil, nil, nil, wgpu.TextureFormatBGRA8Unorm, 0)

	assert.Equal(t, "lambert Render Pipeline", desc.Label)
	assert.Equal(t, "main", desc.Vertex.EntryPoint)
	assert.Len(t, desc.Vertex.Buffers, len(m.VertexShader().VertexLayouts()))
	require.NotNil(t, desc.Fragment)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, desc.Fragment.Targets[0].Format)
	assert.Equal(t, p.BlendState(), desc.Fragment.Targets[0].Blend)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
	require.NotNil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.CompareFunctionAlways, desc.DepthStencil.DepthCompare)
	assert.False(t, desc.DepthStencil.DepthWriteEnabled)
	assert.Equal(t, wgpu.TextureFormatDepth24Plus, desc.DepthStencil.Format)

	opaque := NewPipeline(newMaterial(t, shader.FlavorLambert)).Descriptor(nil, nil, nil, wgpu.TextureFormatBGRA8Unorm, 4)
	assert.Nil(t, opaque.Fragment.Targets[0].Blend)
	assert.Equal(t, uint32(4), opaque.Multisample.Count)
	assert.Equal(t, wgpu.CompareFunctionLess, opaque.DepthStencil.DepthCompare)
}

func TestPipelineModuleDescriptors(t *testing.T) {
	m := newMaterial(t, shader.FlavorPhong, material.WithName("shell"))
	p := NewPipeline(m).(*pipeline)

	vs, fs, err := p.moduleDescriptors()
	require.NoError(t, err)
	assert.Equal(t, "shell.vert", vs.Label)
	assert.Equal(t, "shell.frag", fs.Label)
	require.NotNil(t, vs.GLSLDescriptor)
	require.NotNil(t, fs.GLSLDescriptor)
	assert.Equal(t, wgpu.ShaderStageVertex, vs.GLSLDescriptor.ShaderStage)
	assert.Equal(t, wgpu.ShaderStageFragment, fs.GLSLDescriptor.ShaderStage)

	for _, code := range []string{vs.GLSLDescriptor.Code, fs.GLSLDescriptor.Code} {
		assert.True(t, strings.HasPrefix(code, "#version 450\n"))
		assert.NotContains(t, code, "attribute ")
		assert.NotContains(t, code, "gl_FragColor")
	}
	assert.Equal(t, m.FragmentShader().VulkanSource(m.VertexShader().VaryingLocations()), fs.GLSLDescriptor.Code)
}
