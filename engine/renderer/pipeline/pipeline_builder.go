package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithKey overrides the pipeline key derived from the material.
func WithKey(key string) PipelineBuilderOption {
	return func(p *pipeline) {
		if key != "" {
			p.pipelineKey = key
		}
	}
}

// WithTransparent enables blending and disables depth writes, regardless of the
// material opacity.
//
// Parameters:
//   - transparent: whether the material is drawn as transparent
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTransparent(transparent bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = transparent
		p.depthWriteEnabled = !transparent
	}
}

// WithDepthFormat sets the depth attachment format. Defaults to wgpu.TextureFormatDepth24Plus.
func WithDepthFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithDepth sets depth testing and depth writing. Shadow passes keep both on; overlay
// materials drawn on top of the scene turn both off.
//
// Parameters:
//   - test: compare against the depth buffer
//   - write: write fragment depth
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithDepthBias sets the constant and slope scaled depth bias, used by the depth and
// distance flavors to avoid shadow acne.
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithCullMode sets which faces are culled. Defaults to wgpu.CullModeNone so both sides
// of animated faces stay visible.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology overrides the primitive topology derived from the flavor.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order of front faces.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the color channels written by the fragment stage.
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// WithBlendState sets the blend state used when blending is enabled. Additive particles
// use wgpu.BlendFactorOne for both color factors.
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		if blendState != nil {
			p.blendState = blendState
		}
	}
}
