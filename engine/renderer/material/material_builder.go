package material

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material, also used to key its shaders
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuse is an option builder that sets the diffuse RGB color of the material.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(color common.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = color
	}
}

// WithOpacity is an option builder that sets the opacity of the material.
//
// Parameters:
//   - opacity: the alpha multiplier (0.0 = invisible, 1.0 = opaque)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = opacity
	}
}

// WithEmissive is an option builder that sets the emissive color of lit flavors.
//
// Parameters:
//   - color: the emissive color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color common.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = color
	}
}

// WithSpecular is an option builder that sets the specular color of the phong flavor.
//
// Parameters:
//   - color: the specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(color common.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.specular = color
	}
}

// WithShininess is an option builder that sets the specular exponent of the phong flavor.
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithRoughness is an option builder that sets the roughness factor of the standard flavor.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithMetalness is an option builder that sets the metalness factor of the standard flavor.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithSize is an option builder that sets the point size of the points flavor.
func WithSize(size float32) MaterialBuilderOption {
	return func(m *material) {
		m.size = size
	}
}

// WithSizeAttenuation enables perspective size attenuation for the points flavor.
//
// Parameters:
//   - scale: the attenuation scale, usually half the viewport height
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size attenuation option to a material
func WithSizeAttenuation(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.scale = scale
		m.defines["USE_SIZEATTENUATION"] = ""
	}
}

// WithReferencePosition sets the point distances are measured from in the distance flavor.
func WithReferencePosition(p common.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.referencePosition = p
	}
}

// WithDistanceRange sets the near and far distances the distance flavor normalizes to.
func WithDistanceRange(near, far float32) MaterialBuilderOption {
	return func(m *material) {
		m.nearDistance = near
		m.farDistance = far
	}
}

// WithDefine is an option builder that adds a preprocessor macro to both stages, e.g.
// USE_MAP, USE_COLOR or DEPTH_PACKING_RGBA.
//
// Parameters:
//   - name: the macro name
//   - value: the macro value, empty for a flag
//
// Returns:
//   - MaterialBuilderOption: a function that applies the define option to a material
func WithDefine(name, value string) MaterialBuilderOption {
	return func(m *material) {
		m.defines[name] = value
	}
}

// WithUniform is an option builder that adds a custom uniform value. The uniform must be
// declared by the template or by a parameters fragment. A uniform named like one of the
// flavor's base uniforms replaces it.
//
// Parameters:
//   - name: the uniform name
//   - typeName: the GLSL type
//   - values: the components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the uniform option to a material
func WithUniform(name, typeName string, values ...float32) MaterialBuilderOption {
	return func(m *material) {
		u, err := NewUniform(name, typeName, values...)
		if err != nil {
			m.addOptionError(err)
			return
		}
		m.custom = m.custom.set(u)
	}
}

// WithChunks is an option builder that sets the chunk registry includes resolve against.
// A compositor set by an earlier WithCompositor is dropped; the last of the two wins.
func WithChunks(chunks *shader.ChunkRegistry) MaterialBuilderOption {
	return func(m *material) {
		m.chunks = chunks
		m.compositor = nil
	}
}

// WithCompositor is an option builder that sets the compositor used to build the stages.
func WithCompositor(c shader.Compositor) MaterialBuilderOption {
	return func(m *material) {
		m.compositor = c
	}
}

// WithLogger is an option builder that sets the logger for build diagnostics.
func WithLogger(logger *slog.Logger) MaterialBuilderOption {
	return func(m *material) {
		m.logger = logger
	}
}

// WithTimeline is an option builder that binds a timeline to the material. The time
// uniform is declared in the vertex parameters, the required chunks and compiled
// functions are added to the vertex functions, and the transform calls are appended to
// the vertex position in the given kind order. Pivot-free rotations are also applied to
// objectNormal when the flavor has a normal anchor. The time uniform starts at 0.
//
// Parameters:
//   - tl: the timeline
//   - order: the call order of kinds, timeline.DefaultOrder when empty
//
// Returns:
//   - MaterialBuilderOption: a function that applies the timeline option to a material
func WithTimeline(tl timeline.Timeline, order ...string) MaterialBuilderOption {
	return func(m *material) {
		m.timeline = tl
		m.callOrder = slices.Clone(order)
	}
}

// WithFragment is an option builder that adds lines to a fragment slot. Repeated calls
// for the same slot append. Slots whose anchor the flavor lacks are ignored when
// composing.
//
// Parameters:
//   - slot: the fragment slot
//   - lines: the source lines
//
// Returns:
//   - MaterialBuilderOption: a function that applies the fragment option to a material
func WithFragment(slot shader.Slot, lines ...string) MaterialBuilderOption {
	return func(m *material) {
		if _, err := shader.ParseSlot(string(slot)); err != nil {
			m.addOptionError(fmt.Errorf("material %q: %w", m.name, err))
			return
		}
		m.fragments[slot] = m.fragments[slot].Append(lines...)
	}
}

// WithVertexParameters adds lines to the vertexParameters slot: uniform, attribute and constant declarations of the vertex stage.
func WithVertexParameters(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexParameters, lines...)
}

// WithVaryingParameters adds lines to the varyingParameters slot: varying declarations, spliced into both stages.
func WithVaryingParameters(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVaryingParameters, lines...)
}

// WithVertexFunctions adds lines to the vertexFunctions slot: function definitions of the vertex stage.
func WithVertexFunctions(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexFunctions, lines...)
}

// WithVertexInit adds lines to the vertexInit slot: statements at the top of the vertex main function.
func WithVertexInit(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexInit, lines...)
}

// WithVertexNormal adds lines to the vertexNormal slot: statements that modify objectNormal.
func WithVertexNormal(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexNormal, lines...)
}

// WithVertexPosition adds lines to the vertexPosition slot: statements that modify the transformed position.
func WithVertexPosition(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexPosition, lines...)
}

// WithVertexColor adds lines to the vertexColor slot: statements that modify vColor.
func WithVertexColor(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexColor, lines...)
}

// WithVertexPostMorph adds lines to the vertexPostMorph slot: statements run after morph targets are applied.
func WithVertexPostMorph(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexPostMorph, lines...)
}

// WithVertexPostSkinning adds lines to the vertexPostSkinning slot: statements run after skinning is applied.
func WithVertexPostSkinning(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotVertexPostSkinning, lines...)
}

// WithFragmentParameters adds lines to the fragmentParameters slot: uniform and constant declarations of the fragment stage.
func WithFragmentParameters(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentParameters, lines...)
}

// WithFragmentFunctions adds lines to the fragmentFunctions slot: function definitions of the fragment stage.
func WithFragmentFunctions(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentFunctions, lines...)
}

// WithFragmentInit adds lines to the fragmentInit slot: statements at the top of the fragment main function.
func WithFragmentInit(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentInit, lines...)
}

// WithFragmentDiffuse adds lines to the fragmentDiffuse slot: statements that modify diffuseColor.
func WithFragmentDiffuse(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentDiffuse, lines...)
}

// WithFragmentMap adds lines to the fragmentMap slot: statements replacing the default map sampling.
func WithFragmentMap(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentMap, lines...)
}

// WithFragmentAlpha adds lines to the fragmentAlpha slot: statements replacing the default alpha map sampling.
func WithFragmentAlpha(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentAlpha, lines...)
}

// WithFragmentEmissive adds lines to the fragmentEmissive slot: statements that modify totalEmissiveRadiance.
func WithFragmentEmissive(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentEmissive, lines...)
}

// WithFragmentSpecular adds lines to the fragmentSpecular slot: statements that modify specularColor and specularShininess.
func WithFragmentSpecular(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentSpecular, lines...)
}

// WithFragmentRoughness adds lines to the fragmentRoughness slot: statements that modify roughnessFactor.
func WithFragmentRoughness(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentRoughness, lines...)
}

// WithFragmentMetalness adds lines to the fragmentMetalness slot: statements that modify metalnessFactor.
func WithFragmentMetalness(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentMetalness, lines...)
}

// WithFragmentShape adds lines to the fragmentShape slot: statements that shape or discard point sprites.
func WithFragmentShape(lines ...string) MaterialBuilderOption {
	return WithFragment(shader.SlotFragmentShape, lines...)
}
