package material

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// flavorDefines are the macros every material of a flavor is compiled with.
var flavorDefines = map[shader.Flavor]string{
	shader.FlavorLambert:  "LAMBERT",
	shader.FlavorPhong:    "PHONG",
	shader.FlavorStandard: "STANDARD",
	shader.FlavorToon:     "TOON",
}

// flavorUniforms lists the base uniforms each flavor's templates declare.
var flavorUniforms = map[shader.Flavor][]string{
	shader.FlavorBasic:    {"diffuse", "opacity"},
	shader.FlavorLambert:  {"diffuse", "emissive", "opacity"},
	shader.FlavorPhong:    {"diffuse", "emissive", "specular", "shininess", "opacity"},
	shader.FlavorStandard: {"diffuse", "emissive", "roughness", "metalness", "opacity"},
	shader.FlavorToon:     {"diffuse", "emissive", "opacity"},
	shader.FlavorPoints:   {"diffuse", "opacity", "size", "scale"},
	shader.FlavorDepth:    {"opacity"},
	shader.FlavorDistance: {"referencePosition", "nearDistance", "farDistance"},
}

// normalTarget is the vertex variable holding the object space normal in templates
// with a normal anchor.
const normalTarget = "objectNormal"

// material is the implementation of the Material interface.
type material struct {
	name   string
	flavor shader.Flavor

	diffuse           common.Vec3
	opacity           float32
	emissive          common.Vec3
	specular          common.Vec3
	shininess         float32
	roughness         float32
	metalness         float32
	size              float32
	scale             float32
	referencePosition common.Vec3
	nearDistance      float32
	farDistance       float32

	defines    map[string]string
	custom     Uniforms
	fragments  map[shader.Slot]shader.Fragment
	chunks     *shader.ChunkRegistry
	compositor shader.Compositor
	logger     *slog.Logger
	timeline   timeline.Timeline
	callOrder  []string
	optErr     error

	uniforms       Uniforms
	vertexShader   shader.Shader
	fragmentShader shader.Shader
}

// Material defines the interface for a buffer animation material: a flavor's templates
// composed once with caller fragments and an optional timeline, plus the uniform values
// the composed stages expect.
//
// The composed sources never change after construction. Uniform values may be updated
// with SetUniform, typically the timeline's time uniform once per frame.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Flavor returns the lighting model the material was composed from.
	Flavor() shader.Flavor

	// VertexSource returns the composed vertex stage source.
	VertexSource() string

	// FragmentSource returns the composed fragment stage source.
	FragmentSource() string

	// VertexShader returns the parsed vertex stage, which carries the wgpu module
	// descriptor and the vertex buffer layouts.
	//
	// Returns:
	//   - shader.Shader: the vertex shader
	VertexShader() shader.Shader

	// FragmentShader returns the parsed fragment stage.
	//
	// Returns:
	//   - shader.Shader: the fragment shader
	FragmentShader() shader.Shader

	// Defines returns the macros the stages were compiled with.
	Defines() map[string]string

	// Fragment returns the fragment supplied for a slot, after timeline code was added.
	//
	// Parameters:
	//   - slot: the fragment slot
	//
	// Returns:
	//   - shader.Fragment: the fragment, empty when the slot was not supplied
	Fragment(slot shader.Slot) shader.Fragment

	// Timeline returns the bound timeline, or nil.
	Timeline() timeline.Timeline

	// Uniforms returns a copy of the current uniform values.
	//
	// Returns:
	//   - Uniforms: the base, timeline and custom uniforms
	Uniforms() Uniforms

	// SetUniform replaces the value of an existing uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - values: the new components
	//
	// Returns:
	//   - error: ErrUniformNotFound or ErrInvalidUniform
	SetUniform(name string, values ...float32) error

	// MarshalUniforms serializes the current uniforms for one stage using that stage's
	// std140 uniform layout.
	//
	// Parameters:
	//   - shaderType: the stage to serialize for
	//
	// Returns:
	//   - []byte: the little-endian uniform buffer
	MarshalUniforms(shaderType shader.ShaderType) []byte
}

var _ Material = &material{}

// NewMaterial composes a material of the given flavor. Both stages are composed and
// parsed exactly once, here.
//
// Parameters:
//   - flavor: the lighting model, one of shader.Flavors()
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: the composed material
//   - error: an option error, ErrTemplateNotFound for an unknown flavor, a timeline
//     compile error or a composition error
func NewMaterial(flavor shader.Flavor, options ...MaterialBuilderOption) (Material, error) {
	m := &material{
		flavor:       flavor,
		diffuse:      common.Vec3{1, 1, 1},
		opacity:      1,
		specular:     common.Vec3{0.067, 0.067, 0.067},
		shininess:    30,
		roughness:    1,
		metalness:    0,
		size:         1,
		scale:        1,
		nearDistance: 1,
		farDistance:  1000,
		defines:      make(map[string]string),
		fragments:    make(map[shader.Slot]shader.Fragment),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.optErr != nil {
		return nil, m.optErr
	}
	if m.logger == nil {
		m.logger = common.Logger()
	}
	if m.compositor == nil {
		if m.chunks == nil {
			m.chunks = shader.NewChunkRegistry()
		}
		m.compositor = shader.NewCompositor(m.chunks)
	}
	if def, ok := flavorDefines[flavor]; ok {
		if _, set := m.defines[def]; !set {
			m.defines[def] = ""
		}
	}

	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

// build binds the timeline, composes both stages and collects the uniform values.
func (m *material) build() error {
	vertexTemplate, err := shader.LookupTemplate(m.flavor, shader.ShaderTypeVertex)
	if err != nil {
		return err
	}
	fragmentTemplate, err := shader.LookupTemplate(m.flavor, shader.ShaderTypeFragment)
	if err != nil {
		return err
	}

	if m.timeline != nil {
		if err := m.bindTimeline(vertexTemplate); err != nil {
			return err
		}
	}

	vertexSource, err := m.compose(vertexTemplate)
	if err != nil {
		return fmt.Errorf("material %q vertex: %w", m.name, err)
	}
	fragmentSource, err := m.compose(fragmentTemplate)
	if err != nil {
		return fmt.Errorf("material %q fragment: %w", m.name, err)
	}

	key := common.Coalesce(m.name, string(m.flavor))
	m.vertexShader = shader.NewShader(key+".vert", shader.ShaderTypeVertex, vertexSource)
	m.fragmentShader = shader.NewShader(key+".frag", shader.ShaderTypeFragment, fragmentSource)
	m.uniforms = m.collectUniforms()

	m.logger.Debug("material composed",
		"name", m.name,
		"flavor", m.flavor,
		"vertexLines", strings.Count(vertexSource, "\n")+1,
		"fragmentLines", strings.Count(fragmentSource, "\n")+1,
		"uniforms", len(m.uniforms),
	)
	return nil
}

// bindTimeline adds the timeline's uniform, functions and calls to the vertex slots.
// Timeline declarations precede caller fragments so caller code can use them; the
// transform calls run after the caller's position code.
func (m *material) bindTimeline(vertexTemplate shader.Template) error {
	tl := m.timeline
	fns, err := tl.Compile()
	if err != nil {
		return fmt.Errorf("material %q timeline: %w", m.name, err)
	}

	params := shader.Lines("uniform float " + tl.TimeKey() + ";")
	m.fragments[shader.SlotVertexParameters] = params.Concat(m.fragments[shader.SlotVertexParameters])

	// easings without a chunk are expected in the caller's vertexFunctions
	chunks := m.compositor.Chunks()
	eases := tl.EaseChunks()
	var functions shader.Fragment
	for _, chunk := range tl.RequiredChunks() {
		if slices.Contains(eases, chunk) && !chunks.Has(chunk) {
			m.logger.Debug("easing has no chunk, leaving it to caller source", "material", m.name, "chunk", chunk)
			continue
		}
		functions = functions.Append(shader.IncludeDirective(chunk))
	}
	// caller functions sit between the chunks and the segment functions so the segments
	// can call caller-defined easings
	functions = functions.Concat(m.fragments[shader.SlotVertexFunctions]).Append(fns...)
	m.fragments[shader.SlotVertexFunctions] = functions

	position := m.fragments[shader.SlotVertexPosition]
	for _, kind := range tl.CallOrder(m.callOrder...) {
		position = position.Append(tl.TransformCalls(kind))
	}
	m.fragments[shader.SlotVertexPosition] = position

	// origin pivots shift positions, not directions, so only pivot-free rotations
	// apply to the normal
	if vertexTemplate.HasAnchor(shader.AnchorNormal) {
		normal := m.fragments[shader.SlotVertexNormal]
		for _, seg := range tl.Segments(timeline.KindRotate) {
			if seg.Transition.Origin == nil {
				normal = normal.Append(seg.CallStatement(tl.TimeKey(), normalTarget))
			}
		}
		m.fragments[shader.SlotVertexNormal] = normal
	}

	if _, ok := m.custom.Lookup(tl.TimeKey()); !ok {
		m.custom = m.custom.set(FloatUniform(tl.TimeKey(), 0))
	}
	return nil
}

// compose splices every slot targeting the template's stage and prefixes the defines.
func (m *material) compose(t shader.Template) (string, error) {
	frags := make(map[shader.Anchor]shader.Fragment)
	for _, slot := range shader.Slots() {
		frag, ok := m.fragments[slot]
		if !ok {
			continue
		}
		for _, target := range slot.Targets() {
			if target.ShaderType == t.ShaderType {
				frags[target.Anchor] = frags[target.Anchor].Concat(frag)
			}
		}
	}

	src, err := m.compositor.Compose(t, frags)
	if err != nil {
		return "", err
	}
	if len(m.defines) == 0 {
		return src, nil
	}

	var sb strings.Builder
	for _, name := range slices.Sorted(maps.Keys(m.defines)) {
		sb.WriteString("#define ")
		sb.WriteString(name)
		if v := m.defines[name]; v != "" {
			sb.WriteByte(' ')
			sb.WriteString(v)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(src)
	return sb.String(), nil
}

// collectUniforms returns the flavor's base uniforms followed by custom ones. A custom
// uniform named like a base uniform replaces it.
func (m *material) collectUniforms() Uniforms {
	var out Uniforms
	for _, name := range flavorUniforms[m.flavor] {
		switch name {
		case "diffuse":
			out = append(out, Vec3Uniform(name, m.diffuse))
		case "opacity":
			out = append(out, FloatUniform(name, m.opacity))
		case "emissive":
			out = append(out, Vec3Uniform(name, m.emissive))
		case "specular":
			out = append(out, Vec3Uniform(name, m.specular))
		case "shininess":
			out = append(out, FloatUniform(name, m.shininess))
		case "roughness":
			out = append(out, FloatUniform(name, m.roughness))
		case "metalness":
			out = append(out, FloatUniform(name, m.metalness))
		case "size":
			out = append(out, FloatUniform(name, m.size))
		case "scale":
			out = append(out, FloatUniform(name, m.scale))
		case "referencePosition":
			out = append(out, Vec3Uniform(name, m.referencePosition))
		case "nearDistance":
			out = append(out, FloatUniform(name, m.nearDistance))
		case "farDistance":
			out = append(out, FloatUniform(name, m.farDistance))
		}
	}
	for _, u := range m.custom {
		out = out.set(u)
	}
	return out.clone()
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Flavor() shader.Flavor {
	return m.flavor
}

func (m *material) VertexSource() string {
	return m.vertexShader.Source()
}

func (m *material) FragmentSource() string {
	return m.fragmentShader.Source()
}

func (m *material) VertexShader() shader.Shader {
	return m.vertexShader
}

func (m *material) FragmentShader() shader.Shader {
	return m.fragmentShader
}

func (m *material) Defines() map[string]string {
	return maps.Clone(m.defines)
}

func (m *material) Fragment(slot shader.Slot) shader.Fragment {
	return m.fragments[slot]
}

func (m *material) Timeline() timeline.Timeline {
	return m.timeline
}

func (m *material) Uniforms() Uniforms {
	return m.uniforms.clone()
}

func (m *material) SetUniform(name string, values ...float32) error {
	cur, ok := m.uniforms.Lookup(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUniformNotFound)
	}
	u, err := NewUniform(name, cur.Type, values...)
	if err != nil {
		return err
	}
	m.uniforms = m.uniforms.set(u)
	return nil
}

func (m *material) MarshalUniforms(shaderType shader.ShaderType) []byte {
	if shaderType == shader.ShaderTypeVertex {
		return m.uniforms.Marshal(m.vertexShader.UniformLayout())
	}
	return m.uniforms.Marshal(m.fragmentShader.UniformLayout())
}

// addOptionError records an option failure for NewMaterial to return.
func (m *material) addOptionError(err error) {
	m.optErr = errors.Join(m.optErr, err)
}
