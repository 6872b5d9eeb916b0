package shader

import (
	"fmt"
	"maps"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader source belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// stage maps the shader type to its wgpu stage flag.
func (t ShaderType) stage() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

// shader is the implementation of the Shader interface.
// It holds the composed source together with everything parsed out of it.
type shader struct {
	key           string
	source        string
	shaderType    ShaderType
	declarations  []Declaration
	defines       map[string]string
	vertexLayouts []wgpu.VertexBufferLayout
	uniformLayout UniformLayout
	module        *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a composed GLSL stage source. It exposes the source,
// the declarations found in it, and the wgpu descriptors needed to create a shader
// module and a render pipeline.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the GLSL shader source code.
	//
	// Returns:
	//   - string: the GLSL source code of the shader
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name, always "main" for GLSL.
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader. wgpu only accepts
	// GLSL 450, so the descriptor carries VulkanSource with the stage's own varying
	// locations. A fragment stage paired with a vertex stage should use LinkedModule.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor
	Module() *wgpu.ShaderModuleDescriptor

	// LinkedModule returns a module descriptor whose varyings use the given locations,
	// normally the VaryingLocations of the vertex stage.
	//
	// Parameters:
	//   - varyings: location keyed by varying name
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor
	LinkedModule(varyings map[string]uint32) *wgpu.ShaderModuleDescriptor

	// VulkanSource translates Source into GLSL 450 with explicit locations and bindings.
	// Loose uniforms are packed into one std140 block per stage (set 0, binding 0 for
	// vertex and 1 for fragment) laid out like UniformLayout; samplers are split into
	// texture and sampler pairs in set 1.
	//
	// Parameters:
	//   - varyings: location keyed by varying name
	//
	// Returns:
	//   - string: the GLSL 450 source
	VulkanSource(varyings map[string]uint32) string

	// VaryingLocations numbers the active varyings in declaration order.
	VaryingLocations() map[string]uint32

	// Declarations returns every active attribute, uniform and varying declaration in
	// source order.
	//
	// Returns:
	//   - []Declaration: the parsed declarations
	Declarations() []Declaration

	// Declaration looks up a declaration by name.
	//
	// Parameters:
	//   - name: the declared variable name
	//
	// Returns:
	//   - Declaration: the declaration
	//   - bool: false if nothing of that name is declared
	Declaration(name string) (Declaration, bool)

	// Attributes returns the attribute declarations in source order.
	Attributes() []Declaration

	// Uniforms returns the uniform declarations in source order.
	Uniforms() []Declaration

	// Varyings returns the varying declarations in source order.
	Varyings() []Declaration

	// Defines returns the macros defined by the source.
	Defines() map[string]string

	// VertexLayouts returns one vertex buffer layout per supported attribute. Fragment
	// shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: vertex buffer layouts indexed by shader location
	VertexLayouts() []wgpu.VertexBufferLayout

	// UniformLayout returns the std140 packing of the shader's loose uniforms.
	UniformLayout() UniformLayout
}

var _ Shader = &shader{}

// NewShader creates a Shader from composed GLSL source and parses its declarations.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage of the source
//   - source: the composed GLSL source
//
// Returns:
//   - Shader: a new Shader instance
func NewShader(key string, shaderType ShaderType, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s must have a non-empty source", key))
	}
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
	}
	s.declarations, s.defines = parseDeclarations(source)
	if shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(s.declarations)
	}
	s.uniformLayout = parseUniformLayout(s.declarations)
	s.module = s.LinkedModule(s.VaryingLocations())
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return "main"
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) LinkedModule(varyings map[string]uint32) *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		GLSLDescriptor: &wgpu.ShaderModuleGLSLDescriptor{
			Code:        s.VulkanSource(varyings),
			ShaderStage: s.shaderType.stage(),
		},
	}
}

func (s *shader) Declarations() []Declaration {
	return append([]Declaration(nil), s.declarations...)
}

func (s *shader) Declaration(name string) (Declaration, bool) {
	for _, d := range s.declarations {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

func (s *shader) Attributes() []Declaration {
	return s.filter(QualifierAttribute)
}

func (s *shader) Uniforms() []Declaration {
	return s.filter(QualifierUniform)
}

func (s *shader) Varyings() []Declaration {
	return s.filter(QualifierVarying)
}

func (s *shader) Defines() map[string]string {
	return maps.Clone(s.defines)
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) UniformLayout() UniformLayout {
	return s.uniformLayout
}

func (s *shader) filter(q Qualifier) []Declaration {
	var out []Declaration
	for _, d := range s.declarations {
		if d.Qualifier == q {
			out = append(out, d)
		}
	}
	return out
}
