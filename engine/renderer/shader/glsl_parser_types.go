package shader

import "github.com/cogentcore/webgpu/wgpu"

// Qualifier is the storage qualifier of a top-level GLSL declaration.
type Qualifier string

const (
	QualifierAttribute Qualifier = "attribute"
	QualifierUniform   Qualifier = "uniform"
	QualifierVarying   Qualifier = "varying"
)

// Declaration is a top-level attribute, uniform or varying declaration that survived
// preprocessor conditionals.
type Declaration struct {
	Qualifier Qualifier
	Precision string
	Type      string
	Name      string

	// ArraySize is the element count of an array declaration, 0 for scalars. Sizes
	// given as macros are resolved through #define lines.
	ArraySize int

	// Line is the 1-based line number in the composed source.
	Line int
}

// UniformField is one loose uniform placed in the std140-style uniform block layout.
type UniformField struct {
	Name      string
	Type      string
	ArraySize int
	Offset    uint64
	Size      uint64
}

// UniformLayout is the packed layout of a stage's non-sampler uniforms, in declaration
// order, using std140 alignment rules.
type UniformLayout struct {
	Fields []UniformField
	Size   uint64
}

// Field returns the layout entry for the named uniform.
func (l UniformLayout) Field(name string) (UniformField, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return UniformField{}, false
}

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// glslTypeLayout holds the std140 byte size and alignment of a GLSL type.
type glslTypeLayout struct {
	size  uint64
	align uint64
}

// conditionalFrame is one level of #if nesting during preprocessing.
type conditionalFrame struct {
	parentActive bool
	active       bool
	taken        bool
}
