package shader

import (
	"regexp"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// glslVertexFormatMap maps GLSL attribute types to their wgpu vertex format and byte size
var glslVertexFormatMap = map[string]vertexFormatInfo{
	"float": {wgpu.VertexFormatFloat32, 4},
	"vec2":  {wgpu.VertexFormatFloat32x2, 8},
	"vec3":  {wgpu.VertexFormatFloat32x3, 12},
	"vec4":  {wgpu.VertexFormatFloat32x4, 16},
	"int":   {wgpu.VertexFormatSint32, 4},
	"ivec2": {wgpu.VertexFormatSint32x2, 8},
	"ivec3": {wgpu.VertexFormatSint32x3, 12},
	"ivec4": {wgpu.VertexFormatSint32x4, 16},
}

// glslPrimitiveLayoutMap maps GLSL uniform types to their std140 size and alignment
var glslPrimitiveLayoutMap = map[string]glslTypeLayout{
	"float": {4, 4},
	"int":   {4, 4},
	"bool":  {4, 4},
	"vec2":  {8, 8},
	"ivec2": {8, 8},
	"bvec2": {8, 8},
	"vec3":  {12, 16},
	"ivec3": {12, 16},
	"bvec3": {12, 16},
	"vec4":  {16, 16},
	"ivec4": {16, 16},
	"bvec4": {16, 16},
	"mat2":  {32, 16},
	"mat3":  {48, 16},
	"mat4":  {64, 16},
}

var (
	// declarationRegex matches a top-level qualified declaration and captures the
	// qualifier, optional precision, type and the declarator list
	declarationRegex = regexp.MustCompile(`^\s*(attribute|uniform|varying)\s+(?:(lowp|mediump|highp)\s+)?(\w+)\s+([^;]+);`)

	// declaratorRegex matches one declarator: a name with an optional array size
	declaratorRegex = regexp.MustCompile(`^\s*(\w+)\s*(?:\[\s*(\w+)\s*\])?\s*$`)

	// directiveRegex matches a preprocessor directive and captures its name and argument
	directiveRegex = regexp.MustCompile(`^\s*#\s*(\w+)\s*(.*)$`)

	// definedRegex matches defined(X), defined X and their negations in #if conditions
	definedRegex = regexp.MustCompile(`^(!)?\s*defined\s*\(?\s*(\w+)\s*\)?$`)

	// identifierRegex matches the leading identifier of a #define
	identifierRegex = regexp.MustCompile(`^\w+`)
)

// parseDeclarations extracts attribute, uniform and varying declarations from GLSL
// source. Preprocessor conditionals are evaluated against the #define lines found in
// the source itself, so declarations in disabled branches are skipped.
//
// Parameters:
//   - source: the composed GLSL source
//
// Returns:
//   - []Declaration: declarations in source order
//   - map[string]string: the macros defined at the end of the source
func parseDeclarations(source string) ([]Declaration, map[string]string) {
	lines, defines := preprocess(stripBlockComments(source))

	var decls []Declaration
	for _, sl := range lines {
		m := declarationRegex.FindStringSubmatch(sl.text)
		if m == nil {
			continue
		}
		for _, part := range strings.Split(m[4], ",") {
			dm := declaratorRegex.FindStringSubmatch(part)
			if dm == nil {
				continue
			}
			decls = append(decls, Declaration{
				Qualifier: Qualifier(m[1]),
				Precision: m[2],
				Type:      m[3],
				Name:      dm[1],
				ArraySize: resolveArraySize(dm[2], defines),
				Line:      sl.num,
			})
		}
	}
	return decls, defines
}

// parseVertexLayouts builds one vertex buffer layout per attribute, in declaration
// order, with shader locations assigned sequentially. Attributes whose type has no
// vertex format (matrices) are skipped and do not consume a location.
//
// Parameters:
//   - decls: parsed declarations of a vertex stage
//
// Returns:
//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
func parseVertexLayouts(decls []Declaration) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	var location uint32
	for _, d := range decls {
		if d.Qualifier != QualifierAttribute {
			continue
		}
		layout, ok := buildVertexBufferLayout(d, location)
		if !ok {
			continue
		}
		layouts = append(layouts, layout)
		location++
	}
	return layouts
}

// parseUniformLayout packs the non-sampler uniforms of a stage into a std140 layout.
// Uniforms of unknown (struct or sampler) types are left out.
//
// Parameters:
//   - decls: parsed declarations of a stage
//
// Returns:
//   - UniformLayout: the packed layout
func parseUniformLayout(decls []Declaration) UniformLayout {
	var layout UniformLayout
	var offset uint64
	for _, d := range decls {
		if d.Qualifier != QualifierUniform {
			continue
		}
		tl, ok := resolveTypeLayout(d.Type, d.ArraySize)
		if !ok {
			continue
		}
		offset = roundUpAlign(tl.align, offset)
		layout.Fields = append(layout.Fields, UniformField{
			Name:      d.Name,
			Type:      d.Type,
			ArraySize: d.ArraySize,
			Offset:    offset,
			Size:      tl.size,
		})
		offset += tl.size
	}
	layout.Size = roundUpAlign(16, offset)
	return layout
}
