package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// Resource bindings used by the Vulkan-style translation. Loose uniforms of each stage are
// packed into one std140 block in set 0; every sampler becomes a texture and sampler pair
// in set 1.
const (
	VulkanUniformSet           = 0
	VulkanVertexBlockBinding   = 0
	VulkanFragmentBlockBinding = 1
	VulkanTextureSet           = 1

	vulkanVersion     = "#version 450"
	vulkanFragOutput  = "fragColor"
	vulkanBlockIndent = "\t"
)

var (
	// textureCallRegex matches the GLSL ES sampling functions replaced by texture()
	textureCallRegex = regexp.MustCompile(`\b(texture2D|textureCube)\s*\(`)

	// fragColorRegex matches the GLSL ES fragment output builtin
	fragColorRegex = regexp.MustCompile(`\bgl_FragColor\b`)
)

// vulkanSamplerTypes maps combined sampler types to the separate texture type naga expects.
var vulkanSamplerTypes = map[string]string{
	"sampler2D":   "texture2D",
	"samplerCube": "textureCube",
}

// VaryingLocations assigns a location to every active varying in declaration order. The
// vertex stage's map is what a fragment stage links against.
//
// Returns:
//   - map[string]uint32: location keyed by varying name
func (s *shader) VaryingLocations() map[string]uint32 {
	locations := make(map[string]uint32)
	for _, d := range s.declarations {
		if d.Qualifier != QualifierVarying {
			continue
		}
		if _, ok := locations[d.Name]; !ok {
			locations[d.Name] = uint32(len(locations))
		}
	}
	return locations
}

func (s *shader) VulkanSource(varyings map[string]uint32) string {
	return translateVulkan(s, varyings)
}

// translateVulkan rewrites a composed GLSL ES style stage into GLSL 450 with explicit
// locations and bindings:
//   - attributes become "layout(location = N) in", numbered like VertexLayouts
//   - varyings become "out" (vertex) or "in" (fragment) at the linked location; names
//     missing from varyings continue after the highest linked location
//   - loose uniforms move into a std140 block laid out like UniformLayout
//   - samplers split into a texture and a sampler, rebound by a #define of the same name
//   - texture2D/textureCube calls become texture() and gl_FragColor becomes an output
//
// Declarations in disabled preprocessor branches are rewritten too, so the preprocessor
// still sees well-formed source whichever branch it takes.
func translateVulkan(s *shader, varyings map[string]uint32) string {
	attrLocations := make(map[string]uint32)
	var nextAttr uint32
	for _, d := range s.declarations {
		if d.Qualifier != QualifierAttribute {
			continue
		}
		if _, ok := glslVertexFormatMap[d.Type]; !ok {
			continue
		}
		if _, ok := attrLocations[d.Name]; !ok {
			attrLocations[d.Name] = nextAttr
			nextAttr++
		}
	}

	varyingLocations := make(map[string]uint32, len(varyings))
	var nextVarying uint32
	for name, loc := range varyings {
		varyingLocations[name] = loc
		nextVarying = max(nextVarying, loc+1)
	}

	varyingDir := "out"
	blockName, blockBinding := "VertexUniforms", VulkanVertexBlockBinding
	if s.shaderType == ShaderTypeFragment {
		varyingDir = "in"
		blockName, blockBinding = "FragmentUniforms", VulkanFragmentBlockBinding
	}

	var b strings.Builder
	b.WriteString(vulkanVersion)
	b.WriteByte('\n')
	if len(s.uniformLayout.Fields) > 0 {
		fmt.Fprintf(&b, "layout(std140, set = %d, binding = %d) uniform %s {\n", VulkanUniformSet, blockBinding, blockName)
		for _, f := range s.uniformLayout.Fields {
			b.WriteString(vulkanBlockIndent)
			b.WriteString(f.Type)
			b.WriteByte(' ')
			b.WriteString(f.Name)
			if f.ArraySize > 0 {
				fmt.Fprintf(&b, "[%d]", f.ArraySize)
			}
			b.WriteString(";\n")
		}
		b.WriteString("};\n")
	}
	if s.shaderType == ShaderTypeFragment {
		fmt.Fprintf(&b, "layout(location = 0) out vec4 %s;\n", vulkanFragOutput)
	}

	var nextTexture uint32
	lines := strings.Split(s.source, "\n")
	for i, line := range lines {
		m := declarationRegex.FindStringSubmatch(stripLineComment(line))
		if m == nil {
			line = textureCallRegex.ReplaceAllString(line, "texture(")
			if s.shaderType == ShaderTypeFragment {
				line = fragColorRegex.ReplaceAllString(line, vulkanFragOutput)
			}
			b.WriteString(line)
		} else {
			qualifier, precision, typeName := Qualifier(m[1]), m[2], m[3]
			if precision != "" {
				precision += " "
			}
			var out []string
			for _, part := range strings.Split(m[4], ",") {
				dm := declaratorRegex.FindStringSubmatch(part)
				if dm == nil {
					continue
				}
				name, array := dm[1], ""
				if dm[2] != "" {
					array = "[" + dm[2] + "]"
				}
				switch qualifier {
				case QualifierAttribute:
					loc, ok := attrLocations[name]
					if !ok {
						loc = nextAttr
						attrLocations[name] = loc
						nextAttr++
					}
					out = append(out, fmt.Sprintf("layout(location = %d) in %s%s %s%s;", loc, precision, typeName, name, array))
				case QualifierVarying:
					loc, ok := varyingLocations[name]
					if !ok {
						loc = nextVarying
						varyingLocations[name] = loc
						nextVarying++
					}
					out = append(out, fmt.Sprintf("layout(location = %d) %s %s%s %s%s;", loc, varyingDir, precision, typeName, name, array))
				case QualifierUniform:
					if texType, ok := vulkanSamplerTypes[typeName]; ok {
						out = append(out,
							fmt.Sprintf("layout(set = %d, binding = %d) uniform %s %s_texture;", VulkanTextureSet, nextTexture, texType, name),
							fmt.Sprintf("layout(set = %d, binding = %d) uniform sampler %s_sampler;", VulkanTextureSet, nextTexture+1, name),
							fmt.Sprintf("#define %s %s(%s_texture, %s_sampler)", name, typeName, name, name),
						)
						nextTexture += 2
						continue
					}
					if _, ok := glslPrimitiveLayoutMap[typeName]; !ok {
						// struct typed uniforms have no block slot
						out = append(out, fmt.Sprintf("uniform %s%s %s%s;", precision, typeName, name, array))
					}
				}
			}
			b.WriteString(strings.Join(out, "\n"))
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
