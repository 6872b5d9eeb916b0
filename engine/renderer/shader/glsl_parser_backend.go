package shader

import (
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// sourceLine is a line of preprocessed source with its original 1-based line number.
type sourceLine struct {
	num  int
	text string
}

// preprocess evaluates #ifdef, #ifndef, #if, #elif, #else, #endif, #define and #undef
// and returns the lines of active branches with line comments removed. Directive lines
// themselves are dropped.
//
// Parameters:
//   - source: GLSL source with block comments already stripped
//
// Returns:
//   - []sourceLine: the active non-directive lines
//   - map[string]string: macro values defined by the source
func preprocess(source string) ([]sourceLine, map[string]string) {
	defines := make(map[string]string)
	var stack []conditionalFrame
	active := true
	var out []sourceLine

	for i, raw := range strings.Split(source, "\n") {
		line := stripLineComment(raw)
		m := directiveRegex.FindStringSubmatch(line)
		if m == nil {
			if active {
				out = append(out, sourceLine{num: i + 1, text: line})
			}
			continue
		}

		arg := strings.TrimSpace(m[2])
		switch m[1] {
		case "ifdef", "ifndef", "if":
			var cond bool
			switch m[1] {
			case "ifdef":
				_, cond = defines[arg]
			case "ifndef":
				_, cond = defines[arg]
				cond = !cond
			default:
				cond = evalCondition(arg, defines)
			}
			stack = append(stack, conditionalFrame{parentActive: active, active: active && cond, taken: cond})
		case "elif":
			if len(stack) == 0 {
				continue
			}
			top := &stack[len(stack)-1]
			if top.taken {
				top.active = false
			} else {
				cond := evalCondition(arg, defines)
				top.active = top.parentActive && cond
				top.taken = cond
			}
		case "else":
			if len(stack) == 0 {
				continue
			}
			top := &stack[len(stack)-1]
			top.active = top.parentActive && !top.taken
			top.taken = true
		case "endif":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case "define":
			if active {
				name := identifierRegex.FindString(arg)
				if name != "" {
					defines[name] = strings.TrimSpace(arg[len(name):])
				}
			}
		case "undef":
			if active {
				delete(defines, arg)
			}
		}

		active = true
		if len(stack) > 0 {
			active = stack[len(stack)-1].active
		}
	}
	return out, defines
}

// evalCondition evaluates a #if or #elif condition. Supported terms are integer
// literals, macro names and defined(X) with optional negation, combined with || and
// &&. Unknown macros evaluate to false.
func evalCondition(expr string, defines map[string]string) bool {
	for _, or := range strings.Split(expr, "||") {
		all := true
		for _, term := range strings.Split(or, "&&") {
			if !evalTerm(strings.TrimSpace(term), defines) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func evalTerm(term string, defines map[string]string) bool {
	if m := definedRegex.FindStringSubmatch(term); m != nil {
		_, ok := defines[m[2]]
		return ok != (m[1] == "!")
	}
	if n, err := strconv.Atoi(term); err == nil {
		return n != 0
	}
	if v, ok := defines[term]; ok {
		n, err := strconv.Atoi(v)
		return err == nil && n != 0
	}
	return false
}

// resolveArraySize converts an array size token to an element count, following macro
// definitions a few levels deep. Returns 0 when the token is empty or unresolvable.
func resolveArraySize(token string, defines map[string]string) int {
	for range 4 {
		if token == "" {
			return 0
		}
		if n, err := strconv.Atoi(token); err == nil {
			return n
		}
		token = defines[token]
	}
	return 0
}

// roundUpAlign rounds value up to the next multiple of alignment.
//
// Parameters:
//   - alignment: the required alignment (must be a power of two)
//   - value: the value to align
//
// Returns:
//   - uint64: value rounded up to the next multiple of alignment
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a GLSL uniform type to its std140 size and alignment.
// Array elements are padded to a 16-byte stride.
//
// Parameters:
//   - typeName: the GLSL type name, e.g. "vec3" or "mat4"
//   - arraySize: the element count, 0 for non-arrays
//
// Returns:
//   - glslTypeLayout: the resolved layout
//   - bool: false for samplers and unknown types
func resolveTypeLayout(typeName string, arraySize int) (glslTypeLayout, bool) {
	layout, ok := glslPrimitiveLayoutMap[typeName]
	if !ok {
		return glslTypeLayout{}, false
	}
	if arraySize <= 0 {
		return layout, true
	}
	stride := roundUpAlign(16, layout.size)
	return glslTypeLayout{size: stride * uint64(arraySize), align: 16}, true
}

// stripLineComment removes a trailing // comment from a single line.
func stripLineComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// stripBlockComments removes /* ... */ comments from GLSL source. Newlines inside
// comments are kept so line numbers stay stable.
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with block comments removed
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if !inComment && source[i] == '/' && source[i+1] == '*' {
				inComment = true
				i++
				continue
			}
			if inComment && source[i] == '*' && source[i+1] == '/' {
				inComment = false
				i++
				continue
			}
		}
		if !inComment || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// buildVertexBufferLayout converts an attribute declaration into a single-attribute
// wgpu.VertexBufferLayout. Returns false if the attribute type has no vertex format.
//
// Parameters:
//   - d: the attribute declaration
//   - location: the shader location to assign
//
// Returns:
//   - wgpu.VertexBufferLayout: the constructed vertex buffer layout
//   - bool: false if the type could not be mapped to a vertex format
func buildVertexBufferLayout(d Declaration, location uint32) (wgpu.VertexBufferLayout, bool) {
	info, ok := glslVertexFormatMap[d.Type]
	if !ok || d.ArraySize > 0 {
		return wgpu.VertexBufferLayout{}, false
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: info.size,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{{
			Format:         info.format,
			Offset:         0,
			ShaderLocation: location,
		}},
	}, true
}
