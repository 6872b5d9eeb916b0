package material

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

// uniformShape is the column/row shape of a GLSL uniform type. Matrix columns are laid
// out 16 bytes apart per std140.
type uniformShape struct {
	cols    int
	rows    int
	integer bool
}

func (s uniformShape) components() int {
	return s.cols * s.rows
}

var uniformShapes = map[string]uniformShape{
	"float": {1, 1, false},
	"int":   {1, 1, true},
	"bool":  {1, 1, true},
	"vec2":  {1, 2, false},
	"ivec2": {1, 2, true},
	"vec3":  {1, 3, false},
	"ivec3": {1, 3, true},
	"vec4":  {1, 4, false},
	"ivec4": {1, 4, true},
	"mat2":  {2, 2, false},
	"mat3":  {3, 3, false},
	"mat4":  {4, 4, false},
}

// Uniform is a named uniform value. Value holds the components in column-major order,
// element after element for arrays.
type Uniform struct {
	Name  string
	Type  string
	Value []float32
}

// NewUniform creates a Uniform after checking that the value count fits the type.
//
// Parameters:
//   - name: the uniform name as declared in GLSL
//   - typeName: the GLSL type, e.g. "float", "vec3" or "mat4"
//   - values: the components; a multiple of the type's component count for arrays
//
// Returns:
//   - Uniform: the uniform
//   - error: ErrInvalidUniform for an unknown type or a bad value count
func NewUniform(name, typeName string, values ...float32) (Uniform, error) {
	shape, ok := uniformShapes[typeName]
	if !ok {
		return Uniform{}, fmt.Errorf("%s: unsupported type %q: %w", name, typeName, ErrInvalidUniform)
	}
	if len(values) == 0 || len(values)%shape.components() != 0 {
		return Uniform{}, fmt.Errorf("%s: %d values for %s: %w", name, len(values), typeName, ErrInvalidUniform)
	}
	return Uniform{Name: name, Type: typeName, Value: slices.Clone(values)}, nil
}

// FloatUniform creates a float uniform.
func FloatUniform(name string, v float32) Uniform {
	return Uniform{Name: name, Type: "float", Value: []float32{v}}
}

// Vec3Uniform creates a vec3 uniform.
func Vec3Uniform(name string, v common.Vec3) Uniform {
	return Uniform{Name: name, Type: "vec3", Value: []float32{v[0], v[1], v[2]}}
}

// Uniforms is an ordered set of uniform values.
type Uniforms []Uniform

// Lookup returns the uniform of the given name.
func (u Uniforms) Lookup(name string) (Uniform, bool) {
	for _, v := range u {
		if v.Name == name {
			return v, true
		}
	}
	return Uniform{}, false
}

// set replaces the uniform of the same name or appends it.
func (u Uniforms) set(v Uniform) Uniforms {
	for i := range u {
		if u[i].Name == v.Name {
			u[i] = v
			return u
		}
	}
	return append(u, v)
}

func (u Uniforms) clone() Uniforms {
	out := make(Uniforms, len(u))
	for i, v := range u {
		out[i] = Uniform{Name: v.Name, Type: v.Type, Value: slices.Clone(v.Value)}
	}
	return out
}

// Marshal serializes the uniforms into a buffer laid out by a stage's uniform layout,
// suitable for GPU upload. Fields without a matching uniform stay zeroed; uniforms
// that the layout does not contain are skipped.
//
// Parameters:
//   - layout: the std140 layout, usually from shader.Shader.UniformLayout
//
// Returns:
//   - []byte: a layout.Size byte buffer, little-endian
func (u Uniforms) Marshal(layout shader.UniformLayout) []byte {
	buf := make([]byte, layout.Size)
	for _, f := range layout.Fields {
		v, ok := u.Lookup(f.Name)
		if !ok {
			continue
		}
		putField(buf, f, v.Value)
	}
	return buf
}

func putField(buf []byte, f shader.UniformField, values []float32) {
	shape, ok := uniformShapes[f.Type]
	if !ok {
		return
	}
	elems := max(f.ArraySize, 1)
	var stride uint64
	if f.ArraySize > 0 {
		stride = f.Size / uint64(f.ArraySize)
	}

	i := 0
	for e := range elems {
		for c := range shape.cols {
			for r := range shape.rows {
				if i >= len(values) {
					return
				}
				pos := f.Offset + uint64(e)*stride + uint64(c)*16 + uint64(r)*4
				bits := math.Float32bits(values[i])
				if shape.integer {
					bits = uint32(int32(values[i]))
				}
				binary.LittleEndian.PutUint32(buf[pos:pos+4], bits)
				i++
			}
		}
	}
}
