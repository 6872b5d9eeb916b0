package shader

import (
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

// FormatFloat renders v as a GLSL float literal with the given number of significant
// digits. Fixed notation is used unless the exponent is below -6 or at least
// precision, in which case scientific notation is used. The result always has a
// decimal point or an exponent so GLSL parses it as a float: 12 at two digits is
// "12.0", 0.05 at two digits is "0.050".
//
// Parameters:
//   - v: the value to format
//   - precision: the number of significant digits, at least 1
//
// Returns:
//   - string: the literal
func FormatFloat(v float64, precision int) string {
	return string(AppendFloat(nil, v, precision))
}

// AppendFloat appends the literal produced by FormatFloat to b.
func AppendFloat(b []byte, v float64, precision int) []byte {
	if precision < 1 {
		precision = 1
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.AppendFloat(b, v, 'g', -1, 64)
	}

	sci := strconv.FormatFloat(v, 'e', precision-1, 64)
	mant, expStr, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expStr)
	neg := strings.HasPrefix(mant, "-")
	mant = strings.TrimPrefix(mant, "-")
	digits := strings.Replace(mant, ".", "", 1)

	if neg {
		b = append(b, '-')
	}
	switch {
	case exp < -6 || exp >= precision:
		b = append(b, mant...)
		b = append(b, 'e')
		if exp >= 0 {
			b = append(b, '+')
		}
		b = strconv.AppendInt(b, int64(exp), 10)
	case exp < 0:
		b = append(b, "0."...)
		b = append(b, strings.Repeat("0", -exp-1)...)
		b = append(b, digits...)
	default:
		b = append(b, digits[:exp+1]...)
		b = append(b, '.')
		if frac := digits[exp+1:]; frac != "" {
			b = append(b, frac...)
		} else {
			b = append(b, '0')
		}
	}
	return b
}

// AppendVec3 appends a vec3 constructor such as "vec3(1.0, 0.50, 0.0)".
func AppendVec3(b []byte, v common.Vec3, precision int) []byte {
	b = append(b, "vec3("...)
	for i, c := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = AppendFloat(b, float64(c), precision)
	}
	return append(b, ')')
}

// AppendVec4 appends a vec4 constructor such as "vec4(0.0, 1.0, 0.0, 3.1415927)".
func AppendVec4(b []byte, v common.Vec4, precision int) []byte {
	b = append(b, "vec4("...)
	for i, c := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = AppendFloat(b, float64(c), precision)
	}
	return append(b, ')')
}

// AppendFloatDecl appends a float declaration statement: "float name = 1.0;".
func AppendFloatDecl(b []byte, name string, v float64, precision int) []byte {
	b = append(b, "float "...)
	b = append(b, name...)
	b = append(b, " = "...)
	b = AppendFloat(b, v, precision)
	return append(b, ';')
}

// AppendVec3Decl appends a vec3 declaration statement: "vec3 name = vec3(...);".
func AppendVec3Decl(b []byte, name string, v common.Vec3, precision int) []byte {
	b = append(b, "vec3 "...)
	b = append(b, name...)
	b = append(b, " = "...)
	b = AppendVec3(b, v, precision)
	return append(b, ';')
}

// AppendVec4Decl appends a vec4 declaration statement: "vec4 name = vec4(...);".
func AppendVec4Decl(b []byte, name string, v common.Vec4, precision int) []byte {
	b = append(b, "vec4 "...)
	b = append(b, name...)
	b = append(b, " = "...)
	b = AppendVec4(b, v, precision)
	return append(b, ';')
}
