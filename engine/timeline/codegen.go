package timeline

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

// Significant digits of the literals embedded in generated code.
const (
	timePrecision     = 4
	vectorPrecision   = 2
	rotationPrecision = 8
)

func keyString(seg Segment) string {
	return strconv.FormatUint(seg.Key, 10)
}

// appendTimingDecls emits the cDelay and cDuration constants of a segment.
func appendTimingDecls(b []byte, seg Segment) []byte {
	key := keyString(seg)
	b = shader.AppendFloatDecl(b, "cDelay"+key, seg.Start, timePrecision)
	b = append(b, '\n')
	b = shader.AppendFloatDecl(b, "cDuration"+key, seg.Duration, timePrecision)
	return append(b, '\n')
}

// appendFunctionHead opens the segment function and emits the render check, the
// progress computation and the optional easing call.
func appendFunctionHead(b []byte, seg Segment) []byte {
	key := keyString(seg)
	b = append(b, "void "...)
	b = append(b, seg.FunctionName()...)
	b = append(b, "(float time, inout vec3 v) {\n"...)

	b = append(b, "\tif (time < "...)
	b = shader.AppendFloat(b, seg.Start, timePrecision)
	b = append(b, " || time > "...)
	b = shader.AppendFloat(b, seg.End()+seg.Trail, timePrecision)
	b = append(b, ") return;\n"...)

	if seg.Duration == 0 {
		b = append(b, "\tfloat progress = 1.0;\n"...)
	} else {
		b = append(b, "\tfloat progress = clamp(time - cDelay"+key+", 0.0, cDuration"+key+") / cDuration"+key+";\n"...)
	}

	if ease := seg.Transition.Ease; ease != "" {
		b = append(b, "\tprogress = "+ease+"(progress"...)
		for _, p := range seg.Transition.EaseParams {
			b = append(b, ", "...)
			b = shader.AppendFloat(b, float64(p), timePrecision)
		}
		b = append(b, ");\n"...)
	}
	return b
}
