package timeline

import (
	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

// ScaleDefinition returns the built-in scale kind. Values are common.Vec3 factors
// multiplied component-wise into the target, about Transition.Origin when set. The
// default From is (1, 1, 1).
func ScaleDefinition() Definition {
	return Definition{
		DefaultFrom: common.Vec3{1, 1, 1},
		Compiler:    compileScale,
		Apply:       applyScale,
		Decode:      decodeVec3Value,
	}
}

func compileScale(seg Segment) (string, error) {
	from, to, err := vec3Endpoints(seg)
	if err != nil {
		return "", err
	}
	key := keyString(seg)
	origin := seg.Transition.Origin

	b := appendTimingDecls(nil, seg)
	b = shader.AppendVec3Decl(b, "cScaleFrom"+key, from, vectorPrecision)
	b = append(b, '\n')
	b = shader.AppendVec3Decl(b, "cScaleTo"+key, to, vectorPrecision)
	b = append(b, '\n')
	if origin != nil {
		b = shader.AppendVec3Decl(b, "cOrigin"+key, *origin, vectorPrecision)
		b = append(b, '\n')
	}
	b = appendFunctionHead(b, seg)
	if origin != nil {
		b = append(b, "\tv -= cOrigin"+key+";\n"...)
	}
	b = append(b, "\tv *= mix(cScaleFrom"+key+", cScaleTo"+key+", progress);\n"...)
	if origin != nil {
		b = append(b, "\tv += cOrigin"+key+";\n"...)
	}
	b = append(b, '}')
	return string(b), nil
}

func applyScale(seg Segment, progress float64, v common.Vec3) (common.Vec3, error) {
	from, to, err := vec3Endpoints(seg)
	if err != nil {
		return v, err
	}
	var origin common.Vec3
	if seg.Transition.Origin != nil {
		origin = *seg.Transition.Origin
	}
	scaled := common.Mul(common.Sub(v, origin), common.MixVec3(from, to, float32(progress)))
	return common.Add(scaled, origin), nil
}
