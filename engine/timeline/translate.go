package timeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

// TranslateDefinition returns the built-in translate kind. Values are common.Vec3
// offsets added to the target; the default From is the zero vector.
func TranslateDefinition() Definition {
	return Definition{
		DefaultFrom: common.Vec3{},
		Compiler:    compileTranslate,
		Apply:       applyTranslate,
		Decode:      decodeVec3Value,
	}
}

func vec3Endpoints(seg Segment) (common.Vec3, common.Vec3, error) {
	from, err := vec3Value(seg.Transition.From)
	if err != nil {
		return common.Vec3{}, common.Vec3{}, fmt.Errorf("%s segment %d from: %w", seg.Kind, seg.Key, err)
	}
	to, err := vec3Value(seg.Transition.To)
	if err != nil {
		return common.Vec3{}, common.Vec3{}, fmt.Errorf("%s segment %d to: %w", seg.Kind, seg.Key, err)
	}
	return from, to, nil
}

func compileTranslate(seg Segment) (string, error) {
	from, to, err := vec3Endpoints(seg)
	if err != nil {
		return "", err
	}
	key := keyString(seg)

	b := appendTimingDecls(nil, seg)
	b = shader.AppendVec3Decl(b, "cTranslateFrom"+key, from, vectorPrecision)
	b = append(b, '\n')
	b = shader.AppendVec3Decl(b, "cTranslateTo"+key, to, vectorPrecision)
	b = append(b, '\n')
	b = appendFunctionHead(b, seg)
	b = append(b, "\tv += mix(cTranslateFrom"+key+", cTranslateTo"+key+", progress);\n}"...)
	return string(b), nil
}

func applyTranslate(seg Segment, progress float64, v common.Vec3) (common.Vec3, error) {
	from, to, err := vec3Endpoints(seg)
	if err != nil {
		return v, err
	}
	return common.Add(v, common.MixVec3(from, to, float32(progress))), nil
}
