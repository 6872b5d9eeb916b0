package timeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

// RotateDefinition returns the built-in rotate kind. Values are common.AxisAngle with
// the angle in radians. The axis and the angle are interpolated separately and the
// result is applied as a quaternion, about Transition.Origin when set. An endpoint with
// a zero axis borrows the axis of the other endpoint; when both are zero the rotation
// turns about DefaultRotationAxis.
func RotateDefinition() Definition {
	return Definition{
		DefaultFrom: common.AxisAngle{},
		Compiler:    compileRotate,
		Apply:       applyRotate,
		Decode:      decodeAxisAngleValue,
		Chunks:      []string{"quaternion_rotation"},
	}
}

// DefaultRotationAxis is used when neither endpoint of a rotation names an axis.
var DefaultRotationAxis = common.Vec3{0, 1, 0}

func rotateEndpoints(seg Segment) (common.AxisAngle, common.AxisAngle, error) {
	from, err := axisAngleValue(seg.Transition.From)
	if err != nil {
		return common.AxisAngle{}, common.AxisAngle{}, fmt.Errorf("%s segment %d from: %w", seg.Kind, seg.Key, err)
	}
	to, err := axisAngleValue(seg.Transition.To)
	if err != nil {
		return common.AxisAngle{}, common.AxisAngle{}, fmt.Errorf("%s segment %d to: %w", seg.Kind, seg.Key, err)
	}
	if to.Axis == (common.Vec3{}) {
		to.Axis = from.Axis
	}
	if from.Axis == (common.Vec3{}) {
		from.Axis = to.Axis
	}
	// normalize(vec3(0)) is undefined on the GPU
	if from.Axis == (common.Vec3{}) {
		from.Axis, to.Axis = DefaultRotationAxis, DefaultRotationAxis
	}
	return from, to, nil
}

func compileRotate(seg Segment) (string, error) {
	from, to, err := rotateEndpoints(seg)
	if err != nil {
		return "", err
	}
	key := keyString(seg)
	origin := seg.Transition.Origin

	b := appendTimingDecls(nil, seg)
	b = shader.AppendVec4Decl(b, "cRotationFrom"+key, from.Vec4(), rotationPrecision)
	b = append(b, '\n')
	b = shader.AppendVec4Decl(b, "cRotationTo"+key, to.Vec4(), rotationPrecision)
	b = append(b, '\n')
	if origin != nil {
		b = shader.AppendVec3Decl(b, "cOrigin"+key, *origin, vectorPrecision)
		b = append(b, '\n')
	}
	b = appendFunctionHead(b, seg)
	b = append(b, "\tvec3 axis = normalize(mix(cRotationFrom"+key+".xyz, cRotationTo"+key+".xyz, progress));\n"...)
	b = append(b, "\tfloat angle = mix(cRotationFrom"+key+".w, cRotationTo"+key+".w, progress);\n"...)
	b = append(b, "\tvec4 q = quatFromAxisAngle(axis, angle);\n"...)
	if origin != nil {
		b = append(b, "\tv -= cOrigin"+key+";\n"...)
	}
	b = append(b, "\tv = rotateVector(q, v);\n"...)
	if origin != nil {
		b = append(b, "\tv += cOrigin"+key+";\n"...)
	}
	b = append(b, '}')
	return string(b), nil
}

func applyRotate(seg Segment, progress float64, v common.Vec3) (common.Vec3, error) {
	from, to, err := rotateEndpoints(seg)
	if err != nil {
		return v, err
	}
	p := float32(progress)
	axis := common.Normalize(common.MixVec3(from.Axis, to.Axis, p))
	q := common.QuatFromAxisAngle(axis, common.Mix(from.Angle, to.Angle, p))

	var origin common.Vec3
	if seg.Transition.Origin != nil {
		origin = *seg.Transition.Origin
	}
	return common.Add(common.RotateVector(q, common.Sub(v, origin)), origin), nil
}
