package timeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

// vec3Value accepts the vec3 shapes callers commonly hold.
func vec3Value(v any) (common.Vec3, error) {
	switch t := v.(type) {
	case common.Vec3:
		return t, nil
	case *common.Vec3:
		if t != nil {
			return *t, nil
		}
	case []float32:
		if len(t) == 3 {
			return common.Vec3{t[0], t[1], t[2]}, nil
		}
	case []float64:
		if len(t) == 3 {
			return common.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}, nil
		}
	}
	return common.Vec3{}, fmt.Errorf("expected vec3, got %T: %w", v, ErrInvalidValue)
}

// axisAngleValue accepts common.AxisAngle or a vec4 laid out as (axis.xyz, angle).
func axisAngleValue(v any) (common.AxisAngle, error) {
	switch t := v.(type) {
	case common.AxisAngle:
		return t, nil
	case *common.AxisAngle:
		if t != nil {
			return *t, nil
		}
	case common.Vec4:
		return common.AxisAngle{Axis: common.Vec3{t[0], t[1], t[2]}, Angle: t[3]}, nil
	}
	return common.AxisAngle{}, fmt.Errorf("expected axis-angle, got %T: %w", v, ErrInvalidValue)
}

// number converts a decoded scalar to float32.
func number(v any) (float32, error) {
	switch n := v.(type) {
	case int:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case uint64:
		return float32(n), nil
	case float32:
		return n, nil
	case float64:
		return float32(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T: %w", v, ErrInvalidValue)
	}
}

// DecodeVec3 converts a decoded config value into a common.Vec3. Accepted shapes are a
// three element list of numbers, a map with x, y and z keys, and any value vec3Value
// accepts.
//
// Parameters:
//   - v: the decoded value
//
// Returns:
//   - common.Vec3: the vector
//   - error: ErrInvalidValue for any other shape
func DecodeVec3(v any) (common.Vec3, error) {
	switch t := v.(type) {
	case []any:
		if len(t) != 3 {
			return common.Vec3{}, fmt.Errorf("expected 3 components, got %d: %w", len(t), ErrInvalidValue)
		}
		var out common.Vec3
		for i, c := range t {
			n, err := number(c)
			if err != nil {
				return common.Vec3{}, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		var out common.Vec3
		for i, k := range []string{"x", "y", "z"} {
			c, ok := t[k]
			if !ok {
				continue
			}
			n, err := number(c)
			if err != nil {
				return common.Vec3{}, fmt.Errorf("component %s: %w", k, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return vec3Value(v)
	}
}

// DecodeAxisAngle converts a decoded config value into a common.AxisAngle. Accepted
// shapes are a map with optional axis and angle keys, and a four element list laid out
// as (axis.x, axis.y, axis.z, angle). A missing axis decodes to the zero vector, which
// rotate segments replace with the axis of the other endpoint.
//
// Parameters:
//   - v: the decoded value
//
// Returns:
//   - common.AxisAngle: the rotation
//   - error: ErrInvalidValue for any other shape
func DecodeAxisAngle(v any) (common.AxisAngle, error) {
	switch t := v.(type) {
	case map[string]any:
		var out common.AxisAngle
		if axis, ok := t["axis"]; ok {
			a, err := DecodeVec3(axis)
			if err != nil {
				return common.AxisAngle{}, fmt.Errorf("axis: %w", err)
			}
			out.Axis = a
		}
		if angle, ok := t["angle"]; ok {
			n, err := number(angle)
			if err != nil {
				return common.AxisAngle{}, fmt.Errorf("angle: %w", err)
			}
			out.Angle = n
		}
		return out, nil
	case []any:
		if len(t) != 4 {
			return common.AxisAngle{}, fmt.Errorf("expected 4 components, got %d: %w", len(t), ErrInvalidValue)
		}
		var c [4]float32
		for i, x := range t {
			n, err := number(x)
			if err != nil {
				return common.AxisAngle{}, err
			}
			c[i] = n
		}
		return common.AxisAngle{Axis: common.Vec3{c[0], c[1], c[2]}, Angle: c[3]}, nil
	default:
		return axisAngleValue(v)
	}
}

func decodeVec3Value(v any) (any, error) {
	return DecodeVec3(v)
}

func decodeAxisAngleValue(v any) (any, error) {
	return DecodeAxisAngle(v)
}
